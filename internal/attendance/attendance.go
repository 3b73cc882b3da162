// Package attendance aggregates attendance events into counts, rates and observation text.
package attendance

import (
	"strings"

	"github.com/SAP-F-2025/academy-report-service/internal/models"
)

// NoObservationsText is returned by CompileObservations when no absence carries an observation.
const NoObservationsText = "No specific observations were recorded for absences."

const observationPrefix = "- Absence observation: "

// Summarize counts the records by status and derives the attendance rate.
//
// A student with no records has a rate of 100. TotalSessionsForStudent counts distinct
// session ids and can be lower than TotalRecords when a session has duplicate check-ins.
// Records with an unknown status are left out of every count.
func Summarize(records []models.AttendanceRecord) models.AttendanceSummary {
	var summary models.AttendanceSummary
	sessions := make(map[string]struct{})

	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceAbsent:
			summary.Absent++
		case models.AttendanceLate:
			summary.Late++
		default:
			continue
		}
		sessions[r.SessionID] = struct{}{}
	}

	summary.TotalRecords = summary.Present + summary.Absent + summary.Late
	summary.TotalSessionsForStudent = len(sessions)
	summary.AttendanceRate = Rate(summary.Present, summary.Absent, summary.Late)
	return summary
}

// Rate is the share of attended (present or late) records, in percent.
func Rate(present, absent, late int) float64 {
	total := present + absent + late
	if total == 0 {
		return 100
	}
	return float64(present+late) / float64(total) * 100
}

// CompileObservations lists the observations attached to absences, one bullet per line,
// keeping the input order.
func CompileObservations(records []models.AttendanceRecord) string {
	lines := make([]string, 0)
	for _, r := range records {
		if r.Status != models.AttendanceAbsent || !r.HasObservation() {
			continue
		}
		lines = append(lines, observationPrefix+singleLine(*r.Observation))
	}
	if len(lines) == 0 {
		return NoObservationsText
	}
	return strings.Join(lines, "\n")
}

// singleLine collapses every run of whitespace, line breaks included, to one space.
func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ForStudent keeps the records of one user.
func ForStudent(records []models.AttendanceRecord, userID string) []models.AttendanceRecord {
	out := make([]models.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// ScopeToGroup keeps the records whose session belongs to the given group.
func ScopeToGroup(records []models.AttendanceRecord, sessions []models.Session, groupID string) []models.AttendanceRecord {
	inGroup := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		if s.ClassID == groupID {
			inGroup[s.ID] = struct{}{}
		}
	}

	out := make([]models.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if _, ok := inGroup[r.SessionID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// SessionLabels maps session ids to their display label.
func SessionLabels(sessions []models.Session) map[string]string {
	labels := make(map[string]string, len(sessions))
	for _, s := range sessions {
		labels[s.ID] = s.Label()
	}
	return labels
}
