// Package report assembles the narrative brief handed to the report generator.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/academy-report-service/internal/grading"
	"github.com/SAP-F-2025/academy-report-service/internal/models"
)

// NoGradesText is the grades summary of a level without any recorded partial.
const NoGradesText = "No grades recorded."

// NarrativeBrief is the fixed-shape input of a NarrativeGenerator
type NarrativeBrief struct {
	StudentName         string `json:"studentName"`
	LevelName           string `json:"levelName"`
	GradesSummary       string `json:"gradesSummary"`
	AttendanceSummary   string `json:"attendanceSummary"`
	TeacherObservations string `json:"teacherObservations"`
}

// AssembleBrief packages the computed grade, attendance and observation outputs.
func AssembleBrief(studentName, levelName string, result grading.FinalGradeResult, summary models.AttendanceSummary, observations string) NarrativeBrief {
	return NarrativeBrief{
		StudentName:         studentName,
		LevelName:           levelName,
		GradesSummary:       FormatGradesSummary(result),
		AttendanceSummary:   FormatAttendanceSummary(summary),
		TeacherObservations: observations,
	}
}

// FormatGradesSummary renders "Partial N Total: X/Y." for each partial with data, followed by
// "Final Grade: Z/Y." when the final grade is computable.
func FormatGradesSummary(result grading.FinalGradeResult) string {
	maxScore := formatMax(result.MaxScore)

	clauses := make([]string, 0, len(result.Partials)+1)
	for _, p := range result.PresentPartials() {
		clauses = append(clauses, fmt.Sprintf("Partial %d Total: %.1f/%s.", p.Number, p.Total, maxScore))
	}
	if grade, ok := result.Grade(); ok {
		clauses = append(clauses, fmt.Sprintf("Final Grade: %.2f/%s.", grade, maxScore))
	}

	if len(clauses) == 0 {
		return NoGradesText
	}
	return strings.Join(clauses, " ")
}

// FormatAttendanceSummary renders "Present: p, Absent: a, Late: l. Attendance Rate: r%."
func FormatAttendanceSummary(summary models.AttendanceSummary) string {
	return fmt.Sprintf("Present: %d, Absent: %d, Late: %d. Attendance Rate: %d%%.",
		summary.Present, summary.Absent, summary.Late, RoundRate(summary.AttendanceRate))
}

// RoundRate rounds an attendance rate to the nearest integer, halves up.
func RoundRate(rate float64) int {
	return int(math.Floor(rate + 0.5))
}

func formatMax(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
