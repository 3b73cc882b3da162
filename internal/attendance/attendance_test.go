package attendance

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id, session string, status models.AttendanceStatus, observation *string) models.AttendanceRecord {
	return models.AttendanceRecord{
		ID:          id,
		SessionID:   session,
		UserID:      "student-1",
		Status:      status,
		Timestamp:   time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		Observation: observation,
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalRecords)
	assert.Equal(t, 0, summary.TotalSessionsForStudent)
	// no recorded sessions counts as full attendance
	assert.Equal(t, 100.0, summary.AttendanceRate)
}

func TestSummarize_Counts(t *testing.T) {
	var records []models.AttendanceRecord
	for i := 0; i < 6; i++ {
		records = append(records, record(fmt.Sprintf("p%d", i), fmt.Sprintf("s%d", i), models.AttendancePresent, nil))
	}
	records = append(records, record("l0", "s6", models.AttendanceLate, nil))
	for i := 7; i < 10; i++ {
		records = append(records, record(fmt.Sprintf("a%d", i), fmt.Sprintf("s%d", i), models.AttendanceAbsent, nil))
	}

	summary := Summarize(records)

	assert.Equal(t, 6, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 3, summary.Absent)
	assert.Equal(t, 10, summary.TotalRecords)
	assert.Equal(t, 10, summary.TotalSessionsForStudent)
	assert.InDelta(t, 70.0, summary.AttendanceRate, 1e-9)
}

func TestSummarize_DuplicateSessions(t *testing.T) {
	records := []models.AttendanceRecord{
		record("1", "s1", models.AttendancePresent, nil),
		record("2", "s1", models.AttendancePresent, nil),
		record("3", "s2", models.AttendanceAbsent, nil),
	}

	summary := Summarize(records)

	assert.Equal(t, 3, summary.TotalRecords)
	assert.Equal(t, 2, summary.TotalSessionsForStudent)
	assert.InDelta(t, 200.0/3.0, summary.AttendanceRate, 1e-9)
}

func TestSummarize_UnknownStatusIgnored(t *testing.T) {
	records := []models.AttendanceRecord{
		record("1", "s1", models.AttendancePresent, nil),
		record("2", "s2", models.AttendanceStatus("excused"), nil),
	}

	summary := Summarize(records)

	assert.Equal(t, 1, summary.TotalRecords)
	assert.Equal(t, 1, summary.TotalSessionsForStudent)
	assert.Equal(t, 100.0, summary.AttendanceRate)
}

func TestRate(t *testing.T) {
	assert.Equal(t, 100.0, Rate(0, 0, 0))
	assert.Equal(t, 0.0, Rate(0, 4, 0))
	assert.Equal(t, 50.0, Rate(1, 2, 1))
}

func TestCompileObservations(t *testing.T) {
	t.Run("no records", func(t *testing.T) {
		assert.Equal(t, NoObservationsText, CompileObservations(nil))
	})

	t.Run("only qualifying absences are listed", func(t *testing.T) {
		records := []models.AttendanceRecord{
			record("1", "s1", models.AttendanceAbsent, models.String("Medical appointment")),
			record("2", "s2", models.AttendancePresent, models.String("Arrived with homework")),
			record("3", "s3", models.AttendanceAbsent, nil),
			record("4", "s4", models.AttendanceAbsent, models.String("   ")),
			record("5", "s5", models.AttendanceLate, models.String("Traffic")),
			record("6", "s6", models.AttendanceAbsent, models.String(" Family trip ")),
		}

		text := CompileObservations(records)

		lines := strings.Split(text, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "- Absence observation: Medical appointment", lines[0])
		assert.Equal(t, "- Absence observation: Family trip", lines[1])
		for _, line := range lines {
			assert.True(t, strings.HasPrefix(line, "- Absence observation: "))
		}
	})

	t.Run("multi-line observation stays on one line", func(t *testing.T) {
		records := []models.AttendanceRecord{
			record("1", "s1", models.AttendanceAbsent, models.String("Sick.\nParent  called\r\n")),
			record("2", "s2", models.AttendanceAbsent, models.String("Doctor")),
		}

		lines := strings.Split(CompileObservations(records), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "- Absence observation: Sick. Parent called", lines[0])
		assert.Equal(t, "- Absence observation: Doctor", lines[1])
	})

	t.Run("absences without observations fall back", func(t *testing.T) {
		records := []models.AttendanceRecord{record("1", "s1", models.AttendanceAbsent, nil)}
		assert.Equal(t, NoObservationsText, CompileObservations(records))
	})
}

func TestScopeToGroup(t *testing.T) {
	sessions := []models.Session{
		{ID: "s1", ClassID: "g1", Date: "2024-03-01", Time: "08:00"},
		{ID: "s2", ClassID: "g2", Date: "2024-03-01", Time: "10:00"},
		{ID: "s3", ClassID: "g1", Date: "2024-03-02"},
	}
	records := []models.AttendanceRecord{
		record("1", "s1", models.AttendancePresent, nil),
		record("2", "s2", models.AttendanceAbsent, nil),
		record("3", "s3", models.AttendanceLate, nil),
		record("4", "unknown", models.AttendanceAbsent, nil),
	}

	scoped := ScopeToGroup(records, sessions, "g1")

	require.Len(t, scoped, 2)
	assert.Equal(t, "1", scoped[0].ID)
	assert.Equal(t, "3", scoped[1].ID)
}

func TestForStudent(t *testing.T) {
	other := record("2", "s1", models.AttendancePresent, nil)
	other.UserID = "student-2"
	records := []models.AttendanceRecord{record("1", "s1", models.AttendancePresent, nil), other}

	assert.Len(t, ForStudent(records, "student-1"), 1)
	assert.Empty(t, ForStudent(records, "nobody"))
}

func TestSessionLabels(t *testing.T) {
	labels := SessionLabels([]models.Session{
		{ID: "s1", Date: "2024-03-01", Time: "08:00"},
		{ID: "s2", Date: "2024-03-02"},
		{ID: "s3"},
	})

	assert.Equal(t, "2024-03-01 08:00", labels["s1"])
	assert.Equal(t, "2024-03-02", labels["s2"])
	assert.Equal(t, "s3", labels["s3"])
}
