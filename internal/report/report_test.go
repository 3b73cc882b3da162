package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/attendance"
	"github.com/SAP-F-2025/academy-report-service/internal/grading"
	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfg = models.GradingConfiguration{
	NumberOfPartials:         3,
	PassingGrade:             70,
	MaxTotalAccumulatedScore: 50,
	MaxExamScore:             50,
}

func examOnly(score float64) *models.PartialScores {
	return &models.PartialScores{Exam: &models.ExamScore{Score: models.Float(score)}}
}

func TestFormatGradesSummary(t *testing.T) {
	t.Run("complete level", func(t *testing.T) {
		result := grading.CalculateFinalGrade(&models.StudentGradeStructure{
			Partial1: examOnly(90),
			Partial2: examOnly(80),
			Partial3: examOnly(70),
		}, cfg)

		assert.Equal(t,
			"Partial 1 Total: 90.0/100. Partial 2 Total: 80.0/100. Partial 3 Total: 70.0/100. Final Grade: 80.00/100.",
			FormatGradesSummary(result))
	})

	t.Run("incomplete level omits final grade", func(t *testing.T) {
		result := grading.CalculateFinalGrade(&models.StudentGradeStructure{
			Partial1: examOnly(85.26),
			Partial3: examOnly(60),
		}, cfg)

		assert.Equal(t, "Partial 1 Total: 85.3/100. Partial 3 Total: 60.0/100.", FormatGradesSummary(result))
	})

	t.Run("fractional final grade", func(t *testing.T) {
		twoPartials := cfg
		twoPartials.NumberOfPartials = 2
		result := grading.CalculateFinalGrade(&models.StudentGradeStructure{
			Partial1: examOnly(85.5),
			Partial2: examOnly(70),
		}, twoPartials)

		assert.Equal(t, "Partial 1 Total: 85.5/100. Partial 2 Total: 70.0/100. Final Grade: 77.75/100.", FormatGradesSummary(result))
	})

	t.Run("no partials", func(t *testing.T) {
		assert.Equal(t, NoGradesText, FormatGradesSummary(grading.CalculateFinalGrade(nil, cfg)))
	})
}

func TestFormatAttendanceSummary(t *testing.T) {
	tests := []struct {
		name     string
		summary  models.AttendanceSummary
		expected string
	}{
		{
			name:     "rounded rate",
			summary:  models.AttendanceSummary{Present: 6, Absent: 3, Late: 1, AttendanceRate: 70},
			expected: "Present: 6, Absent: 3, Late: 1. Attendance Rate: 70%.",
		},
		{
			name:     "two thirds",
			summary:  models.AttendanceSummary{Present: 2, Absent: 1, AttendanceRate: 200.0 / 3.0},
			expected: "Present: 2, Absent: 1, Late: 0. Attendance Rate: 67%.",
		},
		{
			name:     "half rounds up",
			summary:  models.AttendanceSummary{Present: 1, Absent: 1, AttendanceRate: 87.5},
			expected: "Present: 1, Absent: 1, Late: 0. Attendance Rate: 88%.",
		},
		{
			name:     "no records",
			summary:  attendance.Summarize(nil),
			expected: "Present: 0, Absent: 0, Late: 0. Attendance Rate: 100%.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAttendanceSummary(tt.summary))
		})
	}
}

func TestAssembleBrief(t *testing.T) {
	result := grading.CalculateFinalGrade(&models.StudentGradeStructure{Partial1: examOnly(90)}, cfg)
	records := []models.AttendanceRecord{
		{ID: "1", SessionID: "s1", Status: models.AttendanceAbsent, Observation: models.String("Sick")},
	}

	brief := AssembleBrief("Ana Pérez", "Level 1", result, attendance.Summarize(records), attendance.CompileObservations(records))

	assert.Equal(t, "Ana Pérez", brief.StudentName)
	assert.Equal(t, "Level 1", brief.LevelName)
	assert.Equal(t, "Partial 1 Total: 90.0/100.", brief.GradesSummary)
	assert.Equal(t, "Present: 0, Absent: 1, Late: 0. Attendance Rate: 0%.", brief.AttendanceSummary)
	assert.Equal(t, "- Absence observation: Sick", brief.TeacherObservations)
}

func TestHTTPGenerator(t *testing.T) {
	brief := NarrativeBrief{StudentName: "Ana", LevelName: "Level 1"}

	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

			var req generateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, Instructions, req.Instructions)
			assert.Equal(t, "Ana", req.Brief.StudentName)

			_ = json.NewEncoder(w).Encode(NarrativeReport{Report: "# Report"})
		}))
		defer server.Close()

		gen := NewHTTPGenerator(HTTPGeneratorConfig{URL: server.URL, APIKey: "secret", Timeout: time.Second})
		out, err := gen.GenerateReport(context.Background(), brief)

		require.NoError(t, err)
		assert.Equal(t, "# Report", out.Report)
	})

	t.Run("upstream error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := NewHTTPGenerator(HTTPGeneratorConfig{URL: server.URL}).GenerateReport(context.Background(), brief)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("empty report", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"report":"  "}`))
		}))
		defer server.Close()

		_, err := NewHTTPGenerator(HTTPGeneratorConfig{URL: server.URL}).GenerateReport(context.Background(), brief)

		assert.ErrorIs(t, err, ErrEmptyReport)
	})
}

func TestStaticGenerator(t *testing.T) {
	brief := NarrativeBrief{
		StudentName:         "Ana",
		LevelName:           "Level 1",
		GradesSummary:       "Partial 1 Total: 90.0/100.",
		AttendanceSummary:   "Present: 1, Absent: 0, Late: 0. Attendance Rate: 100%.",
		TeacherObservations: "No specific observations were recorded for absences.",
	}

	out, err := NewStaticGenerator().GenerateReport(context.Background(), brief)

	require.NoError(t, err)
	assert.Contains(t, out.Report, "# Progress Report: Ana")
	assert.Contains(t, out.Report, brief.GradesSummary)
	assert.Contains(t, out.Report, brief.AttendanceSummary)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewStaticGenerator().GenerateReport(ctx, brief)
	assert.ErrorIs(t, err, context.Canceled)
}
