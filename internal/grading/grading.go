// Package grading turns raw activity and exam scores into partial totals and level grades.
//
// All functions are pure and take the grading configuration explicitly.
package grading

import (
	"math"

	"github.com/SAP-F-2025/academy-report-service/internal/models"
)

// AggregateActivities sums the activity scores, counting ungraded activities as 0,
// and caps the sum at the configured accumulated maximum.
// Individual scores are not clamped, only the sum.
func AggregateActivities(activities []models.ActivityScore, cfg models.GradingConfiguration) float64 {
	var sum float64
	for _, a := range activities {
		if a.Score != nil {
			sum += *a.Score
		}
	}
	return math.Min(sum, cfg.MaxTotalAccumulatedScore)
}

// PartialTotal is the capped activity total plus the exam score. A nil partial totals 0.
func PartialTotal(partial *models.PartialScores, cfg models.GradingConfiguration) float64 {
	if partial == nil {
		return 0
	}
	total := AggregateActivities(partial.AccumulatedActivities, cfg)
	if partial.Exam != nil && partial.Exam.Score != nil {
		total += *partial.Exam.Score
	}
	return total
}

// FinalGradeResult is the outcome of CalculateFinalGrade
type FinalGradeResult struct {
	Partials     []models.PartialSummary `json:"partials"`
	Value        float64                 `json:"-"`
	Computable   bool                    `json:"computable"`
	MaxScore     float64                 `json:"max_score"`
	PassingGrade float64                 `json:"passing_grade"`
}

// Grade returns the final grade and false when it cannot be computed yet.
func (r FinalGradeResult) Grade() (float64, bool) {
	if !r.Computable {
		return 0, false
	}
	return r.Value, true
}

// GradePtr returns the final grade or nil when it cannot be computed.
func (r FinalGradeResult) GradePtr() *float64 {
	if !r.Computable {
		return nil
	}
	v := r.Value
	return &v
}

// Passed reports whether the final grade reaches the passing grade.
// The second result is false when there is no final grade.
func (r FinalGradeResult) Passed() (bool, bool) {
	grade, ok := r.Grade()
	if !ok {
		return false, false
	}
	return grade >= r.PassingGrade, true
}

// PresentPartials returns the partials that carry data, in order.
func (r FinalGradeResult) PresentPartials() []models.PartialSummary {
	present := make([]models.PartialSummary, 0, len(r.Partials))
	for _, p := range r.Partials {
		if p.Present {
			present = append(present, p)
		}
	}
	return present
}

// CalculateFinalGrade computes every configured partial and averages them.
// The final grade is only computable when all partials 1..NumberOfPartials exist;
// extra partials beyond the configured count are ignored.
func CalculateFinalGrade(grades *models.StudentGradeStructure, cfg models.GradingConfiguration) FinalGradeResult {
	maxScore := cfg.MaxPartialScore()
	result := FinalGradeResult{
		Partials:     make([]models.PartialSummary, 0, cfg.NumberOfPartials),
		MaxScore:     maxScore,
		PassingGrade: cfg.PassingGrade,
	}

	present := 0
	var sum float64
	for n := 1; n <= cfg.NumberOfPartials && n <= models.MaxPartials; n++ {
		partial := grades.Partial(n)
		total := PartialTotal(partial, cfg)
		if partial != nil {
			present++
		}
		sum += total
		result.Partials = append(result.Partials, models.PartialSummary{
			Number:   n,
			Total:    total,
			MaxScore: maxScore,
			Present:  partial != nil,
		})
	}

	if cfg.NumberOfPartials > 0 && present == cfg.NumberOfPartials {
		result.Value = sum / float64(present)
		result.Computable = true
	}
	return result
}

// IsPassing reports whether grade reaches the configured passing grade.
func IsPassing(grade float64, cfg models.GradingConfiguration) bool {
	return grade >= cfg.PassingGrade
}
