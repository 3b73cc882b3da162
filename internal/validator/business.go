package validator

import (
	"fmt"
	"strconv"

	apperrors "github.com/SAP-F-2025/academy-report-service/internal/errors"
	"github.com/SAP-F-2025/academy-report-service/internal/models"
)

// BusinessValidator checks grade entries against the institution rules.
//
// The calculators accept out-of-range scores and only cap the accumulated sum, so these
// checks are reported to the caller as warnings rather than enforced.
type BusinessValidator struct{}

func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{}
}

// ValidateGradingConfig reports rules that the struct tags cannot express.
func (v *BusinessValidator) ValidateGradingConfig(cfg models.GradingConfiguration) ValidationErrors {
	var errs ValidationErrors
	if cfg.PassingGrade > cfg.MaxPartialScore() {
		errs = append(errs, *apperrors.NewValidationErrorWithRule(
			"passing_grade",
			fmt.Sprintf("must not exceed the maximum partial score %s", formatScore(cfg.MaxPartialScore())),
			"passing_grade_range",
			cfg.PassingGrade,
		))
	}
	return errs
}

// ScoreWarnings lists the activity and exam scores outside their configured range.
// Only the partials 1..NumberOfPartials are inspected.
func (v *BusinessValidator) ScoreWarnings(grades *models.StudentGradeStructure, cfg models.GradingConfiguration) ValidationErrors {
	var errs ValidationErrors
	for n := 1; n <= cfg.NumberOfPartials && n <= models.MaxPartials; n++ {
		partial := grades.Partial(n)
		if partial == nil {
			continue
		}
		for i, a := range partial.AccumulatedActivities {
			if a.Score == nil || inRange(*a.Score, cfg.MaxIndividualActivityScore) {
				continue
			}
			errs = append(errs, *apperrors.NewValidationErrorWithRule(
				fmt.Sprintf("partial%d.accumulated_activities[%d].score", n, i),
				fmt.Sprintf("must be between 0 and %s", formatScore(cfg.MaxIndividualActivityScore)),
				"score_range",
				*a.Score,
			))
		}
		if partial.Exam != nil && partial.Exam.Score != nil && !inRange(*partial.Exam.Score, cfg.MaxExamScore) {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(
				fmt.Sprintf("partial%d.exam.score", n),
				fmt.Sprintf("must be between 0 and %s", formatScore(cfg.MaxExamScore)),
				"score_range",
				*partial.Exam.Score,
			))
		}
	}
	return errs
}

func inRange(score, max float64) bool {
	return score >= 0 && score <= max
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
