package models

// MaxPartials is the highest number of partials an institution can configure.
const MaxPartials = 4

// GradingConfiguration holds the institution-wide grading rules
type GradingConfiguration struct {
	NumberOfPartials           int     `json:"number_of_partials" validate:"required,partials_count"`
	PassingGrade               float64 `json:"passing_grade" validate:"min=0"`
	MaxIndividualActivityScore float64 `json:"max_individual_activity_score" validate:"min=0"`
	MaxTotalAccumulatedScore   float64 `json:"max_total_accumulated_score" validate:"min=0"`
	MaxExamScore               float64 `json:"max_exam_score" validate:"min=0"`
}

// MaxPartialScore is the highest total a single partial can reach.
func (c GradingConfiguration) MaxPartialScore() float64 {
	return c.MaxTotalAccumulatedScore + c.MaxExamScore
}

// ActivityScore is one graded task of a partial. A nil Score means ungraded.
type ActivityScore struct {
	ID    string   `json:"id"`
	Name  *string  `json:"name,omitempty"`
	Score *float64 `json:"score"`
}

type ExamScore struct {
	Name  *string  `json:"name,omitempty"`
	Score *float64 `json:"score"`
}

type PartialScores struct {
	AccumulatedActivities []ActivityScore `json:"accumulated_activities"`
	Exam                  *ExamScore      `json:"exam"`
}

// StudentGradeStructure is the per-level grade record of a student
type StudentGradeStructure struct {
	Partial1        *PartialScores `json:"partial1,omitempty"`
	Partial2        *PartialScores `json:"partial2,omitempty"`
	Partial3        *PartialScores `json:"partial3,omitempty"`
	Partial4        *PartialScores `json:"partial4,omitempty"`
	CertificateCode *string        `json:"certificate_code,omitempty"`
}

// Partial returns the partial stored at the 1-based position n, or nil.
func (g *StudentGradeStructure) Partial(n int) *PartialScores {
	if g == nil {
		return nil
	}
	switch n {
	case 1:
		return g.Partial1
	case 2:
		return g.Partial2
	case 3:
		return g.Partial3
	case 4:
		return g.Partial4
	default:
		return nil
	}
}

// SetPartial stores p at the 1-based position n. Positions outside 1..4 are ignored.
func (g *StudentGradeStructure) SetPartial(n int, p *PartialScores) {
	switch n {
	case 1:
		g.Partial1 = p
	case 2:
		g.Partial2 = p
	case 3:
		g.Partial3 = p
	case 4:
		g.Partial4 = p
	}
}

// Float returns a pointer to v, handy for building optional scores.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}
