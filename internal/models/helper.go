package models

import "time"

// StudentLevelSummary is the computed grade and attendance picture of a student for one level
type StudentLevelSummary struct {
	StudentID    string            `json:"student_id"`
	StudentName  string            `json:"student_name"`
	LevelName    string            `json:"level_name"`
	GroupID      *string           `json:"group_id,omitempty"`
	Partials     []PartialSummary  `json:"partials"`
	FinalGrade   *float64          `json:"final_grade"`
	MaxScore     float64           `json:"max_score"`
	Passed       *bool             `json:"passed"`
	Attendance   AttendanceSummary `json:"attendance"`
	Observations string            `json:"observations"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

type PartialSummary struct {
	Number   int     `json:"number"`
	Total    float64 `json:"total"`
	MaxScore float64 `json:"max_score"`
	Present  bool    `json:"present"`
}

type AttendanceSummary struct {
	Present                 int     `json:"present"`
	Absent                  int     `json:"absent"`
	Late                    int     `json:"late"`
	TotalRecords            int     `json:"total_records"`
	AttendanceRate          float64 `json:"attendance_rate"`
	TotalSessionsForStudent int     `json:"total_sessions_for_student"`
}
