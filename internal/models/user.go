package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

// Student is a user enrolled in a group. Grades are kept per level name.
type Student struct {
	ID       string   `json:"id" gorm:"primaryKey;size:64"`
	FullName string   `json:"full_name" gorm:"not null;size:150"`
	Email    string   `json:"email" gorm:"size:255"`
	Role     UserRole `json:"role" gorm:"default:student;size:20"`
	GroupID  *string  `json:"group_id" gorm:"index;size:64"`
	SedeID   *string  `json:"sede_id" gorm:"index;size:64"`

	GradesByLevel datatypes.JSON `json:"grades_by_level" gorm:"type:jsonb"` // map[string]StudentGradeStructure

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Student) TableName() string {
	return "users"
}

// Grades decodes the per-level grade map.
func (s *Student) Grades() (map[string]StudentGradeStructure, error) {
	grades := make(map[string]StudentGradeStructure)
	if len(s.GradesByLevel) == 0 {
		return grades, nil
	}
	if err := json.Unmarshal(s.GradesByLevel, &grades); err != nil {
		return nil, fmt.Errorf("failed to decode grades of student %s: %w", s.ID, err)
	}
	return grades, nil
}

// LevelGrades returns the grade structure of a level and whether it exists.
func (s *Student) LevelGrades(level string) (*StudentGradeStructure, bool, error) {
	grades, err := s.Grades()
	if err != nil {
		return nil, false, err
	}
	g, ok := grades[level]
	if !ok {
		return nil, false, nil
	}
	return &g, true, nil
}

// SetGrades encodes the per-level grade map back into the JSON column.
func (s *Student) SetGrades(grades map[string]StudentGradeStructure) error {
	data, err := json.Marshal(grades)
	if err != nil {
		return fmt.Errorf("failed to encode grades of student %s: %w", s.ID, err)
	}
	s.GradesByLevel = datatypes.JSON(data)
	return nil
}

// Group is a class (the attendance scope of sessions)
type Group struct {
	ID            string `json:"id" gorm:"primaryKey;size:64"`
	Name          string `json:"name" gorm:"not null;size:150"`
	Type          string `json:"type" gorm:"size:50"`  // program type
	Shift         string `json:"shift" gorm:"size:50"` // program shift
	TeacherName   string `json:"teacher_name" gorm:"size:150"`
	SedeName      string `json:"sede_name" gorm:"size:150"`
	InstitutionID string `json:"institution_id" gorm:"index;size:64"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Group) TableName() string {
	return "groups"
}

// Institution carries the grading rules and the certificate template
type Institution struct {
	ID                  string         `json:"id" gorm:"primaryKey;size:64"`
	Name                string         `json:"name" gorm:"not null;size:200"`
	GradingConfig       datatypes.JSON `json:"grading_config" gorm:"type:jsonb"` // GradingConfiguration
	CertificateTemplate *string        `json:"certificate_template" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Institution) TableName() string {
	return "institutions"
}

// Grading decodes the stored grading configuration. The second result is false when none is stored.
func (i *Institution) Grading() (GradingConfiguration, bool, error) {
	var cfg GradingConfiguration
	if len(i.GradingConfig) == 0 || string(i.GradingConfig) == "null" {
		return cfg, false, nil
	}
	if err := json.Unmarshal(i.GradingConfig, &cfg); err != nil {
		return cfg, false, fmt.Errorf("failed to decode grading config of institution %s: %w", i.ID, err)
	}
	return cfg, true, nil
}
