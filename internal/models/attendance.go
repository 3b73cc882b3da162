package models

import (
	"strings"
	"time"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Valid returns true when the status is one of the supported values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	default:
		return false
	}
}

// AttendanceRecord is a single check-in of a user for a session
type AttendanceRecord struct {
	ID          string           `json:"id" gorm:"primaryKey;size:64"`
	SessionID   string           `json:"session_id" gorm:"not null;index;size:64"`
	UserID      string           `json:"user_id" gorm:"not null;index;size:64"`
	Status      AttendanceStatus `json:"status" gorm:"not null;size:16" validate:"attendance_status"`
	Timestamp   time.Time        `json:"timestamp" gorm:"not null;index"`
	Observation *string          `json:"observation,omitempty" gorm:"type:text"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// HasObservation reports whether the record carries a non-blank teacher observation.
func (r AttendanceRecord) HasObservation() bool {
	return r.Observation != nil && strings.TrimSpace(*r.Observation) != ""
}

// Session is a class meeting of a group
type Session struct {
	ID      string `json:"id" gorm:"primaryKey;size:64"`
	ClassID string `json:"class_id" gorm:"not null;index;size:64"` // group id
	Date    string `json:"date" gorm:"size:10"`                    // YYYY-MM-DD
	Time    string `json:"time" gorm:"size:5"`                     // HH:MM
}

func (Session) TableName() string {
	return "sessions"
}

// Label is the display label of the session.
func (s Session) Label() string {
	switch {
	case s.Date != "" && s.Time != "":
		return s.Date + " " + s.Time
	case s.Date != "":
		return s.Date
	default:
		return s.ID
	}
}
