package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the types of events the service publishes
type EventType string

const (
	EventReportGenerated   EventType = "report.generated"
	EventCertificateIssued EventType = "certificate.issued"
	EventGradebookExported EventType = "gradebook.exported"
)

const (
	eventSource  = "academy-report-service"
	eventVersion = "1.0"
)

// Event is the envelope of every published event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent wraps data in an envelope with a fresh id and timestamp.
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// Event payloads

type ReportGeneratedEvent struct {
	StudentID      string    `json:"student_id"`
	LevelName      string    `json:"level_name"`
	GroupID        *string   `json:"group_id,omitempty"`
	FinalGrade     *float64  `json:"final_grade,omitempty"`
	Passed         *bool     `json:"passed,omitempty"`
	AttendanceRate float64   `json:"attendance_rate"`
	GeneratedAt    time.Time `json:"generated_at"`
}

type CertificateIssuedEvent struct {
	StudentID       string    `json:"student_id"`
	LevelName       string    `json:"level_name"`
	GroupID         string    `json:"group_id"`
	CertificateCode string    `json:"certificate_code"`
	IssuedAt        time.Time `json:"issued_at"`
}

type GradebookExportedEvent struct {
	GroupID    string    `json:"group_id"`
	LevelName  string    `json:"level_name"`
	Students   int       `json:"students"`
	ExportedAt time.Time `json:"exported_at"`
}
