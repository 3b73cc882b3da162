package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/models"
)

// Repository gives access to every repository of the service.
// Getters return nil, nil when the record does not exist.
type Repository interface {
	Institution() InstitutionRepository
	Student() StudentRepository
	Group() GroupRepository
	Session() SessionRepository
	Attendance() AttendanceRepository

	Ping(ctx context.Context) error
	Close() error
}

// ===== SHARED FILTER STRUCTS =====

type AttendanceFilters struct {
	SessionIDs []string                 `json:"session_ids"`
	Status     *models.AttendanceStatus `json:"status"`
	DateFrom   *time.Time               `json:"date_from"`
	DateTo     *time.Time               `json:"date_to"`
}

// ===== REPOSITORIES =====

type InstitutionRepository interface {
	GetByID(ctx context.Context, id string) (*models.Institution, error)
}

type StudentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Student, error)
	ListByGroup(ctx context.Context, groupID string) ([]*models.Student, error)
}

type GroupRepository interface {
	GetByID(ctx context.Context, id string) (*models.Group, error)
}

type SessionRepository interface {
	ListByGroup(ctx context.Context, groupID string) ([]models.Session, error)
}

// AttendanceRepository returns records ordered by timestamp, oldest first.
type AttendanceRepository interface {
	ListByStudent(ctx context.Context, userID string, filters AttendanceFilters) ([]models.AttendanceRecord, error)
	ListByStudents(ctx context.Context, userIDs []string, filters AttendanceFilters) ([]models.AttendanceRecord, error)
}
