package postgres

import (
	"context"

	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"gorm.io/gorm"
)

type SessionPostgreSQL struct {
	db *gorm.DB
}

func NewSessionPostgreSQL(db *gorm.DB) repositories.SessionRepository {
	return &SessionPostgreSQL{db: db}
}

func (s *SessionPostgreSQL) ListByGroup(ctx context.Context, groupID string) ([]models.Session, error) {
	var sessions []models.Session
	if err := s.db.WithContext(ctx).
		Where("class_id = ?", groupID).
		Order("date ASC, time ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

type AttendancePostgreSQL struct {
	db *gorm.DB
}

func NewAttendancePostgreSQL(db *gorm.DB) repositories.AttendanceRepository {
	return &AttendancePostgreSQL{db: db}
}

func (a *AttendancePostgreSQL) ListByStudent(ctx context.Context, userID string, filters repositories.AttendanceFilters) ([]models.AttendanceRecord, error) {
	return a.ListByStudents(ctx, []string{userID}, filters)
}

func (a *AttendancePostgreSQL) ListByStudents(ctx context.Context, userIDs []string, filters repositories.AttendanceFilters) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if len(userIDs) == 0 {
		return records, nil
	}

	query := a.db.WithContext(ctx).Model(&models.AttendanceRecord{}).Where("user_id IN ?", userIDs)
	query = a.applyFilters(query, filters)

	if err := query.Order("timestamp ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (a *AttendancePostgreSQL) applyFilters(query *gorm.DB, filters repositories.AttendanceFilters) *gorm.DB {
	if filters.SessionIDs != nil {
		query = query.Where("session_id IN ?", filters.SessionIDs)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("timestamp >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("timestamp <= ?", *filters.DateTo)
	}
	return query
}
