package postgres

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"gorm.io/gorm"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleStudent).
		First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) ListByGroup(ctx context.Context, groupID string) ([]*models.Student, error) {
	var students []*models.Student
	if err := s.db.WithContext(ctx).
		Where("group_id = ? AND role = ?", groupID, models.RoleStudent).
		Order("full_name ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}
