package postgres

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"gorm.io/gorm"
)

type InstitutionPostgreSQL struct {
	db *gorm.DB
}

func NewInstitutionPostgreSQL(db *gorm.DB) repositories.InstitutionRepository {
	return &InstitutionPostgreSQL{db: db}
}

func (i *InstitutionPostgreSQL) GetByID(ctx context.Context, id string) (*models.Institution, error) {
	var institution models.Institution
	if err := i.db.WithContext(ctx).First(&institution, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &institution, nil
}
