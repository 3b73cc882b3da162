package postgres

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"gorm.io/gorm"
)

type GroupPostgreSQL struct {
	db *gorm.DB
}

func NewGroupPostgreSQL(db *gorm.DB) repositories.GroupRepository {
	return &GroupPostgreSQL{db: db}
}

func (g *GroupPostgreSQL) GetByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	if err := g.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}
