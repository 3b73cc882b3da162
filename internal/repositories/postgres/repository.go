package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db          *gorm.DB
	institution repositories.InstitutionRepository
	student     repositories.StudentRepository
	group       repositories.GroupRepository
	session     repositories.SessionRepository
	attendance  repositories.AttendanceRepository
}

// NewRepository builds every gorm-backed repository over db.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:          db,
		institution: NewInstitutionPostgreSQL(db),
		student:     NewStudentPostgreSQL(db),
		group:       NewGroupPostgreSQL(db),
		session:     NewSessionPostgreSQL(db),
		attendance:  NewAttendancePostgreSQL(db),
	}
}

func (r *repository) Institution() repositories.InstitutionRepository { return r.institution }
func (r *repository) Student() repositories.StudentRepository         { return r.student }
func (r *repository) Group() repositories.GroupRepository             { return r.group }
func (r *repository) Session() repositories.SessionRepository         { return r.session }
func (r *repository) Attendance() repositories.AttendanceRepository   { return r.attendance }

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
