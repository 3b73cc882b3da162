package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/attendance"
	"github.com/SAP-F-2025/academy-report-service/internal/grading"
	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"github.com/SAP-F-2025/academy-report-service/internal/validator"
	"golang.org/x/sync/errgroup"
)

// levelData is everything known about one student in one level.
type levelData struct {
	student     *models.Student
	group       *models.Group
	institution *models.Institution
	grades      *models.StudentGradeStructure
	hasGrades   bool
	config      models.GradingConfiguration
	result      grading.FinalGradeResult
	records     []models.AttendanceRecord
	summary     models.AttendanceSummary
}

// levelLoader fetches the records a level computation needs and resolves the grading rules.
type levelLoader struct {
	repo           repositories.Repository
	validator      *validator.Validator
	defaultGrading models.GradingConfiguration
}

func (l *levelLoader) load(ctx context.Context, studentID, levelName string, groupID *string) (*levelData, error) {
	student, err := l.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	grades, ok, err := student.LevelGrades(levelName)
	if err != nil {
		return nil, err
	}

	data := &levelData{student: student, grades: grades, hasGrades: ok}

	effectiveGroup := groupID
	if effectiveGroup == nil || *effectiveGroup == "" {
		effectiveGroup = student.GroupID
	}
	if effectiveGroup != nil && *effectiveGroup != "" {
		data.group, data.institution, err = l.groupContext(ctx, *effectiveGroup)
		if err != nil {
			return nil, err
		}
	}

	data.config, err = l.resolveConfig(data.institution)
	if err != nil {
		return nil, err
	}

	var sessions []models.Session
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := l.repo.Attendance().ListByStudent(gctx, studentID, repositories.AttendanceFilters{})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		data.records = records
		return nil
	})
	if data.group != nil {
		g.Go(func() error {
			list, err := l.repo.Session().ListByGroup(gctx, data.group.ID)
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
			sessions = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if data.group != nil {
		data.records = attendance.ScopeToGroup(data.records, sessions, data.group.ID)
	}

	data.result = grading.CalculateFinalGrade(grades, data.config)
	data.summary = attendance.Summarize(data.records)
	return data, nil
}

// groupContext loads a group and the institution that owns it.
func (l *levelLoader) groupContext(ctx context.Context, groupID string) (*models.Group, *models.Institution, error) {
	group, err := l.repo.Group().GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, nil, ErrGroupNotFound
	}
	if group.InstitutionID == "" {
		return group, nil, nil
	}

	institution, err := l.repo.Institution().GetByID(ctx, group.InstitutionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get institution: %w", err)
	}
	if institution == nil {
		return nil, nil, ErrInstitutionNotFound
	}
	return group, institution, nil
}

// resolveConfig returns the stored grading rules of the institution, or the service default.
func (l *levelLoader) resolveConfig(institution *models.Institution) (models.GradingConfiguration, error) {
	cfg := l.defaultGrading
	if institution != nil {
		stored, ok, err := institution.Grading()
		if err != nil {
			return cfg, err
		}
		if ok {
			cfg = stored
		}
	}

	if err := l.validator.Validate(cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrGradingConfigMissing, err)
	}
	if errs := l.validator.Business().ValidateGradingConfig(cfg); len(errs) > 0 {
		return cfg, fmt.Errorf("%w: %v", ErrGradingConfigMissing, errs)
	}
	return cfg, nil
}

// buildSummary assembles the summary DTO from computed results.
func buildSummary(data *levelData, levelName string, now time.Time) *models.StudentLevelSummary {
	summary := &models.StudentLevelSummary{
		StudentID:    data.student.ID,
		StudentName:  data.student.FullName,
		LevelName:    levelName,
		Partials:     data.result.Partials,
		FinalGrade:   data.result.GradePtr(),
		MaxScore:     data.result.MaxScore,
		Attendance:   data.summary,
		Observations: attendance.CompileObservations(data.records),
		GeneratedAt:  now,
	}
	if data.group != nil {
		id := data.group.ID
		summary.GroupID = &id
	}
	if passed, ok := data.result.Passed(); ok {
		summary.Passed = &passed
	}
	return summary
}
