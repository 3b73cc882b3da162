package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/attendance"
	"github.com/SAP-F-2025/academy-report-service/internal/events"
	"github.com/SAP-F-2025/academy-report-service/internal/grading"
	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"github.com/SAP-F-2025/academy-report-service/internal/validator"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

const (
	gradebookSheet = "Gradebook"
	sessionsSheet  = "Sessions"

	statusPassed     = "Passed"
	statusFailed     = "Failed"
	statusIncomplete = "Incomplete"
)

// ExportService produces spreadsheet exports of a group's grades and attendance
type ExportService interface {
	ExportGradebook(ctx context.Context, groupID, levelName string) ([]byte, error)
}

type exportService struct {
	repo      repositories.Repository
	validator *validator.Validator
	loader    *levelLoader
	pub       events.EventPublisher
	logger    *ServiceLogger
	now       func() time.Time
}

func NewExportService(repo repositories.Repository, validator *validator.Validator, publisher events.EventPublisher, defaultGrading models.GradingConfiguration, logger *slog.Logger) ExportService {
	return &exportService{
		repo:      repo,
		validator: validator,
		loader:    &levelLoader{repo: repo, validator: validator, defaultGrading: defaultGrading},
		pub:       publisher,
		logger:    NewServiceLogger(logger, LogConfig{Service: "export", Component: "gradebook"}),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// gradebookRow is the computed line of one student
type gradebookRow struct {
	student *models.Student
	result  grading.FinalGradeResult
	summary models.AttendanceSummary
}

func (s *exportService) ExportGradebook(ctx context.Context, groupID, levelName string) (data []byte, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "export_gradebook", "group", groupID, time.Since(start), err)
	}()

	if err := s.validator.ValidateVar("level", levelName, "level_name"); err != nil {
		return nil, err
	}

	group, institution, err := s.loader.groupContext(ctx, groupID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loader.resolveConfig(institution)
	if err != nil {
		return nil, err
	}

	students, err := s.repo.Student().ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	sessions, err := s.repo.Session().ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	ids := make([]string, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	records, err := s.repo.Attendance().ListByStudents(ctx, ids, repositories.AttendanceFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	records = attendance.ScopeToGroup(records, sessions, group.ID)

	rows := make([]gradebookRow, len(students))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, st := range students {
		g.Go(func() error {
			grades, _, err := st.LevelGrades(levelName)
			if err != nil {
				return err
			}
			rows[i] = gradebookRow{
				student: st,
				result:  grading.CalculateFinalGrade(grades, cfg),
				summary: attendance.Summarize(attendance.ForStudent(records, st.ID)),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data, err = writeGradebook(rows, sessions, cfg)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.pub, s.logger, events.NewEvent(events.EventGradebookExported, events.GradebookExportedEvent{
		GroupID:    group.ID,
		LevelName:  levelName,
		Students:   len(rows),
		ExportedAt: s.now(),
	}))
	return data, nil
}

func writeGradebook(rows []gradebookRow, sessions []models.Session, cfg models.GradingConfiguration) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", gradebookSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []interface{}{"Student ID", "Student"}
	for n := 1; n <= cfg.NumberOfPartials; n++ {
		headers = append(headers, fmt.Sprintf("Partial %d", n))
	}
	headers = append(headers,
		"Final Grade", "Max Score", "Status",
		"Present", "Absent", "Late", "Attendance Rate", "Sessions",
	)
	if err := f.SetSheetRow(gradebookSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write Excel headers: %w", err)
	}

	for i, row := range rows {
		values := []interface{}{row.student.ID, row.student.FullName}
		for _, p := range row.result.Partials {
			if p.Present {
				values = append(values, p.Total)
			} else {
				values = append(values, "")
			}
		}

		status := statusIncomplete
		var final interface{} = ""
		if grade, ok := row.result.Grade(); ok {
			final = grade
			status = statusFailed
			if grading.IsPassing(grade, cfg) {
				status = statusPassed
			}
		}
		values = append(values,
			final, row.result.MaxScore, status,
			row.summary.Present, row.summary.Absent, row.summary.Late,
			row.summary.AttendanceRate, row.summary.TotalSessionsForStudent,
		)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(gradebookSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write Excel row: %w", err)
		}
	}

	if _, err := f.NewSheet(sessionsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := f.SetSheetRow(sessionsSheet, "A1", &[]interface{}{"Session ID", "Date", "Time", "Label"}); err != nil {
		return nil, fmt.Errorf("failed to write Excel headers: %w", err)
	}
	for i, session := range sessions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sessionsSheet, cell, &[]interface{}{session.ID, session.Date, session.Time, session.Label()}); err != nil {
			return nil, fmt.Errorf("failed to write Excel row: %w", err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
