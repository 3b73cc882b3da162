package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/cache"
	"github.com/SAP-F-2025/academy-report-service/internal/events"
	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/SAP-F-2025/academy-report-service/internal/report"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"github.com/SAP-F-2025/academy-report-service/internal/validator"
)

// ReportService builds per-level student summaries and narrative reports
type ReportService interface {
	GetStudentSummary(ctx context.Context, studentID, levelName string, groupID *string) (*models.StudentLevelSummary, error)
	GenerateReport(ctx context.Context, req *ReportRequest) (*StudentReport, error)
	InvalidateStudent(ctx context.Context, studentID string) error
}

type ReportRequest struct {
	StudentID  string  `json:"-"`
	LevelName  string  `json:"-"`
	GroupID    *string `json:"group_id,omitempty"`
	Regenerate bool    `json:"regenerate"`
}

type StudentReport struct {
	Summary     *models.StudentLevelSummary `json:"summary"`
	Brief       report.NarrativeBrief       `json:"brief"`
	Report      string                      `json:"report"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

type ReportServiceConfig struct {
	CacheTTL         time.Duration
	NarrativeTimeout time.Duration
	DefaultGrading   models.GradingConfiguration
}

type reportService struct {
	validator *validator.Validator
	loader    *levelLoader
	cache     cache.CacheService
	generator report.NarrativeGenerator
	publisher events.EventPublisher
	config    ReportServiceConfig
	logger    *ServiceLogger
	now       func() time.Time
}

func NewReportService(
	repo repositories.Repository,
	validator *validator.Validator,
	cache cache.CacheService,
	generator report.NarrativeGenerator,
	publisher events.EventPublisher,
	config ReportServiceConfig,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		validator: validator,
		loader:    &levelLoader{repo: repo, validator: validator, defaultGrading: config.DefaultGrading},
		cache:     cache,
		generator: generator,
		publisher: publisher,
		config:    config,
		logger:    NewServiceLogger(logger, LogConfig{Service: "report", Component: "summary"}),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) GetStudentSummary(ctx context.Context, studentID, levelName string, groupID *string) (summary *models.StudentLevelSummary, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "get_student_summary", "student", studentID, time.Since(start), err)
	}()

	if err := s.validator.ValidateVar("level", levelName, "level_name"); err != nil {
		return nil, err
	}

	key := cache.SummaryKey(studentID, levelName, groupKey(groupID))
	var cached models.StudentLevelSummary
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	data, err := s.loader.load(ctx, studentID, levelName, groupID)
	if err != nil {
		return nil, err
	}

	summary = buildSummary(data, levelName, s.now())
	s.setCached(ctx, key, summary)
	return summary, nil
}

func (s *reportService) GenerateReport(ctx context.Context, req *ReportRequest) (result *StudentReport, err error) {
	start := time.Now()
	defer func() {
		studentID := ""
		if req != nil {
			studentID = req.StudentID
		}
		s.logger.LogOperation(ctx, "generate_report", "student", studentID, time.Since(start), err)
	}()

	if req == nil {
		return nil, ErrBadRequest
	}
	if err := s.validator.ValidateVar("level", req.LevelName, "level_name"); err != nil {
		return nil, err
	}

	key := cache.ReportKey(req.StudentID, req.LevelName, groupKey(req.GroupID))
	if !req.Regenerate {
		var cached StudentReport
		if s.getCached(ctx, key, &cached) {
			return &cached, nil
		}
	}

	data, err := s.loader.load(ctx, req.StudentID, req.LevelName, req.GroupID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summary := buildSummary(data, req.LevelName, now)
	brief := report.AssembleBrief(data.student.FullName, req.LevelName, data.result, data.summary, summary.Observations)

	narrative, err := s.narrate(ctx, brief)
	if err != nil {
		return nil, err
	}

	result = &StudentReport{
		Summary:     summary,
		Brief:       brief,
		Report:      narrative.Report,
		GeneratedAt: now,
	}

	s.publish(ctx, events.NewEvent(events.EventReportGenerated, events.ReportGeneratedEvent{
		StudentID:      req.StudentID,
		LevelName:      req.LevelName,
		GroupID:        summary.GroupID,
		FinalGrade:     summary.FinalGrade,
		Passed:         summary.Passed,
		AttendanceRate: summary.Attendance.AttendanceRate,
		GeneratedAt:    now,
	}))
	s.setCached(ctx, key, result)
	return result, nil
}

// InvalidateStudent drops every cached summary and report of a student.
func (s *reportService) InvalidateStudent(ctx context.Context, studentID string) error {
	if strings.TrimSpace(studentID) == "" {
		return NewValidationError("student_id", "is required", studentID)
	}
	for _, pattern := range cache.StudentPatterns(studentID) {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate cache: %w", err)
		}
	}
	return nil
}

// narrate makes a single generator call bounded by the configured timeout.
func (s *reportService) narrate(ctx context.Context, brief report.NarrativeBrief) (*report.NarrativeReport, error) {
	callCtx := ctx
	if s.config.NarrativeTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.config.NarrativeTimeout)
		defer cancel()
	}

	narrative, err := s.generator.GenerateReport(callCtx, brief)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNarrativeUnavailable, err)
	}
	if narrative == nil || strings.TrimSpace(narrative.Report) == "" {
		return nil, fmt.Errorf("%w: %v", ErrNarrativeUnavailable, report.ErrEmptyReport)
	}
	return narrative, nil
}

func (s *reportService) getCached(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.LogCacheFailure(ctx, "get", key, err)
	}
	return false
}

func (s *reportService) setCached(ctx context.Context, key string, value interface{}) {
	if s.cache == nil || s.config.CacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.config.CacheTTL); err != nil {
		s.logger.LogCacheFailure(ctx, "set", key, err)
	}
}

func (s *reportService) publish(ctx context.Context, event *events.Event) {
	publishEvent(ctx, s.publisher, s.logger, event)
}

// publishEvent sends an event without failing the calling operation.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *ServiceLogger, event *events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishEvent(ctx, event); err != nil {
		logger.LogEventFailure(ctx, string(event.Type), event.ID, err)
	}
}

func groupKey(groupID *string) string {
	if groupID == nil || *groupID == "" {
		return "-"
	}
	return *groupID
}
