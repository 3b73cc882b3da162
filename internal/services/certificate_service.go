package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/certificate"
	"github.com/SAP-F-2025/academy-report-service/internal/events"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"github.com/SAP-F-2025/academy-report-service/internal/validator"
)

// CertificateService fills institution certificate templates for students
type CertificateService interface {
	Render(ctx context.Context, req *CertificateRequest) (*CertificateResult, error)
}

type CertificateRequest struct {
	StudentID string  `json:"-"`
	LevelName string  `json:"-"`
	GroupID   *string `json:"group_id,omitempty"`
}

type CertificateResult struct {
	StudentID       string              `json:"student_id"`
	LevelName       string              `json:"level_name"`
	GroupID         string              `json:"group_id"`
	CertificateCode string              `json:"certificate_code,omitempty"`
	Context         certificate.Context `json:"context"`
	Content         string              `json:"content"`
	IssuedAt        time.Time           `json:"issued_at"`
}

type certificateService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    *ServiceLogger
	now       func() time.Time
}

func NewCertificateService(repo repositories.Repository, validator *validator.Validator, publisher events.EventPublisher, logger *slog.Logger) CertificateService {
	return &certificateService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		logger:    NewServiceLogger(logger, LogConfig{Service: "certificate", Component: "renderer"}),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *certificateService) Render(ctx context.Context, req *CertificateRequest) (result *CertificateResult, err error) {
	start := time.Now()
	defer func() {
		studentID := ""
		if req != nil {
			studentID = req.StudentID
		}
		s.logger.LogOperation(ctx, "render_certificate", "student", studentID, time.Since(start), err)
	}()

	if req == nil {
		return nil, ErrBadRequest
	}
	if err := s.validator.ValidateVar("level", req.LevelName, "level_name"); err != nil {
		return nil, err
	}

	student, err := s.repo.Student().GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	grades, ok, err := student.LevelGrades(req.LevelName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLevelNotFound
	}

	groupID := req.GroupID
	if groupID == nil || *groupID == "" {
		groupID = student.GroupID
	}
	if groupID == nil || *groupID == "" {
		return nil, NewValidationError("group_id", "is required when the student has no group", nil)
	}

	group, err := s.repo.Group().GetByID(ctx, *groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	institution, err := s.repo.Institution().GetByID(ctx, group.InstitutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get institution: %w", err)
	}
	if institution == nil {
		return nil, ErrInstitutionNotFound
	}
	if institution.CertificateTemplate == nil || strings.TrimSpace(*institution.CertificateTemplate) == "" {
		return nil, ErrTemplateMissing
	}

	code := ""
	if grades.CertificateCode != nil {
		code = *grades.CertificateCode
	}

	certCtx := certificate.Context{
		InstitutionName: institution.Name,
		StudentName:     student.FullName,
		LevelName:       req.LevelName,
		ProgramType:     group.Type,
		ProgramShift:    group.Shift,
		TeacherName:     group.TeacherName,
		SedeName:        group.SedeName,
		CertificateCode: code,
	}

	now := s.now()
	result = &CertificateResult{
		StudentID:       student.ID,
		LevelName:       req.LevelName,
		GroupID:         group.ID,
		CertificateCode: strings.TrimSpace(code),
		Context:         certCtx,
		Content:         certificate.Render(*institution.CertificateTemplate, certCtx),
		IssuedAt:        now,
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.EventCertificateIssued, events.CertificateIssuedEvent{
		StudentID:       student.ID,
		LevelName:       req.LevelName,
		GroupID:         group.ID,
		CertificateCode: result.CertificateCode,
		IssuedAt:        now,
	}))
	return result, nil
}
