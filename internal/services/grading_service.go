package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/grading"
	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/SAP-F-2025/academy-report-service/internal/validator"
)

// GradingService computes final grades from grade entries supplied by the caller
type GradingService interface {
	Calculate(ctx context.Context, req *CalculateGradeRequest) (*CalculateGradeResponse, error)
}

type CalculateGradeRequest struct {
	Config models.GradingConfiguration  `json:"config"`
	Grades models.StudentGradeStructure `json:"grades"`
}

type CalculateGradeResponse struct {
	Partials     []models.PartialSummary `json:"partials"`
	FinalGrade   *float64                `json:"final_grade"`
	Computable   bool                    `json:"computable"`
	MaxScore     float64                 `json:"max_score"`
	PassingGrade float64                 `json:"passing_grade"`
	Passed       *bool                   `json:"passed"`
	Warnings     ValidationErrors        `json:"warnings,omitempty"`
}

type gradingService struct {
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewGradingService(validator *validator.Validator, logger *slog.Logger) GradingService {
	return &gradingService{
		validator: validator,
		logger:    NewServiceLogger(logger, LogConfig{Service: "grading", Component: "calculator"}),
	}
}

func (s *gradingService) Calculate(ctx context.Context, req *CalculateGradeRequest) (resp *CalculateGradeResponse, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "calculate_grade", "grades", "", time.Since(start), err)
	}()

	if req == nil {
		return nil, ErrBadRequest
	}
	if err := s.validator.Validate(req.Config); err != nil {
		var ve ValidationErrors
		if errors.As(err, &ve) {
			return nil, ve
		}
		return nil, err
	}
	if errs := s.validator.Business().ValidateGradingConfig(req.Config); len(errs) > 0 {
		return nil, errs
	}

	result := grading.CalculateFinalGrade(&req.Grades, req.Config)
	warnings := s.validator.Business().ScoreWarnings(&req.Grades, req.Config)
	s.logger.LogValidationWarnings(ctx, "calculate_grade", "", warnings)

	resp = &CalculateGradeResponse{
		Partials:     result.Partials,
		FinalGrade:   result.GradePtr(),
		Computable:   result.Computable,
		MaxScore:     result.MaxScore,
		PassingGrade: result.PassingGrade,
		Warnings:     warnings,
	}
	if passed, ok := result.Passed(); ok {
		resp.Passed = &passed
	}
	return resp, nil
}
