package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/cache"
	"github.com/SAP-F-2025/academy-report-service/internal/events"
	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/SAP-F-2025/academy-report-service/internal/report"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories"
	"github.com/SAP-F-2025/academy-report-service/internal/validator"
)

// ServiceManager gives the handlers access to every service
type ServiceManager interface {
	Grading() GradingService
	Report() ReportService
	Certificate() CertificateService
	Export() ExportService
}

// Dependencies groups what the services are built from
type Dependencies struct {
	Repository       repositories.Repository
	Cache            cache.CacheService
	Publisher        events.EventPublisher
	Generator        report.NarrativeGenerator
	Validator        *validator.Validator
	Logger           *slog.Logger
	DefaultGrading   models.GradingConfiguration
	ReportCacheTTL   time.Duration
	NarrativeTimeout time.Duration
}

type serviceManager struct {
	grading     GradingService
	report      ReportService
	certificate CertificateService
	export      ExportService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{
		grading: NewGradingService(deps.Validator, deps.Logger),
		report: NewReportService(deps.Repository, deps.Validator, deps.Cache, deps.Generator, deps.Publisher,
			ReportServiceConfig{
				CacheTTL:         deps.ReportCacheTTL,
				NarrativeTimeout: deps.NarrativeTimeout,
				DefaultGrading:   deps.DefaultGrading,
			}, deps.Logger),
		certificate: NewCertificateService(deps.Repository, deps.Validator, deps.Publisher, deps.Logger),
		export:      NewExportService(deps.Repository, deps.Validator, deps.Publisher, deps.DefaultGrading, deps.Logger),
	}
}

func (m *serviceManager) Grading() GradingService         { return m.grading }
func (m *serviceManager) Report() ReportService           { return m.report }
func (m *serviceManager) Certificate() CertificateService { return m.certificate }
func (m *serviceManager) Export() ExportService           { return m.export }
