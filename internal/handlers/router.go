package handlers

import (
	"github.com/SAP-F-2025/academy-report-service/internal/services"
	"github.com/SAP-F-2025/academy-report-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	gradingHandler     *GradingHandler
	reportHandler      *ReportHandler
	certificateHandler *CertificateHandler
	exportHandler      *ExportHandler
	healthHandler      *HealthHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	healthChecks map[string]Pinger,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		gradingHandler:     NewGradingHandler(serviceManager.Grading(), logger),
		reportHandler:      NewReportHandler(serviceManager.Report(), logger),
		certificateHandler: NewCertificateHandler(serviceManager.Certificate(), logger),
		exportHandler:      NewExportHandler(serviceManager.Export(), logger),
		healthHandler:      NewHealthHandler(healthChecks),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", hm.healthHandler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		grading := v1.Group("/grading")
		{
			grading.POST("/calculate", hm.gradingHandler.Calculate)
		}

		students := v1.Group("/students/:student_id")
		{
			students.GET("/levels/:level/summary", hm.reportHandler.GetSummary)
			students.POST("/levels/:level/report", hm.reportHandler.GenerateReport)
			students.POST("/levels/:level/certificate", hm.certificateHandler.RenderCertificate)
			students.DELETE("/cache", hm.reportHandler.InvalidateCache)
		}

		groups := v1.Group("/groups/:group_id")
		{
			groups.GET("/levels/:level/gradebook.xlsx", hm.exportHandler.ExportGradebook)
		}
	}
}
