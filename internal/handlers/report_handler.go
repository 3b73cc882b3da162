package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/academy-report-service/internal/services"
	"github.com/SAP-F-2025/academy-report-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
}

type GenerateReportBody struct {
	GroupID    *string `json:"group_id"`
	Regenerate bool    `json:"regenerate"`
}

func NewReportHandler(reportService services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// GetSummary returns the grade and attendance summary of a student for a level
// @Summary Student level summary
// @Tags reports
// @Produce json
// @Param student_id path string true "Student ID"
// @Param level path string true "Level name"
// @Param group_id query string false "Group used to scope attendance"
// @Success 200 {object} models.StudentLevelSummary
// @Failure 404 {object} ErrorResponse
// @Router /students/{student_id}/levels/{level}/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}
	level := ParseStringIDParam(c, "level")
	if level == "" {
		return
	}

	h.LogRequest(c, "Getting student summary", "student_id", studentID, "level", level)

	summary, err := h.reportService.GetStudentSummary(c.Request.Context(), studentID, level, OptionalQuery(c, "group_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GenerateReport builds the narrative report of a student for a level
// @Summary Generate narrative report
// @Tags reports
// @Accept json
// @Produce json
// @Param student_id path string true "Student ID"
// @Param level path string true "Level name"
// @Param body body GenerateReportBody false "Options"
// @Success 200 {object} services.StudentReport
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /students/{student_id}/levels/{level}/report [post]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}
	level := ParseStringIDParam(c, "level")
	if level == "" {
		return
	}

	var body GenerateReportBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid request payload",
				Details: err.Error(),
			})
			return
		}
	}
	if body.GroupID == nil {
		body.GroupID = OptionalQuery(c, "group_id")
	}

	h.LogRequest(c, "Generating report", "student_id", studentID, "level", level, "regenerate", body.Regenerate)

	result, err := h.reportService.GenerateReport(c.Request.Context(), &services.ReportRequest{
		StudentID:  studentID,
		LevelName:  level,
		GroupID:    body.GroupID,
		Regenerate: body.Regenerate,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// InvalidateCache drops the cached summaries and reports of a student
// @Summary Invalidate student cache
// @Tags reports
// @Param student_id path string true "Student ID"
// @Success 204
// @Router /students/{student_id}/cache [delete]
func (h *ReportHandler) InvalidateCache(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}

	h.LogRequest(c, "Invalidating student cache", "student_id", studentID)

	if err := h.reportService.InvalidateStudent(c.Request.Context(), studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
