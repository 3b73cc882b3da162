package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/academy-report-service/internal/services"
	"github.com/SAP-F-2025/academy-report-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type CertificateHandler struct {
	BaseHandler
	certificateService services.CertificateService
}

type RenderCertificateBody struct {
	GroupID *string `json:"group_id"`
}

func NewCertificateHandler(certificateService services.CertificateService, logger utils.Logger) *CertificateHandler {
	return &CertificateHandler{
		BaseHandler:        NewBaseHandler(logger),
		certificateService: certificateService,
	}
}

// RenderCertificate fills the institution certificate template for a student
// @Summary Render certificate
// @Tags certificates
// @Accept json
// @Produce json,plain
// @Param student_id path string true "Student ID"
// @Param level path string true "Level name"
// @Param format query string false "text for the bare certificate text"
// @Success 200 {object} services.CertificateResult
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /students/{student_id}/levels/{level}/certificate [post]
func (h *CertificateHandler) RenderCertificate(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}
	level := ParseStringIDParam(c, "level")
	if level == "" {
		return
	}

	var body RenderCertificateBody
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

	h.LogRequest(c, "Rendering certificate", "student_id", studentID, "level", level)

	result, err := h.certificateService.Render(c.Request.Context(), &services.CertificateRequest{
		StudentID: studentID,
		LevelName: level,
		GroupID:   body.GroupID,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, result.Content)
		return
	}
	c.JSON(http.StatusOK, result)
}
