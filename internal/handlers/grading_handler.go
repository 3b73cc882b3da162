package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/academy-report-service/internal/services"
	"github.com/SAP-F-2025/academy-report-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type GradingHandler struct {
	BaseHandler
	gradingService services.GradingService
}

func NewGradingHandler(gradingService services.GradingService, logger utils.Logger) *GradingHandler {
	return &GradingHandler{
		BaseHandler:    NewBaseHandler(logger),
		gradingService: gradingService,
	}
}

// Calculate computes a final grade from the supplied configuration and partials
// @Summary Calculate final grade
// @Tags grading
// @Accept json
// @Produce json
// @Param request body services.CalculateGradeRequest true "Grading configuration and grades"
// @Success 200 {object} services.CalculateGradeResponse
// @Failure 400 {object} ErrorResponse
// @Router /grading/calculate [post]
func (h *GradingHandler) Calculate(c *gin.Context) {
	h.LogRequest(c, "Calculating final grade")

	var req services.CalculateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.gradingService.Calculate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
