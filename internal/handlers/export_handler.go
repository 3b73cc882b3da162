package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/academy-report-service/internal/services"
	"github.com/SAP-F-2025/academy-report-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
	}
}

// ExportGradebook downloads the gradebook of a group for a level
// @Summary Export gradebook
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param group_id path string true "Group ID"
// @Param level path string true "Level name"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /groups/{group_id}/levels/{level}/gradebook.xlsx [get]
func (h *ExportHandler) ExportGradebook(c *gin.Context) {
	groupID := ParseStringIDParam(c, "group_id")
	if groupID == "" {
		return
	}
	level := ParseStringIDParam(c, "level")
	if level == "" {
		return
	}

	h.LogRequest(c, "Exporting gradebook", "group_id", groupID, "level", level)

	data, err := h.exportService.ExportGradebook(c.Request.Context(), groupID, level)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="gradebook-%s-%s.xlsx"`, groupID, level))
	c.Data(http.StatusOK, xlsxContentType, data)
}
