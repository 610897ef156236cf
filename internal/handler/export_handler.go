package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"splittab/internal/service"
)

// ExportHandler handles settlement export endpoints.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// CSV handles GET /api/v1/bills/:id/export/csv
// @Summary Download the settlement summary as CSV
// @Description The file starts with a UTF-8 BOM so Excel opens it correctly.
// @Tags exports
// @Produce text/csv
// @Param id path string true "Bill ID"
// @Success 200 {string} string "CSV file"
// @Failure 404 {object} APIResponse
// @Router /bills/{id}/export/csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	export, err := h.exportService.CSV(c.Request.Context(), billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

// XLSX handles GET /api/v1/bills/:id/export/xlsx
// @Summary Download the settlement summary as an XLSX workbook
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Bill ID"
// @Success 200 {string} string "XLSX file"
// @Failure 404 {object} APIResponse
// @Router /bills/{id}/export/xlsx [get]
func (h *ExportHandler) XLSX(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	export, err := h.exportService.XLSX(c.Request.Context(), billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

// Archive handles POST /api/v1/bills/:id/export/archive
// @Summary Archive an export and get a shareable link
// @Description Render the export, store it in the archive bucket, and return a presigned download URL.
// @Tags exports
// @Produce json
// @Param id path string true "Bill ID"
// @Param format query string false "Export format: csv (default) or xlsx"
// @Success 200 {object} APIResponse{data=service.ArchivedExport}
// @Failure 404 {object} APIResponse
// @Router /bills/{id}/export/archive [post]
func (h *ExportHandler) Archive(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	archived, err := h.exportService.Archive(c.Request.Context(), billID, c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, archived)
}
