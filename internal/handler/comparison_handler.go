package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ComparisonHandler handles stored comparison endpoints.
type ComparisonHandler struct {
	service service.ComparisonService
}

// NewComparisonHandler creates a new ComparisonHandler.
func NewComparisonHandler(svc service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{service: svc}
}

// List handles GET /api/v1/comparisons
// @Summary List comparisons
// @Description List stored comparisons, newest first
// @Tags comparisons
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Comparison,meta=PagMeta} "List of comparisons"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /comparisons [get]
func (h *ComparisonHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := h.service.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/comparisons/:id
// @Summary Get comparison by ID
// @Description Get comparison metadata, with a presigned download URL once completed
// @Tags comparisons
// @Produce json
// @Param id path string true "Comparison ID (UUID)"
// @Success 200 {object} Response{data=ComparisonWithDownloadURL} "Comparison"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Comparison not found"
// @Security BearerAuth
// @Router /comparisons/{id} [get]
func (h *ComparisonHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cmp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	resp := ComparisonWithDownloadURL{Comparison: *cmp}
	if cmp.Status == domain.ComparisonStatusCompleted {
		url, err := h.service.GetDownloadURL(c.Request.Context(), id)
		if err != nil {
			HandleError(c, err)
			return
		}
		resp.DownloadURL = url
	}
	RespondOK(c, resp)
}

// Report handles GET /api/v1/comparisons/:id/report
// @Summary Download the per-page report
// @Description Per-page difference counts as an XLSX workbook, or CSV with format=csv
// @Tags comparisons
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param id path string true "Comparison ID (UUID)"
// @Param format query string false "xlsx or csv" default(xlsx)
// @Success 200 {file} binary "Report"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or format"
// @Failure 404 {object} ErrorResponseBody "Comparison not found"
// @Failure 409 {object} ErrorResponseBody "Comparison not completed"
// @Security BearerAuth
// @Router /comparisons/{id}/report [get]
func (h *ComparisonHandler) Report(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	// Buffered so errors still produce a JSON envelope.
	var buf bytes.Buffer
	var contentType, ext string
	var err error
	switch format := c.DefaultQuery("format", "xlsx"); format {
	case "xlsx":
		contentType, ext = xlsxContentType, "xlsx"
		err = h.service.ExportReport(c.Request.Context(), id, &buf)
	case "csv":
		contentType, ext = "text/csv; charset=utf-8", "csv"
		err = h.service.ExportCSV(c.Request.Context(), id, &buf)
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be xlsx or csv")
		return
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="comparison-%s.%s"`, id, ext))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Delete handles DELETE /api/v1/comparisons/:id
// @Summary Delete a comparison
// @Description Removes stored documents and marks the comparison deleted
// @Tags comparisons
// @Produce json
// @Param id path string true "Comparison ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Comparison deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Comparison not found"
// @Security BearerAuth
// @Router /comparisons/{id} [delete]
func (h *ComparisonHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MessageResponse{Message: "comparison deleted"})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid comparison ID")
		return uuid.Nil, false
	}
	return id, true
}
