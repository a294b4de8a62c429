package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/middleware"
	"pdfcompare/internal/service"
)

// CompareHandler handles comparison submission endpoints.
type CompareHandler struct {
	service service.ComparisonService
}

// NewCompareHandler creates a new CompareHandler.
func NewCompareHandler(svc service.ComparisonService) *CompareHandler {
	return &CompareHandler{service: svc}
}

// Compare handles POST /api/v1/pdf/compare
// @Summary Compare two PDFs
// @Description Compares file1 (original) with file2 (revised) and returns the highlighted comparison document.
// @Description isMultiple=true renders the documents side by side instead of overlaid.
// @Tags compare
// @Accept multipart/form-data
// @Produce application/pdf
// @Param file1 formData file true "Original PDF"
// @Param file2 formData file true "Revised PDF"
// @Param isMultiple formData bool false "Side-by-side layout" default(false)
// @Success 200 {file} binary "Comparison document"
// @Header 200 {string} X-Comparison-ID "Archived comparison ID"
// @Failure 400 {object} ErrorResponseBody "Missing file or invalid document"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /pdf/compare [post]
func (h *CompareHandler) Compare(c *gin.Context) {
	original, revised, ok := formFiles(c)
	if !ok {
		return
	}
	defer func() { _ = original.File.Close() }()
	defer func() { _ = revised.File.Close() }()

	layout, ok := formLayout(c)
	if !ok {
		return
	}

	out, err := h.service.Compare(c.Request.Context(), service.CompareInput{
		Original: original,
		Revised:  revised,
		Layout:   layout,
		ClientID: middleware.GetClientID(c),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="comparison.pdf"`)
	c.Header("X-Page-Count", strconv.Itoa(out.PageCount))
	if out.ComparisonID != nil {
		c.Header("X-Comparison-ID", out.ComparisonID.String())
	}
	c.Data(http.StatusOK, domain.ContentTypePDF, out.PDF)
}

// Submit handles POST /api/v1/comparisons
// @Summary Queue a comparison
// @Description Stores both PDFs and queues the comparison; poll GET /comparisons/{id} for the result.
// @Tags comparisons
// @Accept multipart/form-data
// @Produce json
// @Param file1 formData file true "Original PDF"
// @Param file2 formData file true "Revised PDF"
// @Param isMultiple formData bool false "Side-by-side layout" default(false)
// @Param notify_email formData string false "Address notified when the comparison finishes"
// @Success 202 {object} Response{data=domain.Comparison} "Comparison queued"
// @Failure 400 {object} ErrorResponseBody "Missing file or invalid document"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /comparisons [post]
func (h *CompareHandler) Submit(c *gin.Context) {
	original, revised, ok := formFiles(c)
	if !ok {
		return
	}
	defer func() { _ = original.File.Close() }()
	defer func() { _ = revised.File.Close() }()

	layout, ok := formLayout(c)
	if !ok {
		return
	}

	cmp, err := h.service.Submit(c.Request.Context(), service.SubmitInput{
		Original:    original,
		Revised:     revised,
		Layout:      layout,
		NotifyEmail: c.PostForm("notify_email"),
		ClientID:    middleware.GetClientID(c),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, cmp)
}

// formFiles opens file1 and file2. Returns false if either is missing (error
// response already written).
func formFiles(c *gin.Context) (original, revised service.UploadedFile, ok bool) {
	f1, h1, err := c.Request.FormFile("file1")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file1 field is required")
		return original, revised, false
	}
	f2, h2, err := c.Request.FormFile("file2")
	if err != nil {
		_ = f1.Close()
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file2 field is required")
		return original, revised, false
	}
	return service.UploadedFile{File: f1, Header: h1}, service.UploadedFile{File: f2, Header: h2}, true
}

// formLayout reads isMultiple. An absent flag leaves the layout to the service default.
func formLayout(c *gin.Context) (domain.LayoutMode, bool) {
	raw := c.PostForm("isMultiple")
	if raw == "" {
		return "", true
	}
	multiple, err := strconv.ParseBool(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_LAYOUT", "isMultiple must be true or false")
		return "", false
	}
	if multiple {
		return domain.LayoutSideBySide, true
	}
	return domain.LayoutOverlay, true
}
