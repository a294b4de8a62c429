package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/handler"
	"pdfcompare/mocks"
)

func newComparisonRouter(svc *mocks.MockComparisonService) *gin.Engine {
	h := handler.NewComparisonHandler(svc)
	r := gin.New()
	r.GET("/comparisons", h.List)
	r.GET("/comparisons/:id", h.GetByID)
	r.GET("/comparisons/:id/report", h.Report)
	r.DELETE("/comparisons/:id", h.Delete)
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, http.NoBody)
	r.ServeHTTP(w, req)
	return w
}

func TestComparisonHandler_List_ClampsPagination(t *testing.T) {
	svc := new(mocks.MockComparisonService)
	items := []domain.Comparison{{ID: uuid.New()}, {ID: uuid.New()}}
	svc.On("List", mock.Anything, 0, 20).Return(items, 42, nil)

	w := serve(newComparisonRouter(svc), http.MethodGet, "/comparisons?offset=-5&limit=500")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, &handler.PagMeta{Total: 42, Offset: 0, Limit: 20}, resp.Meta)
	assert.Len(t, resp.Data, 2)
}

func TestComparisonHandler_GetByID_Completed(t *testing.T) {
	svc := new(mocks.MockComparisonService)
	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(&domain.Comparison{ID: id, Status: domain.ComparisonStatusCompleted}, nil)
	svc.On("GetDownloadURL", mock.Anything, id).Return("https://example.com/signed", nil)

	w := serve(newComparisonRouter(svc), http.MethodGet, "/comparisons/"+id.String())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data handler.ComparisonWithDownloadURL `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.Data.Comparison.ID)
	assert.Equal(t, "https://example.com/signed", resp.Data.DownloadURL)
}

func TestComparisonHandler_GetByID_QueuedHasNoURL(t *testing.T) {
	svc := new(mocks.MockComparisonService)
	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(&domain.Comparison{ID: id, Status: domain.ComparisonStatusQueued}, nil)

	w := serve(newComparisonRouter(svc), http.MethodGet, "/comparisons/"+id.String())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "download_url")
	svc.AssertNotCalled(t, "GetDownloadURL", mock.Anything, mock.Anything)
}

func TestComparisonHandler_Errors(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name       string
		method     string
		path       string
		setup      func(*mocks.MockComparisonService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "invalid id", method: http.MethodGet, path: "/comparisons/not-a-uuid",
			setup: func(*mocks.MockComparisonService) {}, wantStatus: http.StatusBadRequest, wantCode: "INVALID_ID",
		},
		{
			name: "not found", method: http.MethodGet, path: "/comparisons/" + id.String(),
			setup: func(m *mocks.MockComparisonService) {
				m.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)
			},
			wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND",
		},
		{
			name: "report not ready", method: http.MethodGet, path: "/comparisons/" + id.String() + "/report",
			setup: func(m *mocks.MockComparisonService) {
				m.On("ExportReport", mock.Anything, id, mock.Anything).Return(domain.ErrComparisonNotReady)
			},
			wantStatus: http.StatusConflict, wantCode: "COMPARISON_NOT_READY",
		},
		{
			name: "report bad format", method: http.MethodGet, path: "/comparisons/" + id.String() + "/report?format=pdf",
			setup: func(*mocks.MockComparisonService) {}, wantStatus: http.StatusBadRequest, wantCode: "INVALID_FORMAT",
		},
		{
			name: "delete internal error", method: http.MethodDelete, path: "/comparisons/" + id.String(),
			setup: func(m *mocks.MockComparisonService) {
				m.On("Delete", mock.Anything, id).Return(errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockComparisonService)
			tt.setup(svc)

			w := serve(newComparisonRouter(svc), tt.method, tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp handler.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestComparisonHandler_Report(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		query       string
		method      string
		contentType string
		filename    string
	}{
		{"", "ExportReport", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "comparison-" + id.String() + ".xlsx"},
		{"?format=csv", "ExportCSV", "text/csv; charset=utf-8", "comparison-" + id.String() + ".csv"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			svc := new(mocks.MockComparisonService)
			svc.On(tt.method, mock.Anything, id, mock.Anything).Run(func(args mock.Arguments) {
				_, _ = io.WriteString(args.Get(2).(io.Writer), "report-bytes")
			}).Return(nil)

			w := serve(newComparisonRouter(svc), http.MethodGet, "/comparisons/"+id.String()+"/report"+tt.query)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), tt.filename)
			assert.Equal(t, "report-bytes", w.Body.String())
		})
	}
}

func TestComparisonHandler_Delete(t *testing.T) {
	svc := new(mocks.MockComparisonService)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil)

	w := serve(newComparisonRouter(svc), http.MethodDelete, "/comparisons/"+id.String())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "comparison deleted")
	svc.AssertExpectations(t)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"ready", nil, http.StatusOK, "ok"},
		{"db down", errors.New("refused"), http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(stubPinger{err: tt.err})
			r := gin.New()
			r.GET("/healthz", h.Liveness)
			r.GET("/readyz", h.Readiness)

			assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/healthz").Code)

			w := serve(r, http.MethodGet, "/readyz")
			assert.Equal(t, tt.wantStatus, w.Code)
			var resp handler.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBody, resp.Status)
		})
	}
}
