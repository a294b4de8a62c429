package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pdfcompare/internal/compare"
	"pdfcompare/internal/config"
	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
	"pdfcompare/internal/service"
	"pdfcompare/mocks"
)

type testDeps struct {
	repo     *mocks.MockComparisonRepo
	storage  *mocks.MockObjectStorage
	email    *mocks.MockEmailSender
	comparer *mocks.MockComparer
	svc      service.ComparisonService
}

func newTestDeps() *testDeps {
	d := &testDeps{
		repo:     new(mocks.MockComparisonRepo),
		storage:  new(mocks.MockObjectStorage),
		email:    new(mocks.MockEmailSender),
		comparer: new(mocks.MockComparer),
	}
	s3Cfg := &config.S3Config{Bucket: "test-bucket", MaxFileSizeMB: 1, PresignExpiry: 3600}
	d.svc = service.NewComparisonService(d.repo, d.storage, d.email, d.comparer, s3Cfg,
		config.CompareConfig{DefaultLayout: "overlay", MaxPages: 500})
	return d
}

// createMultipartFile creates a multipart file header and content for testing.
func createMultipartFile(filename string, content []byte) service.UploadedFile {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/pdf")

	part, _ := writer.CreatePart(h)
	_, _ = part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content) + 1024))
	file, _ := form.File["file"][0].Open()
	return service.UploadedFile{File: file, Header: form.File["file"][0]}
}

func pdfContent(tag string) []byte {
	return []byte("%PDF-1.4 " + tag + " content long enough for detection purposes")
}

func testResult() *compare.Result {
	return &compare.Result{
		Output:    []byte("%PDF-1.4 output"),
		PageCount: 2,
		Pages: []domain.PageSummary{
			{Page: 1, Outcome: domain.PageCompared, TextAdded: 2, TextRemoved: 1},
			{Page: 2, Outcome: domain.PageAdded},
		},
	}
}

func TestComparisonService_Compare_ArchivesResult(t *testing.T) {
	d := newTestDeps()
	res := testResult()

	d.comparer.On("CompareBytes", mock.Anything, pdfContent("a"), pdfContent("b"), domain.LayoutOverlay).
		Return(res, nil)
	d.repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Comparison) bool {
		return c.Status == domain.ComparisonStatusProcessing && c.RequestedBy == "client-1"
	})).Return(nil)
	d.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" && in.ContentType == domain.ContentTypePDF && in.Size == int64(len(res.Output))
	})).Return(&port.UploadOutput{}, nil)
	d.repo.On("Complete", mock.Anything, mock.AnythingOfType("*domain.Comparison")).Return(nil)

	out, err := d.svc.Compare(context.Background(), service.CompareInput{
		Original: createMultipartFile("a.pdf", pdfContent("a")),
		Revised:  createMultipartFile("b.pdf", pdfContent("b")),
		ClientID: "client-1",
	})

	require.NoError(t, err)
	require.NotNil(t, out.ComparisonID)
	assert.Equal(t, res.Output, out.PDF)
	assert.Equal(t, 2, out.PageCount)

	completed := d.repo.Calls[len(d.repo.Calls)-1].Arguments.Get(1).(*domain.Comparison)
	assert.Equal(t, fmt.Sprintf("comparisons/%s/comparison.pdf", *out.ComparisonID), completed.OutputKey)
	assert.Equal(t, 4, completed.HighlightCount)
	assert.Equal(t, "a.pdf", completed.FileAName)

	var pages []domain.PageSummary
	require.NoError(t, json.Unmarshal(completed.PageSummaries, &pages))
	assert.Equal(t, res.Pages, pages)
}

func TestComparisonService_Compare_SideBySide(t *testing.T) {
	d := newTestDeps()
	d.comparer.On("CompareBytes", mock.Anything, mock.Anything, mock.Anything, domain.LayoutSideBySide).
		Return(testResult(), nil)
	d.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	d.repo.On("Complete", mock.Anything, mock.Anything).Return(nil)

	_, err := d.svc.Compare(context.Background(), service.CompareInput{
		Original: createMultipartFile("a.pdf", pdfContent("a")),
		Revised:  createMultipartFile("b.pdf", pdfContent("b")),
		Layout:   domain.LayoutSideBySide,
	})

	require.NoError(t, err)
	d.comparer.AssertExpectations(t)
}

func TestComparisonService_Compare_ArchiveFailureStillReturnsPDF(t *testing.T) {
	d := newTestDeps()
	d.comparer.On("CompareBytes", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testResult(), nil)
	d.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	out, err := d.svc.Compare(context.Background(), service.CompareInput{
		Original: createMultipartFile("a.pdf", pdfContent("a")),
		Revised:  createMultipartFile("b.pdf", pdfContent("b")),
	})

	require.NoError(t, err)
	assert.Nil(t, out.ComparisonID)
	assert.NotEmpty(t, out.PDF)
	d.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestComparisonService_Compare_UploadFailureMarksFailed(t *testing.T) {
	d := newTestDeps()
	d.comparer.On("CompareBytes", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testResult(), nil)
	d.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 down"))
	d.repo.On("Fail", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.ComparisonStatusFailed, mock.Anything).Return(nil)

	out, err := d.svc.Compare(context.Background(), service.CompareInput{
		Original: createMultipartFile("a.pdf", pdfContent("a")),
		Revised:  createMultipartFile("b.pdf", pdfContent("b")),
	})

	require.NoError(t, err)
	assert.Nil(t, out.ComparisonID)
	d.repo.AssertExpectations(t)
}

func TestComparisonService_Compare_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   service.CompareInput
		wantErr error
	}{
		{
			name: "wrong extension",
			input: service.CompareInput{
				Original: createMultipartFile("a.docx", pdfContent("a")),
				Revised:  createMultipartFile("b.pdf", pdfContent("b")),
			},
			wantErr: domain.ErrUnsupportedFileType,
		},
		{
			name: "not a pdf",
			input: service.CompareInput{
				Original: createMultipartFile("a.pdf", pdfContent("a")),
				Revised:  createMultipartFile("b.pdf", []byte("plain text pretending to be a pdf")),
			},
			wantErr: domain.ErrUnsupportedFileType,
		},
		{
			name: "too large",
			input: service.CompareInput{
				Original: createMultipartFile("a.pdf", append(pdfContent("a"), make([]byte, 2<<20)...)),
				Revised:  createMultipartFile("b.pdf", pdfContent("b")),
			},
			wantErr: domain.ErrFileTooLarge,
		},
		{
			name: "unknown layout",
			input: service.CompareInput{
				Original: createMultipartFile("a.pdf", pdfContent("a")),
				Revised:  createMultipartFile("b.pdf", pdfContent("b")),
				Layout:   "diagonal",
			},
			wantErr: domain.ErrInvalidLayout,
		},
		{
			name:    "missing file",
			input:   service.CompareInput{Revised: createMultipartFile("b.pdf", pdfContent("b"))},
			wantErr: domain.ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			_, err := d.svc.Compare(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			d.comparer.AssertNotCalled(t, "CompareBytes", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestComparisonService_Compare_EngineError(t *testing.T) {
	d := newTestDeps()
	d.comparer.On("CompareBytes", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrInvalidDocument)

	_, err := d.svc.Compare(context.Background(), service.CompareInput{
		Original: createMultipartFile("a.pdf", pdfContent("a")),
		Revised:  createMultipartFile("b.pdf", pdfContent("b")),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestComparisonService_Submit(t *testing.T) {
	d := newTestDeps()
	d.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(&port.UploadOutput{}, nil)
	d.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comparison")).Return(nil)

	c, err := d.svc.Submit(context.Background(), service.SubmitInput{
		Original:    createMultipartFile("a.pdf", pdfContent("a")),
		Revised:     createMultipartFile("b.pdf", pdfContent("b")),
		Layout:      domain.LayoutSideBySide,
		NotifyEmail: "  ops@example.com ",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ComparisonStatusQueued, c.Status)
	assert.Equal(t, domain.LayoutSideBySide, c.Layout)
	assert.Equal(t, "ops@example.com", c.NotifyEmail)
	assert.Equal(t, fmt.Sprintf("comparisons/%s/original.pdf", c.ID), c.FileAKey)
	assert.Equal(t, fmt.Sprintf("comparisons/%s/revised.pdf", c.ID), c.FileBKey)
	d.storage.AssertNumberOfCalls(t, "Upload", 2)
}

func TestComparisonService_Submit_UploadFails(t *testing.T) {
	d := newTestDeps()
	d.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 down"))

	_, err := d.svc.Submit(context.Background(), service.SubmitInput{
		Original: createMultipartFile("a.pdf", pdfContent("a")),
		Revised:  createMultipartFile("b.pdf", pdfContent("b")),
	})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func queuedComparison(attempts int) *domain.Comparison {
	id := uuid.New()
	return &domain.Comparison{
		ID:          id,
		Layout:      domain.LayoutOverlay,
		Status:      domain.ComparisonStatusProcessing,
		FileAKey:    "comparisons/" + id.String() + "/original.pdf",
		FileBKey:    "comparisons/" + id.String() + "/revised.pdf",
		S3Bucket:    "test-bucket",
		NotifyEmail: "ops@example.com",
		Attempts:    attempts,
	}
}

func TestComparisonService_Process_Success(t *testing.T) {
	d := newTestDeps()
	c := queuedComparison(1)

	d.storage.On("Download", mock.Anything, "test-bucket", c.FileAKey).Return(pdfContent("a"), nil)
	d.storage.On("Download", mock.Anything, "test-bucket", c.FileBKey).Return(pdfContent("b"), nil)
	d.comparer.On("CompareBytes", mock.Anything, pdfContent("a"), pdfContent("b"), domain.LayoutOverlay).
		Return(testResult(), nil)
	d.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	d.repo.On("Complete", mock.Anything, c).Return(nil)
	d.storage.On("PresignDownload", mock.Anything, mock.MatchedBy(func(in port.PresignInput) bool {
		return in.Bucket == "test-bucket" && in.Key == c.OutputKey && in.Expiry == time.Hour
	})).Return("https://example.com/signed", nil)
	d.email.On("SendComparisonReady", mock.Anything, "ops@example.com", c.ID.String(), "https://example.com/signed").
		Return(nil)

	d.svc.Process(context.Background(), c, 3)

	assert.Equal(t, 2, c.PageCount)
	assert.Equal(t, 4, c.HighlightCount)
	d.email.AssertExpectations(t)
	d.repo.AssertNotCalled(t, "Fail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestComparisonService_Process_TransientFailureRequeues(t *testing.T) {
	d := newTestDeps()
	c := queuedComparison(1)

	d.storage.On("Download", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	d.repo.On("Fail", mock.Anything, c.ID, domain.ComparisonStatusQueued, mock.AnythingOfType("string")).Return(nil)

	d.svc.Process(context.Background(), c, 3)

	d.repo.AssertExpectations(t)
	d.email.AssertNotCalled(t, "SendComparisonFailed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestComparisonService_Process_RetriesExhausted(t *testing.T) {
	d := newTestDeps()
	c := queuedComparison(3)

	d.storage.On("Download", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	d.repo.On("Fail", mock.Anything, c.ID, domain.ComparisonStatusFailed, mock.AnythingOfType("string")).Return(nil)
	d.email.On("SendComparisonFailed", mock.Anything, "ops@example.com", c.ID.String(), mock.AnythingOfType("string")).
		Return(nil)

	d.svc.Process(context.Background(), c, 3)

	d.repo.AssertExpectations(t)
	d.email.AssertExpectations(t)
}

func TestComparisonService_Process_InvalidDocumentIsPermanent(t *testing.T) {
	d := newTestDeps()
	c := queuedComparison(1)
	c.NotifyEmail = ""

	d.storage.On("Download", mock.Anything, mock.Anything, mock.Anything).Return(pdfContent("x"), nil)
	d.comparer.On("CompareBytes", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("opening original: %w", domain.ErrInvalidDocument))
	d.repo.On("Fail", mock.Anything, c.ID, domain.ComparisonStatusFailed, mock.AnythingOfType("string")).Return(nil)

	d.svc.Process(context.Background(), c, 3)

	d.repo.AssertExpectations(t)
	d.email.AssertNotCalled(t, "SendComparisonFailed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestComparisonService_GetDownloadURL(t *testing.T) {
	d := newTestDeps()
	id := uuid.New()
	d.repo.On("GetByID", mock.Anything, id).Return(&domain.Comparison{
		ID: id, Status: domain.ComparisonStatusCompleted, S3Bucket: "test-bucket", OutputKey: "out.pdf",
	}, nil)
	d.storage.On("PresignDownload", mock.Anything, port.PresignInput{
		Bucket:   "test-bucket",
		Key:      "out.pdf",
		Filename: "comparison-" + id.String() + ".pdf",
		Expiry:   time.Hour,
	}).Return("https://example.com/out.pdf", nil)

	url, err := d.svc.GetDownloadURL(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/out.pdf", url)
}

func TestComparisonService_GetDownloadURL_NotReady(t *testing.T) {
	d := newTestDeps()
	id := uuid.New()
	d.repo.On("GetByID", mock.Anything, id).Return(&domain.Comparison{ID: id, Status: domain.ComparisonStatusQueued}, nil)

	_, err := d.svc.GetDownloadURL(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrComparisonNotReady)
	d.storage.AssertNotCalled(t, "PresignDownload", mock.Anything, mock.Anything)
}

func TestComparisonService_Delete_IgnoresStorageErrors(t *testing.T) {
	d := newTestDeps()
	id := uuid.New()
	d.repo.On("GetByID", mock.Anything, id).Return(&domain.Comparison{
		ID: id, S3Bucket: "test-bucket", FileAKey: "a.pdf", FileBKey: "b.pdf",
	}, nil)
	d.storage.On("Delete", mock.Anything, "test-bucket", "a.pdf").Return(errors.New("gone"))
	d.storage.On("Delete", mock.Anything, "test-bucket", "b.pdf").Return(nil)
	d.repo.On("Delete", mock.Anything, id).Return(nil)

	require.NoError(t, d.svc.Delete(context.Background(), id))
	d.storage.AssertNumberOfCalls(t, "Delete", 2)
	d.repo.AssertExpectations(t)
}

func TestComparisonService_Delete_NotFound(t *testing.T) {
	d := newTestDeps()
	id := uuid.New()
	d.repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	assert.ErrorIs(t, d.svc.Delete(context.Background(), id), domain.ErrNotFound)
}

func completedWithSummaries(t *testing.T) *domain.Comparison {
	t.Helper()
	raw, err := json.Marshal(testResult().Pages)
	require.NoError(t, err)
	return &domain.Comparison{ID: uuid.New(), Status: domain.ComparisonStatusCompleted, PageSummaries: raw}
}

func TestComparisonService_ExportCSV(t *testing.T) {
	d := newTestDeps()
	c := completedWithSummaries(t)
	d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)

	var buf bytes.Buffer
	require.NoError(t, d.svc.ExportCSV(context.Background(), c.ID, &buf))

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, out, "Page,Outcome")
	assert.Contains(t, out, "1,compared,2,1,0,0,3")
	assert.Contains(t, out, "2,added,0,0,0,0,1")
}

func TestComparisonService_ExportReport(t *testing.T) {
	d := newTestDeps()
	c := completedWithSummaries(t)
	d.repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)

	var buf bytes.Buffer
	require.NoError(t, d.svc.ExportReport(context.Background(), c.ID, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}
