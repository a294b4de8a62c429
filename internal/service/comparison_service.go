package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"pdfcompare/internal/compare"
	"pdfcompare/internal/config"
	"pdfcompare/internal/csvexport"
	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
	"pdfcompare/internal/xlsxexport"
)

// Comparer runs the comparison engine over two encoded documents.
type Comparer interface {
	CompareBytes(ctx context.Context, a, b []byte, mode domain.LayoutMode) (*compare.Result, error)
}

// UploadedFile is one multipart upload.
type UploadedFile struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// CompareInput is the DTO for synchronous comparisons.
type CompareInput struct {
	Original UploadedFile
	Revised  UploadedFile
	// Layout falls back to the configured default when empty.
	Layout   domain.LayoutMode
	ClientID string
}

// CompareOutput is the result of a synchronous comparison.
type CompareOutput struct {
	// ComparisonID is nil when the result could not be archived.
	ComparisonID *uuid.UUID
	PDF          []byte
	PageCount    int
	Pages        []domain.PageSummary
}

// SubmitInput is the DTO for queued comparisons.
type SubmitInput struct {
	Original    UploadedFile
	Revised     UploadedFile
	Layout      domain.LayoutMode
	NotifyEmail string
	ClientID    string
}

// ComparisonService defines the comparison contract.
type ComparisonService interface {
	Compare(ctx context.Context, input CompareInput) (*CompareOutput, error)
	Submit(ctx context.Context, input SubmitInput) (*domain.Comparison, error)
	Process(ctx context.Context, c *domain.Comparison, maxRetries int)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comparison, error)
	List(ctx context.Context, offset, limit int) ([]domain.Comparison, int, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExportReport(ctx context.Context, id uuid.UUID, w io.Writer) error
	ExportCSV(ctx context.Context, id uuid.UUID, w io.Writer) error
}

type comparisonService struct {
	repo     port.ComparisonRepository
	storage  port.ObjectStorage
	email    port.EmailSender
	comparer Comparer
	s3Cfg    *config.S3Config
	cmpCfg   config.CompareConfig
}

// NewComparisonService creates a new ComparisonService implementation.
func NewComparisonService(
	repo port.ComparisonRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	comparer Comparer,
	s3Cfg *config.S3Config,
	cmpCfg config.CompareConfig,
) ComparisonService {
	return &comparisonService{
		repo:     repo,
		storage:  storage,
		email:    email,
		comparer: comparer,
		s3Cfg:    s3Cfg,
		cmpCfg:   cmpCfg,
	}
}

func (s *comparisonService) Compare(ctx context.Context, input CompareInput) (*CompareOutput, error) {
	layout, err := s.resolveLayout(input.Layout)
	if err != nil {
		return nil, err
	}
	a, err := s.readUpload(input.Original)
	if err != nil {
		return nil, err
	}
	b, err := s.readUpload(input.Revised)
	if err != nil {
		return nil, err
	}

	log.Printf("comparisonService.Compare: comparing %s with %s (%s)",
		input.Original.Header.Filename, input.Revised.Header.Filename, layout)

	res, err := s.comparer.CompareBytes(ctx, a, b, layout)
	if err != nil {
		return nil, fmt.Errorf("comparing documents: %w", err)
	}

	out := &CompareOutput{PDF: res.Output, PageCount: res.PageCount, Pages: res.Pages}

	c := &domain.Comparison{
		ID:          uuid.New(),
		Layout:      layout,
		FileAName:   input.Original.Header.Filename,
		FileBName:   input.Revised.Header.Filename,
		S3Bucket:    s.s3Cfg.Bucket,
		RequestedBy: input.ClientID,
		Attempts:    1,
	}
	if err := s.archive(ctx, c, res); err != nil {
		log.Printf("comparisonService.Compare: archiving comparison %s failed: %v", c.ID, err)
		return out, nil
	}
	out.ComparisonID = &c.ID
	return out, nil
}

// archive stores the output of a synchronous comparison and records it as completed.
func (s *comparisonService) archive(ctx context.Context, c *domain.Comparison, res *compare.Result) error {
	c.Status = domain.ComparisonStatusProcessing
	if err := s.repo.Create(ctx, c); err != nil {
		return fmt.Errorf("creating comparison record: %w", err)
	}
	if err := s.storeResult(ctx, c, res); err != nil {
		if failErr := s.repo.Fail(ctx, c.ID, domain.ComparisonStatusFailed, err.Error()); failErr != nil {
			log.Printf("comparisonService.archive: failed to mark %s failed: %v", c.ID, failErr)
		}
		return err
	}
	return nil
}

// storeResult uploads the output document and completes the record.
func (s *comparisonService) storeResult(ctx context.Context, c *domain.Comparison, res *compare.Result) error {
	summaries, err := json.Marshal(res.Pages)
	if err != nil {
		return fmt.Errorf("encoding page summaries: %w", err)
	}

	c.OutputKey = objectKey(c.ID, "comparison.pdf")
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      c.S3Bucket,
		Key:         c.OutputKey,
		Body:        bytes.NewReader(res.Output),
		ContentType: domain.ContentTypePDF,
		Size:        int64(len(res.Output)),
	}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	c.PageCount = res.PageCount
	c.HighlightCount = res.Highlights()
	c.PageSummaries = summaries
	if err := s.repo.Complete(ctx, c); err != nil {
		return fmt.Errorf("completing comparison record: %w", err)
	}
	return nil
}

func (s *comparisonService) Submit(ctx context.Context, input SubmitInput) (*domain.Comparison, error) {
	layout, err := s.resolveLayout(input.Layout)
	if err != nil {
		return nil, err
	}
	a, err := s.readUpload(input.Original)
	if err != nil {
		return nil, err
	}
	b, err := s.readUpload(input.Revised)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	c := &domain.Comparison{
		ID:          id,
		Layout:      layout,
		Status:      domain.ComparisonStatusQueued,
		FileAName:   input.Original.Header.Filename,
		FileBName:   input.Revised.Header.Filename,
		FileAKey:    objectKey(id, "original.pdf"),
		FileBKey:    objectKey(id, "revised.pdf"),
		S3Bucket:    s.s3Cfg.Bucket,
		NotifyEmail: strings.TrimSpace(input.NotifyEmail),
		RequestedBy: input.ClientID,
	}

	for _, obj := range []struct {
		key  string
		data []byte
	}{{c.FileAKey, a}, {c.FileBKey, b}} {
		if _, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      c.S3Bucket,
			Key:         obj.key,
			Body:        bytes.NewReader(obj.data),
			ContentType: domain.ContentTypePDF,
			Size:        int64(len(obj.data)),
		}); err != nil {
			log.Printf("comparisonService.Submit: upload of %s failed: %v", obj.key, err)
			return nil, domain.ErrUploadFailed
		}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating comparison record: %w", err)
	}
	log.Printf("comparisonService.Submit: queued comparison %s (%s vs %s, %s)", c.ID, c.FileAName, c.FileBName, layout)
	return c, nil
}

// Process runs a claimed comparison. Transient failures requeue it until
// maxRetries attempts have been made; unreadable or oversized inputs fail at once.
func (s *comparisonService) Process(ctx context.Context, c *domain.Comparison, maxRetries int) {
	err := s.process(ctx, c)
	if err == nil {
		log.Printf("comparisonService.Process: comparison %s completed (%d pages, %d highlights)",
			c.ID, c.PageCount, c.HighlightCount)
		s.notifyReady(ctx, c)
		return
	}

	permanent := errors.Is(err, domain.ErrInvalidDocument) || errors.Is(err, domain.ErrTooManyPages)
	status := domain.ComparisonStatusFailed
	if !permanent && c.Attempts < maxRetries {
		status = domain.ComparisonStatusQueued
	}
	log.Printf("comparisonService.Process: comparison %s attempt %d failed (-> %s): %v", c.ID, c.Attempts, status, err)

	if failErr := s.repo.Fail(ctx, c.ID, status, err.Error()); failErr != nil {
		log.Printf("comparisonService.Process: failed to record failure for %s: %v", c.ID, failErr)
	}
	if status == domain.ComparisonStatusFailed && c.NotifyEmail != "" {
		if mailErr := s.email.SendComparisonFailed(ctx, c.NotifyEmail, c.ID.String(), err.Error()); mailErr != nil {
			log.Printf("comparisonService.Process: failure notification for %s not sent: %v", c.ID, mailErr)
		}
	}
}

func (s *comparisonService) process(ctx context.Context, c *domain.Comparison) error {
	a, err := s.storage.Download(ctx, c.S3Bucket, c.FileAKey)
	if err != nil {
		return fmt.Errorf("downloading original: %w", err)
	}
	b, err := s.storage.Download(ctx, c.S3Bucket, c.FileBKey)
	if err != nil {
		return fmt.Errorf("downloading revised: %w", err)
	}

	res, err := s.comparer.CompareBytes(ctx, a, b, c.Layout)
	if err != nil {
		return fmt.Errorf("comparing documents: %w", err)
	}
	return s.storeResult(ctx, c, res)
}

func (s *comparisonService) notifyReady(ctx context.Context, c *domain.Comparison) {
	if c.NotifyEmail == "" {
		return
	}
	url, err := s.presignOutput(ctx, c)
	if err != nil {
		log.Printf("comparisonService.notifyReady: presigning %s failed: %v", c.ID, err)
		return
	}
	if err := s.email.SendComparisonReady(ctx, c.NotifyEmail, c.ID.String(), url); err != nil {
		log.Printf("comparisonService.notifyReady: notification for %s not sent: %v", c.ID, err)
	}
}

func (s *comparisonService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comparison, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *comparisonService) List(ctx context.Context, offset, limit int) ([]domain.Comparison, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *comparisonService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := s.completed(ctx, id)
	if err != nil {
		return "", err
	}
	return s.presignOutput(ctx, c)
}

func (s *comparisonService) presignOutput(ctx context.Context, c *domain.Comparison) (string, error) {
	return s.storage.PresignDownload(ctx, port.PresignInput{
		Bucket:   c.S3Bucket,
		Key:      c.OutputKey,
		Filename: fmt.Sprintf("comparison-%s.pdf", c.ID),
		Expiry:   time.Duration(s.s3Cfg.PresignExpiry) * time.Second,
	})
}

// Delete removes the stored documents and soft-deletes the record. Storage
// errors are logged so a missing object never blocks deletion.
func (s *comparisonService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	for _, key := range []string{c.FileAKey, c.FileBKey, c.OutputKey} {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, c.S3Bucket, key); err != nil {
			log.Printf("comparisonService.Delete: removing %s failed: %v", key, err)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *comparisonService) ExportReport(ctx context.Context, id uuid.UUID, w io.Writer) error {
	c, pages, err := s.reportData(ctx, id)
	if err != nil {
		return err
	}
	return xlsxexport.Write(w, c, pages)
}

func (s *comparisonService) ExportCSV(ctx context.Context, id uuid.UUID, w io.Writer) error {
	_, pages, err := s.reportData(ctx, id)
	if err != nil {
		return err
	}
	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WritePages(pages); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (s *comparisonService) reportData(ctx context.Context, id uuid.UUID) (*domain.Comparison, []domain.PageSummary, error) {
	c, err := s.completed(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	pages, err := c.Summaries()
	if err != nil {
		return nil, nil, fmt.Errorf("decoding page summaries: %w", err)
	}
	return c, pages, nil
}

func (s *comparisonService) completed(ctx context.Context, id uuid.UUID) (*domain.Comparison, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.ComparisonStatusCompleted {
		return nil, domain.ErrComparisonNotReady
	}
	return c, nil
}

func (s *comparisonService) resolveLayout(layout domain.LayoutMode) (domain.LayoutMode, error) {
	if layout == "" {
		return domain.ParseLayoutMode(s.cmpCfg.DefaultLayout)
	}
	return domain.ParseLayoutMode(string(layout))
}

// readUpload validates an upload by extension, size and magic bytes and
// returns its content.
func (s *comparisonService) readUpload(u UploadedFile) ([]byte, error) {
	if u.File == nil || u.Header == nil {
		return nil, domain.ErrInvalidDocument
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(u.Header.Filename), "."))
	if !domain.AllowedExtensions[ext] {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.s3Cfg.MaxFileSizeMB * 1024 * 1024
	if maxBytes > 0 && u.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	reader := io.Reader(u.File)
	if maxBytes > 0 {
		reader = io.LimitReader(u.File, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading upload %s: %w", u.Header.Filename, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	if !mimetype.Detect(data).Is(domain.ContentTypePDF) {
		return nil, domain.ErrUnsupportedFileType
	}
	return data, nil
}

func objectKey(id uuid.UUID, name string) string {
	return fmt.Sprintf("comparisons/%s/%s", id, name)
}
