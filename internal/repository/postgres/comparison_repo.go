package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pdfcompare/internal/domain"
	"pdfcompare/internal/port"
)

type comparisonRepo struct {
	db *sqlx.DB
}

// NewComparisonRepo creates a new PostgreSQL-backed ComparisonRepository.
func NewComparisonRepo(db *sqlx.DB) port.ComparisonRepository {
	return &comparisonRepo{db: db}
}

func (r *comparisonRepo) Create(ctx context.Context, c *domain.Comparison) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `INSERT INTO comparisons
		(id, layout, status, file_a_name, file_b_name, file_a_key, file_b_key, output_key,
		 s3_bucket, page_count, highlight_count, page_summaries, notify_email, requested_by,
		 attempts, error_message, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Layout, c.Status, c.FileAName, c.FileBName, c.FileAKey, c.FileBKey, c.OutputKey,
		c.S3Bucket, c.PageCount, c.HighlightCount, nullableJSON(c.PageSummaries), c.NotifyEmail, c.RequestedBy,
		c.Attempts, c.ErrorMessage, c.CreatedAt, c.UpdatedAt, c.CompletedAt)
	if err != nil {
		return fmt.Errorf("comparisonRepo.Create: %w", err)
	}
	return nil
}

func (r *comparisonRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comparison, error) {
	var c domain.Comparison
	err := r.db.GetContext(ctx, &c,
		"SELECT * FROM comparisons WHERE id = $1 AND status != $2", id, domain.ComparisonStatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("comparisonRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *comparisonRepo) List(ctx context.Context, offset, limit int) ([]domain.Comparison, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM comparisons WHERE status != $1", domain.ComparisonStatusDeleted)
	if err != nil {
		return nil, 0, fmt.Errorf("comparisonRepo.List count: %w", err)
	}

	var comparisons []domain.Comparison
	err = r.db.SelectContext(ctx, &comparisons,
		`SELECT * FROM comparisons
		 WHERE status != $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		domain.ComparisonStatusDeleted, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("comparisonRepo.List: %w", err)
	}
	return comparisons, total, nil
}

func (r *comparisonRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ComparisonStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE comparisons SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("comparisonRepo.UpdateStatus: %w", err)
	}
	return requireRow(result)
}

func (r *comparisonRepo) Complete(ctx context.Context, c *domain.Comparison) error {
	now := time.Now().UTC()
	c.Status = domain.ComparisonStatusCompleted
	c.UpdatedAt = now
	c.CompletedAt = &now
	c.ErrorMessage = ""

	result, err := r.db.ExecContext(ctx,
		`UPDATE comparisons SET
			status = $1, output_key = $2, page_count = $3, highlight_count = $4,
			page_summaries = $5, error_message = '', updated_at = $6, completed_at = $7
		 WHERE id = $8`,
		c.Status, c.OutputKey, c.PageCount, c.HighlightCount,
		nullableJSON(c.PageSummaries), c.UpdatedAt, c.CompletedAt, c.ID)
	if err != nil {
		return fmt.Errorf("comparisonRepo.Complete: %w", err)
	}
	return requireRow(result)
}

func (r *comparisonRepo) Fail(ctx context.Context, id uuid.UUID, status domain.ComparisonStatus, errMsg string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE comparisons SET status = $1, error_message = $2, updated_at = $3 WHERE id = $4",
		status, errMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("comparisonRepo.Fail: %w", err)
	}
	return requireRow(result)
}

// ClaimQueued locks the oldest queued rows with SKIP LOCKED so concurrent
// workers never claim the same comparison, and bumps their attempt count.
func (r *comparisonRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Comparison, error) {
	var claimed []domain.Comparison
	err := r.db.SelectContext(ctx, &claimed,
		`UPDATE comparisons SET status = $1, attempts = attempts + 1, updated_at = $2
		 WHERE id IN (
			SELECT id FROM comparisons
			WHERE status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.ComparisonStatusProcessing, time.Now().UTC(), domain.ComparisonStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("comparisonRepo.ClaimQueued: %w", err)
	}
	return claimed, nil
}

func (r *comparisonRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.UpdateStatus(ctx, id, domain.ComparisonStatusDeleted)
}

func requireRow(result sql.Result) error {
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nullableJSON stores empty summaries as SQL NULL.
func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
