package port

import (
	"context"

	"github.com/google/uuid"

	"pdfcompare/internal/domain"
)

// ComparisonRepository defines the contract for comparison persistence.
type ComparisonRepository interface {
	Create(ctx context.Context, c *domain.Comparison) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comparison, error)
	List(ctx context.Context, offset, limit int) ([]domain.Comparison, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ComparisonStatus) error
	// Complete stores the result of a successful comparison.
	Complete(ctx context.Context, c *domain.Comparison) error
	// Fail records an error message and moves the comparison to status.
	Fail(ctx context.Context, id uuid.UUID, status domain.ComparisonStatus, errMsg string) error
	// ClaimQueued atomically moves up to limit queued comparisons to processing
	// and returns them. Concurrent callers never receive the same row.
	ClaimQueued(ctx context.Context, limit int) ([]domain.Comparison, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
