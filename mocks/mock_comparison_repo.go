package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pdfcompare/internal/domain"
)

// MockComparisonRepo is a mock implementation of port.ComparisonRepository.
type MockComparisonRepo struct {
	mock.Mock
}

func (m *MockComparisonRepo) Create(ctx context.Context, c *domain.Comparison) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComparisonRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comparison, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comparison), args.Error(1)
}

func (m *MockComparisonRepo) List(ctx context.Context, offset, limit int) ([]domain.Comparison, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Comparison), args.Int(1), args.Error(2)
}

func (m *MockComparisonRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ComparisonStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockComparisonRepo) Complete(ctx context.Context, c *domain.Comparison) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComparisonRepo) Fail(ctx context.Context, id uuid.UUID, status domain.ComparisonStatus, errMsg string) error {
	args := m.Called(ctx, id, status, errMsg)
	return args.Error(0)
}

func (m *MockComparisonRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Comparison, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comparison), args.Error(1)
}

func (m *MockComparisonRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
