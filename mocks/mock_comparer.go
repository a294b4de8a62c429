package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pdfcompare/internal/compare"
	"pdfcompare/internal/domain"
)

// MockComparer is a mock implementation of service.Comparer.
type MockComparer struct {
	mock.Mock
}

func (m *MockComparer) CompareBytes(ctx context.Context, a, b []byte, mode domain.LayoutMode) (*compare.Result, error) {
	args := m.Called(ctx, a, b, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*compare.Result), args.Error(1)
}
