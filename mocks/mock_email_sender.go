package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendComparisonReady(ctx context.Context, toEmail, comparisonID, downloadURL string) error {
	args := m.Called(ctx, toEmail, comparisonID, downloadURL)
	return args.Error(0)
}

func (m *MockEmailSender) SendComparisonFailed(ctx context.Context, toEmail, comparisonID, reason string) error {
	args := m.Called(ctx, toEmail, comparisonID, reason)
	return args.Error(0)
}
