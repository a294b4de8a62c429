package noop

import (
	"context"
	"log"

	"pdfcompare/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs notifications.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendComparisonReady(_ context.Context, toEmail, comparisonID, downloadURL string) error {
	log.Printf("[NOOP EMAIL] Comparison %s ready for %s: %s", comparisonID, toEmail, downloadURL)
	return nil
}

func (s *noopSender) SendComparisonFailed(_ context.Context, toEmail, comparisonID, reason string) error {
	log.Printf("[NOOP EMAIL] Comparison %s failed for %s: %s", comparisonID, toEmail, reason)
	return nil
}
