package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendComparisonReady(ctx context.Context, toEmail, comparisonID, downloadURL string) error
	SendComparisonFailed(ctx context.Context, toEmail, comparisonID, reason string) error
}
