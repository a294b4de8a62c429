package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"pdfcompare/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendComparisonReady(ctx context.Context, toEmail, comparisonID, downloadURL string) error {
	subject := "Your PDF comparison is ready"
	detailsURL := fmt.Sprintf("%s/comparisons/%s", s.frontendURL, comparisonID)
	htmlBody := buildMessageHTML(
		"Your comparison is ready",
		"The highlighted comparison document has been generated. The download link below expires after a limited time.",
		"Download comparison", downloadURL, detailsURL,
	)
	textBody := fmt.Sprintf("Your comparison %s is ready.\n\nDownload: %s\nDetails: %s\n\nPDF Compare", comparisonID, downloadURL, detailsURL)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendComparisonFailed(ctx context.Context, toEmail, comparisonID, reason string) error {
	subject := "Your PDF comparison could not be completed"
	detailsURL := fmt.Sprintf("%s/comparisons/%s", s.frontendURL, comparisonID)
	htmlBody := buildMessageHTML(
		"Comparison failed",
		"We could not compare your documents: "+reason,
		"View comparison", detailsURL, detailsURL,
	)
	textBody := fmt.Sprintf("Comparison %s failed: %s\n\nDetails: %s\n\nPDF Compare", comparisonID, reason, detailsURL)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination:      &types.Destination{ToAddresses: []string{toEmail}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sending email via SES: %w", err)
	}
	return nil
}

func buildMessageHTML(title, message, action, actionURL, detailsURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s</h2>
  <p>%s</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">%s</a>
  </p>
  <p style="word-break: break-all; color: #666;"><a href="%s">%s</a></p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">PDF Compare</p>
</body>
</html>`,
		html.EscapeString(title), html.EscapeString(message),
		html.EscapeString(actionURL), html.EscapeString(action),
		html.EscapeString(detailsURL), html.EscapeString(detailsURL))
}
