package mailer

import (
	"context"
	"log/slog"

	"github.com/careeros/backend/pkg/logger"
)

// logSender logs messages instead of delivering them. Used in development
// and when Postmark credentials are not configured.
type logSender struct {
	log *slog.Logger
}

// NewLogSender returns an EmailSender that records messages to the logger.
func NewLogSender(log *slog.Logger) EmailSender {
	return &logSender{log: log}
}

func (s *logSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "Email delivery skipped (no provider configured)",
		slog.String("to", params.SendTo),
		slog.String("subject", params.Subject),
		logger.Component("mailer"),
	)
	return nil
}
