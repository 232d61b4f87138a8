package email

import (
	"context"

	"rooya_backend/internal/logger"
)

type Email struct {
	To      string
	Subject string
	Body    string
	IsHTML  bool
}

// Provider delivers transactional mail. Delivery failures are logged and
// never surfaced to the request path; mail is best-effort.
type Provider interface {
	Send(ctx context.Context, msg *Email) error
}

// LogProvider is the fallback when SMTP is not configured: it records the
// send instead of delivering. Used in development and tests.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(_ context.Context, msg *Email) error {
	logger.Info("email (log only)", "to", msg.To, "subject", msg.Subject)
	return nil
}
