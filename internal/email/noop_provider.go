package email

import "resolvenow_backend/internal/logger"

// NoopProvider drops mail on the floor. Used when SMTP is not
// configured so the rest of the application keeps working.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(email *Email) error {
	logger.Debug("email delivery skipped, no SMTP configured",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}

func (p *NoopProvider) Validate() error { return nil }

func (p *NoopProvider) Close() error { return nil }
