package email

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureProvider records sends instead of delivering them.
type captureProvider struct {
	mu   sync.Mutex
	sent []*Email
}

func (p *captureProvider) Send(email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, email)
	return nil
}

func (p *captureProvider) Validate() error { return nil }
func (p *captureProvider) Close() error    { return nil }

func (p *captureProvider) last(t *testing.T) *Email {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.sent)
	return p.sent[len(p.sent)-1]
}

func TestSendVerification(t *testing.T) {
	provider := &captureProvider{}
	mailer := NewMailer(provider, "ResolveNow", "no-reply@resolvenow.local")

	err := mailer.SendVerification("rita@example.com", "Rita", "http://localhost:3000/verify-email?token=abc")
	require.NoError(t, err)

	sent := provider.last(t)
	assert.Equal(t, []string{"rita@example.com"}, sent.To)
	assert.Equal(t, "ResolveNow <no-reply@resolvenow.local>", sent.From)
	assert.Contains(t, sent.Subject, "Verify")
	assert.Contains(t, sent.HTMLBody, "Rita")
	assert.Contains(t, sent.HTMLBody, "http://localhost:3000/verify-email?token=abc")
}

func TestSendComplaintConfirmation(t *testing.T) {
	provider := &captureProvider{}
	mailer := NewMailer(provider, "", "no-reply@resolvenow.local")

	err := mailer.SendComplaintConfirmation("rita@example.com", "Rita", "RN-1A2B3C4D", "Broken washing machine")
	require.NoError(t, err)

	sent := provider.last(t)
	assert.Equal(t, "no-reply@resolvenow.local", sent.From)
	assert.Contains(t, sent.Subject, "RN-1A2B3C4D")
	assert.Contains(t, sent.HTMLBody, "Broken washing machine")
}

func TestSendStatusUpdate(t *testing.T) {
	provider := &captureProvider{}
	mailer := NewMailer(provider, "ResolveNow", "no-reply@resolvenow.local")

	err := mailer.SendStatusUpdate("rita@example.com", "Rita", "RN-1A2B3C4D", "resolved", "Replaced the drum motor.")
	require.NoError(t, err)

	sent := provider.last(t)
	assert.Contains(t, sent.HTMLBody, "resolved")
	assert.Contains(t, sent.HTMLBody, "Replaced the drum motor.")

	// Resolution block is omitted when empty.
	err = mailer.SendStatusUpdate("rita@example.com", "Rita", "RN-1A2B3C4D", "in_progress", "")
	require.NoError(t, err)
	assert.NotContains(t, provider.last(t).HTMLBody, "Resolution:")
}

func TestSMTPProviderValidate(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "", Port: 587})
	require.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 0})
	require.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587})
	require.NoError(t, p.Validate())
}
