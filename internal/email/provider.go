package email

// Provider sends email. Implementations must be safe for concurrent
// use; the services fire sends from goroutines.
type Provider interface {
	Send(email *Email) error
	Validate() error
	Close() error
}
