package infra

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
)

// SMTPConfig is the outgoing mail server used for close reports.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Mailer sends e-mails with an optional PDF attachment.
// Every send goes through a circuit breaker so a dead SMTP server fails fast.
type Mailer struct {
	cfg  SMTPConfig
	addr string
	cb   *CircuitBreaker
	send func(e *email.Email, addr string, a smtp.Auth) error
}

// NewMailer returns nil when no SMTP host is configured; callers treat a nil
// mailer as "mail disabled".
func NewMailer(cfg SMTPConfig) *Mailer {
	if cfg.Host == "" {
		return nil
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &Mailer{
		cfg:  cfg,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		cb: NewCircuitBreaker(CircuitBreakerConfig{
			FailureThreshold: 3,
			SuccessThreshold: 1,
			OpenTimeout:      5 * time.Minute,
		}),
		send: func(e *email.Email, addr string, a smtp.Auth) error { return e.Send(addr, a) },
	}
}

// Send delivers body to a single recipient, attaching the file at attachPath if set.
func (m *Mailer) Send(to, subject, body, attachPath string) error {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if attachPath != "" {
		if _, err := e.AttachFile(attachPath); err != nil {
			return fmt.Errorf("mailer: attach file: %w", err)
		}
	}

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	return m.cb.Execute(func() error { return m.send(e, m.addr, auth) })
}

// Estado exposes the breaker state for the health endpoint.
func (m *Mailer) Estado() CBState {
	if m == nil {
		return CBClosed
	}
	return m.cb.State()
}
