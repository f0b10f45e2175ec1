// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"sync"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Email is one outbound message. TextBody is always set; HTMLBody is an
// optional alternative part.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers emails. The SMTP Mailer is used in real deployments;
// Console and Recorder stand in for it in dev and tests.
type Sender interface {
	Send(e Email) error
}

// Config holds SMTP settings. Username/Password may be empty for
// unauthenticated relays such as a local Mailpit.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Mailer sends email over SMTP.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// New constructs an SMTP Mailer.
func New(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: logger}
}

// Send delivers one email, dialing the configured SMTP server.
func (m *Mailer) Send(e Email) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("mailer: from address: %w", err)
	}
	if err := msg.To(e.To); err != nil {
		return fmt.Errorf("mailer: to address: %w", err)
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, e.TextBody)
	if e.HTMLBody != "" {
		msg.AddAlternativeString(gomail.TypeTextHTML, e.HTMLBody)
	}

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("mailer: client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}

	m.log.Info("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}

// Console logs emails instead of sending them. Used when no SMTP host is
// configured (local development).
type Console struct {
	Log *zap.Logger
}

func (c *Console) Send(e Email) error {
	c.Log.Info("email (console sender, not delivered)",
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.String("body", e.TextBody))
	return nil
}

// Recorder captures emails for tests. If Err is set, Send fails with it
// without recording, simulating a transport failure.
type Recorder struct {
	mu   sync.Mutex
	Err  error
	sent []Email
}

func (r *Recorder) Send(e Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, e)
	return nil
}

// Sent returns a copy of the captured emails.
func (r *Recorder) Sent() []Email {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Email, len(r.sent))
	copy(out, r.sent)
	return out
}
