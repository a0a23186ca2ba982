// Package mailer delivers a rendered digest over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Settings describe the SMTP relay.
type Settings struct {
	Host     string
	Port     int
	Username string
	Password string
	// Secure selects implicit TLS; otherwise STARTTLS is used when offered.
	Secure bool
}

// Message is one multipart digest email.
type Message struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
}

type Mailer struct {
	settings Settings
}

func New(s Settings) *Mailer {
	return &Mailer{settings: s}
}

// Send delivers msg in a single SMTP session.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	mm, err := buildMessage(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.settings.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to send digest via %s:%d: %w", m.settings.Host, m.settings.Port, err)
	}
	return nil
}

func (m *Mailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.settings.Port),
	}
	if m.settings.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.settings.Username),
			mail.WithPassword(m.settings.Password),
		)
	}
	if m.settings.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	return opts
}

func buildMessage(msg Message) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("no recipients")
	}

	mm := mail.NewMsg()
	if err := mm.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", msg.From, err)
	}
	if err := mm.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient list: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Text)
	mm.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	return mm, nil
}
