// Package mailer sends the transactional email of the service.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"text/template"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const (
	fromName       = "Note Zipper"
	welcomeSubject = "Welcome to Note Zipper – Your First Login"
)

var welcomeText = template.Must(template.New("welcome.txt").Parse(`Welcome to Note Zipper!

Hi {{.Name}},

This is a quick note to confirm that you've logged in to Note Zipper for the first time.

We're glad to have you. You can start creating and organizing your notes right away.

Happy note-taking!

The Note Zipper Team
`))

var welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome.html").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">Welcome to Note Zipper!</h2>
  <p>Hi {{.Name}},</p>
  <p>This is a quick note to confirm that you've logged in to <strong>Note Zipper</strong> for the first time.</p>
  <p>We're glad to have you. You can start creating and organizing your notes right away.</p>
  <p>If you have any questions, feel free to reach out.</p>
  <p>Happy note-taking!</p>
  <p style="color: #6b7280; margin-top: 2rem;">The Note Zipper Team</p>
</div>
`))

// transport delivers built messages. *mail.Client satisfies it.
type transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Mailer composes and sends messages from the configured account.
type Mailer struct {
	from      string
	transport transport
	logger    *zap.Logger
}

// New returns a Mailer for cfg. Without credentials the mailer is disabled
// and every send is skipped with a warning.
func New(cfg Config, logger *zap.Logger) (*Mailer, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return &Mailer{logger: logger}, nil
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSSLPort(false),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	return &Mailer{from: cfg.Username, transport: client, logger: logger}, nil
}

func (m *Mailer) Enabled() bool {
	return m.transport != nil
}

// SendWelcome sends the first-login welcome message to the given address.
func (m *Mailer) SendWelcome(ctx context.Context, to, name string) error {
	if !m.Enabled() {
		m.logger.Warn("welcome email skipped: mail credentials not configured", zap.String("to", to))
		return nil
	}

	msg, err := m.welcomeMessage(to, name)
	if err != nil {
		return err
	}

	if err := m.transport.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending welcome email: %w", err)
	}

	m.logger.Info("welcome email sent", zap.String("to", to))
	return nil
}

func (m *Mailer) welcomeMessage(to, name string) (*mail.Msg, error) {
	if name == "" {
		name = "there"
	}
	data := struct{ Name string }{Name: name}

	var text, html bytes.Buffer
	if err := welcomeText.Execute(&text, data); err != nil {
		return nil, err
	}
	if err := welcomeHTML.Execute(&html, data); err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(fromName, m.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(welcomeSubject)
	msg.SetBodyString(mail.TypeTextPlain, text.String())
	msg.AddAlternativeString(mail.TypeTextHTML, html.String())

	return msg, nil
}
