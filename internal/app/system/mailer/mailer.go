// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is one outbound message with both plain-text and HTML bodies.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends mail over SMTP. Auth is skipped when no username is set
// (local Mailpit-style relays).
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	log      *zap.Logger
}

// New builds a Mailer from SMTP settings.
func New(host string, port int, username, password, from, fromName string, logger *zap.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
		log:      logger,
	}
}

const boundary = "gridle-alt-7f3a9c"

// Send delivers the email, honoring ctx cancellation between dial and send.
func (m *Mailer) Send(ctx context.Context, e Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	msg := m.build(e)
	if err := smtp.SendMail(addr, auth, m.from, []string{e.To}, msg); err != nil {
		m.log.Error("smtp send failed",
			zap.String("host", m.host),
			zap.String("to", e.To),
			zap.Error(err))
		return fmt.Errorf("sending mail: %w", err)
	}

	m.log.Info("email sent",
		zap.String("to", e.To),
		zap.String("subject", e.Subject))
	return nil
}

// build assembles a multipart/alternative MIME message.
func (m *Mailer) build(e Email) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", m.fromName), m.from)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", e.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(e.TextBody)
	b.WriteString("\r\n")

	if e.HTMLBody != "" {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(e.HTMLBody)
		b.WriteString("\r\n")
	}

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
