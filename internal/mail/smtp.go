package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/nehabalamurugan/Email-Summarizer/internal/config"
)

// DigestSender delivers the finished report back to the account's own
// address over SMTP.
type DigestSender struct {
	cfg    *config.Config
	creds  *config.Credentials
	logger *logrus.Logger
}

// NewDigestSender creates a digest sender.
func NewDigestSender(cfg *config.Config, creds *config.Credentials, logger *logrus.Logger) *DigestSender {
	return &DigestSender{
		cfg:    cfg,
		creds:  creds,
		logger: logger,
	}
}

// Send delivers the report body with the given subject to the account
// itself. Port 465 uses implicit TLS; anything else uses STARTTLS.
func (d *DigestSender) Send(subject, body string) error {
	addr := fmt.Sprintf("%s:%d", d.cfg.SMTPHost, d.cfg.SMTPPort)
	auth := smtp.PlainAuth("", d.creds.User, d.creds.Password, d.cfg.SMTPHost)
	msg := d.createMessage(subject, body)

	var cl *smtp.Client
	if d.cfg.SMTPPort == 465 {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: d.cfg.SMTPHost})
		if err != nil {
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		cl, err = smtp.NewClient(conn, d.cfg.SMTPHost)
		if err != nil {
			conn.Close()
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
	} else {
		var err error
		cl, err = smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		if err := cl.StartTLS(&tls.Config{ServerName: d.cfg.SMTPHost}); err != nil {
			cl.Close()
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	defer cl.Close()

	if err := cl.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	if err := cl.Mail(d.creds.User); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := cl.Rcpt(d.creds.User); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := cl.Data()
	if err != nil {
		return fmt.Errorf("failed to send data command: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := cl.Quit(); err != nil {
		return fmt.Errorf("failed to quit SMTP session: %w", err)
	}

	d.logger.WithField("to", d.creds.User).Info("Sent summary digest")
	return nil
}

// createMessage builds the text-only digest message.
func (d *DigestSender) createMessage(subject, body string) []byte {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", d.creds.User))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", d.creds.User))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}
