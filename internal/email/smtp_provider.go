package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"rooya_backend/internal/config"
)

type SMTPProvider struct {
	host      string
	port      int
	auth      smtp.Auth
	fromEmail string
	fromName  string
	useTLS    bool
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	var auth smtp.Auth
	if cfg.Email.Username != "" && cfg.Email.Password != "" {
		auth = smtp.PlainAuth("", cfg.Email.Username, cfg.Email.Password, cfg.Email.SMTPHost)
	}

	return &SMTPProvider{
		host:      cfg.Email.SMTPHost,
		port:      cfg.Email.SMTPPort,
		auth:      auth,
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
		useTLS:    cfg.Email.UseTLS,
	}
}

func (p *SMTPProvider) Send(_ context.Context, msg *Email) error {
	if p.host == "" {
		return fmt.Errorf("smtp host is not configured")
	}

	message := p.buildMessage(msg)
	addr := fmt.Sprintf("%s:%d", p.host, p.port)

	if p.useTLS {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: p.host})
		if err != nil {
			return fmt.Errorf("failed to dial TLS: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, p.host)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		defer client.Close()

		return p.sendWithClient(client, msg.To, message)
	}

	return smtp.SendMail(addr, p.auth, p.fromEmail, []string{msg.To}, message)
}

func (p *SMTPProvider) buildMessage(msg *Email) []byte {
	builder := &strings.Builder{}

	from := p.fromEmail
	if p.fromName != "" {
		from = fmt.Sprintf("%s <%s>", p.fromName, p.fromEmail)
	}

	builder.WriteString(fmt.Sprintf("From: %s\r\n", from))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	builder.WriteString("MIME-Version: 1.0\r\n")

	if msg.IsHTML {
		builder.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	} else {
		builder.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	}
	builder.WriteString(msg.Body)

	return []byte(builder.String())
}

func (p *SMTPProvider) sendWithClient(client *smtp.Client, to string, message []byte) error {
	if p.auth != nil {
		if err := client.Auth(p.auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(p.fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
