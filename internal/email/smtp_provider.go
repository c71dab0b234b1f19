package email

import (
	"context"
	"fmt"

	"hiremind_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider отправляет письма через SMTP (gomail)
type SMTPProvider struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewSMTPProvider создает провайдер из секции email конфига
func NewSMTPProvider(cfg config.EmailConfig) (*SMTPProvider, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", cfg.SMTPPort)
	}

	return &SMTPProvider{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
	}, nil
}

// Send собирает MIME сообщение и отправляет его.
// gomail не принимает context, отмена проверяется перед соединением.
func (p *SMTPProvider) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.from, p.fromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
