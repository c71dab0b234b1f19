package email

import (
	"context"

	"hiremind_backend/internal/logger"
)

// Provider отправляет письма
type Provider interface {
	Send(ctx context.Context, msg *Message) error
}

// LogProvider только пишет письмо в лог. Используется, когда SMTP выключен.
type LogProvider struct{}

func (LogProvider) Send(ctx context.Context, msg *Message) error {
	logger.CtxInfo(ctx, "email delivery disabled, message logged",
		"to", msg.To,
		"subject", msg.Subject,
		"body_len", len(msg.Body),
	)
	return nil
}
