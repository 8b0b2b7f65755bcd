package email

import (
	"carhub_backend/internal/logger"
)

// LogProvider пишет письма в лог вместо отправки.
// Используется в тестах и когда SMTP не сконфигурирован.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Validate() error {
	return nil
}

func (p *LogProvider) SendVerificationCode(to string, code string) error {
	logger.Info("verification email (not sent, log provider)", "to", to, "code", code)
	return nil
}
