package email

// Provider определяет интерфейс для отправки писем
type Provider interface {
	// SendVerificationCode отправляет код верификации регистрации
	SendVerificationCode(to string, code string) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}
