package email

import (
	"bytes"
	"fmt"
	"html/template"

	"carhub_backend/internal/config"

	"gopkg.in/gomail.v2"
)

var verificationTemplate = template.Must(template.New("verification").Parse(`
<p>Здравствуйте{{if .Name}}, {{.Name}}{{end}}!</p>
<p>Ваш код подтверждения: <b>{{.Code}}</b></p>
<p>Код действует {{.TTLSeconds}} секунд.</p>
`))

// SMTPProvider отправляет письма через SMTP (gomail)
type SMTPProvider struct {
	cfg *config.Config
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

// Validate проверяет конфигурацию SMTP
func (p *SMTPProvider) Validate() error {
	if p.cfg.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.cfg.Email.SMTPPort <= 0 || p.cfg.Email.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.cfg.Email.SMTPPort)
	}
	return nil
}

// SendVerificationCode отправляет письмо с кодом верификации
func (p *SMTPProvider) SendVerificationCode(to string, code string) error {
	if err := p.Validate(); err != nil {
		return err
	}

	var body bytes.Buffer
	err := verificationTemplate.Execute(&body, map[string]interface{}{
		"Code":       code,
		"TTLSeconds": p.cfg.Verification.CodeTTLSeconds,
	})
	if err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.cfg.Email.FromEmail, p.cfg.Email.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verification Code for Signup")
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUser,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}
