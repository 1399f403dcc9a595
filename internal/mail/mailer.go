package mail

import (
	"fmt"

	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender dispatches password reset mail. Split out as an interface so
// the reset flow can run against a fake in tests.
type Sender interface {
	SendPasswordReset(to, resetURL string) error
}

// SMTPSender sends mail through the configured SMTP relay.
type SMTPSender struct {
	cfg config.MailConfig
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// SendPasswordReset mails the reset link. The link is only honored for
// 15 minutes after issuance.
func (s *SMTPSender) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(`<h3>Reset Your Password</h3>
<p>You can reset your password using the link below:</p>
<a href="%s" target="_blank">%s</a>
<p>This link is valid only for 15 minutes.</p>`, resetURL, resetURL)

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password reset link for your expense manager account")
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
