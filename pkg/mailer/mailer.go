package mailer

import (
	"fmt"

	"sical_backend/internal/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer 通过SendGrid发送事务性邮件（目前仅密码重置）
type Mailer struct {
	key  string
	from *sgmail.Email
}

func New(cfg *config.MailConfig) *Mailer {
	return &Mailer{
		key:  cfg.SendgridKey,
		from: sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
	}
}

// Send 发送纯文本邮件
func (m *Mailer) Send(toName, toAddr, subject, body string) error {
	if m.key == "" {
		return fmt.Errorf("sendgrid key not configured")
	}

	to := sgmail.NewEmail(toName, toAddr)
	message := sgmail.NewSingleEmail(m.from, subject, to, body, "")

	client := sendgrid.NewSendClient(m.key)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// SendPasswordReset 发送密码重置邮件
func (m *Mailer) SendPasswordReset(toName, toAddr, resetURL string) error {
	body := fmt.Sprintf(
		"您收到此邮件是因为您（或其他人）请求重置密码。请访问以下链接重置密码：\n\n%s\n\n如果不是您本人操作，请忽略此邮件。",
		resetURL,
	)
	return m.Send(toName, toAddr, "密码重置", body)
}
