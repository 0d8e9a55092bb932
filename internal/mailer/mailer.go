package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer отправляет письма с одноразовыми кодами через SMTP.
// Отправка синхронная: ошибка транспорта поднимается вызывающему как есть,
// без ретраев и без отката уже сохранённого кода.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New создаёт SMTP отправитель.
func New(host string, port int, user, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// SendOTP отправляет письмо с кодом подтверждения.
func (m *Mailer) SendOTP(email, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("SnipStash <%s>", m.from))
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your SnipStash Verification Code")
	msg.SetBody("text/html", otpBody(code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: не удалось отправить код на %s: %w", email, err)
	}

	return nil
}

// otpBody формирует HTML тело письма с кодом.
func otpBody(code string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f8f9fa; border-radius: 8px;">
			<div style="text-align: center; margin-bottom: 30px;">
				<h1 style="color: #3182ce; margin: 0;">SnipStash</h1>
				<p style="color: #4a5568; margin-top: 5px;">Your Code Snippet Manager</p>
			</div>
			<div style="background-color: white; padding: 30px; border-radius: 8px;">
				<h2 style="color: #2d3748; margin-top: 0;">Verification Code</h2>
				<p style="color: #4a5568; margin-bottom: 20px;">Your verification code for SnipStash is:</p>
				<div style="background-color: #ebf8ff; padding: 15px; border-radius: 6px; text-align: center; margin-bottom: 20px;">
					<span style="font-size: 24px; font-weight: bold; color: #3182ce; letter-spacing: 2px;">%s</span>
				</div>
				<p style="color: #718096; font-size: 14px;">This code will expire in 10 minutes.</p>
				<p style="color: #718096; font-size: 14px;">If you didn't request this code, you can safely ignore this email.</p>
			</div>
		</div>
	`, code)
}
