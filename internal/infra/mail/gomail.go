package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPMailerはgomailでメールを送る。usecase.Mailerの実装。
type SMTPMailer struct {
	host     string
	port     int
	sender   string
	password string
}

// DI
func NewSMTPMailer(host string, port int, sender string, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
	}
}

// SendResetCodeはリセットコードを平文メールで送る。
// 送信失敗はそのまま返す（握りつぶさない）。
func (m *SMTPMailer) SendResetCode(to string, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset code")
	msg.SetBody("text/plain", fmt.Sprintf("Your password reset code is: %s", code))

	d := gomail.NewDialer(m.host, m.port, m.sender, m.password)

	if err := d.DialAndSend(msg); err != nil {
		return err
	}

	return nil
}
