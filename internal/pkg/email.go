package pkg

import (
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

func VerifyEmailHTML(username, code string, ttl time.Duration) string {
	return fmt.Sprintf(`<p>Hi %s,</p><p>Your SocialConnect verification code is <b style="font-size:18px;">%s</b>.</p><p>It expires in %d minutes. If you didn't create an account, ignore this email.</p>`,
		username, code, int(ttl.Minutes()))
}

func ResetPasswordHTML(code string, ttl time.Duration) string {
	return fmt.Sprintf(`<p>Hi,</p><p>Your SocialConnect password reset code is <b style="font-size:18px;">%s</b>.</p><p>It expires in %d minutes. If you didn't request a reset, ignore this email.</p>`,
		code, int(ttl.Minutes()))
}
