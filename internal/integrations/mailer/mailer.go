package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Client отправляет HTML уведомления через SMTP
type Client struct {
	addr string
	auth smtp.Auth
	from string
	log  Logger
}

// NewClient создает новый SMTP клиент.
// При пустом username аутентификация не используется (локальный relay)
func NewClient(host string, port int, username, password, from string, log Logger) *Client {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &Client{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
		log:  log,
	}
}

// Send отправляет HTML письмо.
// Доставка почты не должна ломать бизнес-операцию: вызывающий код логирует
// ошибку и продолжает работу
func (c *Client) Send(to, subject, htmlBody string) error {
	var msg strings.Builder
	msg.WriteString("From: " + c.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if err := smtp.SendMail(c.addr, c.auth, c.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}

	c.log.Info("Sent email to=%s subject=%q", to, subject)
	return nil
}
