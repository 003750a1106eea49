package mailer

import (
	"gopkg.in/gomail.v2"
)

// Sender delivers one notification message. Implementations are best-effort;
// callers log errors and move on.
type Sender interface {
	Send(to, subject, html string) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, pass, from string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, user, pass), from: from}
}

func (s *SMTPSender) Send(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	return s.dialer.DialAndSend(m)
}
