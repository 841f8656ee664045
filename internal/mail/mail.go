package mail

import (
	"fmt"

	"boardTracker/internal/logger"

	"gopkg.in/gomail.v2"
)

type Service struct {
	dialer *gomail.Dialer
	from   string
	send   bool // в тестовых окружениях письма только логируются
}

func NewService(host string, port int, email, password string, send bool) *Service {
	return &Service{
		dialer: gomail.NewDialer(host, port, email, password),
		from:   email,
		send:   send,
	}
}

func (s *Service) Send(to, subject, htmlBody string) error {
	if !s.send {
		logger.Info("Mail: Отправка отключена, письмо пропущено")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("отправка письма: %w", err)
	}
	return nil
}
