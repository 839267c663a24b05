package service

import (
	"sync"

	"sgtpi-agenda/config"

	"github.com/go-gomail/gomail"
	"github.com/sirupsen/logrus"
)

// MailerService consumes the notification bus and delivers emails over SMTP.
// Delivery failures are logged and swallowed; they never reach the engine.
type MailerService struct {
	cfg    config.SMTPConfig
	log    *logrus.Logger
	dialer *gomail.Dialer

	wg sync.WaitGroup
}

func NewMailerService(cfg config.SMTPConfig, log *logrus.Logger) *MailerService {
	return &MailerService{
		cfg:    cfg,
		log:    log,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Start launches the consumer goroutine. It exits when the bus is closed.
func (s *MailerService) Start(events <-chan EmailEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for event := range events {
			s.send(event)
		}
	}()
}

// Wait blocks until the consumer has drained the closed bus
func (s *MailerService) Wait() {
	s.wg.Wait()
}

func (s *MailerService) send(event EmailEvent) {
	if s.cfg.Host == "" {
		s.log.Warnf("SMTP not configured, discarding email to %s (%s)", event.To, event.Subject)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", event.To)
	m.SetHeader("Subject", event.Subject)
	m.SetBody("text/html", event.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Errorf("Failed to send email to %s: %v", event.To, err)
		return
	}

	s.log.Infof("Email sent to %s: %s", event.To, event.Subject)
}
