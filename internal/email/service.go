package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends transactional mail. Delivery failures are the caller's to
// log; nothing here blocks the request path.
type Service interface {
	SendWelcome(ctx context.Context, to, name string) error
}

type Config struct {
	Host     string
	Port     int
	From     string
	User     string
	Password string
}

type smtpService struct {
	cfg    Config
	dialer *gomail.Dialer
}

// NewSMTPService creates a gomail-backed sender. An empty host yields a
// no-op service so local setups work without SMTP.
func NewSMTPService(cfg Config) Service {
	if cfg.Host == "" {
		return noopService{}
	}
	return &smtpService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (s *smtpService) SendWelcome(_ context.Context, to, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to HealthMate")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour HealthMate account is ready. Upload a report or log your vitals to get started.\n", name))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

type noopService struct{}

func (noopService) SendWelcome(context.Context, string, string) error { return nil }
