package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"carelink-backend/config"
)

var ErrNotConfigured = errors.New("smtp is not configured")

// SMTPMailer sends plain-text mail with PLAIN auth.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.Port != "" && m.cfg.User != "" && m.cfg.Password != "" && m.cfg.From != ""
}

// Send delivers one message. smtp.SendMail has no context support, so ctx is
// only checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.cfg.From, to, subject, body))
	return m.send(addr, auth, m.cfg.From, []string{to}, msg)
}
