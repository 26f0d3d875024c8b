package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"

	"github.com/sirupsen/logrus"

	"github.com/yukikurage/team-management-api/internal/config"
)

// SMTPMailer implements Mailer using SMTP
type SMTPMailer struct {
	cfg  config.SMTPConfig
	auth smtp.Auth
	log  *logrus.Logger
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg config.SMTPConfig, log *logrus.Logger) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPMailer{
		cfg:  cfg,
		auth: auth,
		log:  log,
		send: smtp.SendMail,
	}
}

func (s *SMTPMailer) SendInvitation(ctx context.Context, msg InvitationMessage) error {
	return s.sendEmail(ctx, msg.To, invitationTemplate, msg)
}

func (s *SMTPMailer) sendEmail(ctx context.Context, to string, tmpl Template, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, err := render(tmpl.Subject, data)
	if err != nil {
		return fmt.Errorf("render subject: %w", err)
	}
	body, err := render(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("render body: %w", err)
	}

	message := buildMessage(s.cfg.From, to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, s.auth, s.cfg.From, []string{to}, message); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	s.log.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email sent")
	return nil
}

func render(src string, data any) (string, error) {
	tmpl, err := template.New("email").Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildMessage(from, to, subject, body string) []byte {
	return []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body))
}
