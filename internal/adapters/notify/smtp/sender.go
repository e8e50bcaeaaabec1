package smtp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"
)

const subject = "Código de verificación - Gestor de Visitas"

var ErrNotConfigured = errors.New("smtp not configured")

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// SendFunc tiene la firma de smtp.SendMail; se reemplaza en tests.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Sender envía códigos de acceso por correo. Implementa notify.CodeSender.
type Sender struct {
	cfg  Config
	ttl  time.Duration
	send SendFunc
}

func New(cfg Config, codeTTL time.Duration) *Sender {
	return &Sender{cfg: cfg, ttl: codeTTL, send: smtp.SendMail}
}

var bodyTmpl = template.Must(template.New("otp").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4338ca;">Código de Verificación</h2>
  <p>Tu código de verificación para acceder al Gestor de Visitas es:</p>
  <div style="background-color: #f3f4f6; padding: 20px; text-align: center; margin: 20px 0;">
    <h1 style="color: #4338ca; letter-spacing: 8px; margin: 0;">{{.Code}}</h1>
  </div>
  <p style="color: #6b7280;">Este código expira en {{.Minutes}} minutos.</p>
  <p style="color: #6b7280; font-size: 12px;">Si no solicitaste este código, puedes ignorar este correo.</p>
</div>`))

func (s *Sender) SendCode(ctx context.Context, email, code string) error {
	if strings.TrimSpace(s.cfg.Host) == "" || s.cfg.Port <= 0 || strings.TrimSpace(s.cfg.Sender) == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.message(email, code)
	if err != nil {
		return err
	}

	var a smtp.Auth
	if s.cfg.Username != "" {
		a = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, a, s.cfg.Sender, []string{email}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *Sender) message(to, code string) ([]byte, error) {
	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, struct {
		Code    string
		Minutes int
	}{Code: code, Minutes: int(s.ttl.Minutes())}); err != nil {
		return nil, err
	}

	// Headers con CRLF.
	return []byte(strings.Join([]string{
		"To: " + to,
		"From: " + s.cfg.Sender,
		"Subject: " + subject,
		"MIME-version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body.String(),
	}, "\r\n")), nil
}
