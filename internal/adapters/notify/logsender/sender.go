package logsender

import (
	"context"

	"gestor-visitas/internal/platform/logger"
)

// Sender escribe el código en el log en vez de enviarlo. Solo para dev sin SMTP.
type Sender struct {
	log logger.Logger
}

func New(log logger.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) SendCode(ctx context.Context, email, code string) error {
	s.log.Warn("SMTP no configurado; código de acceso en log", map[string]any{
		"email": email,
		"code":  code,
	})
	return nil
}
