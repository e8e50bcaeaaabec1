package otp

import (
	"context"
	"time"
)

// Record es el código pendiente de un email. Hay a lo sumo uno por email.
type Record struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

func (r Record) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// Outcome es el resultado de comparar un código contra el pendiente.
type Outcome int

const (
	OutcomeMissing Outcome = iota
	OutcomeMatched
	OutcomeExpired
	OutcomeMismatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "ok"
	case OutcomeExpired:
		return "expired"
	case OutcomeMismatch:
		return "mismatch"
	}
	return "missing"
}

// Store guarda los códigos pendientes. Cada operación es atómica por email.
type Store interface {
	// Put reemplaza cualquier código pendiente para rec.Email.
	Put(ctx context.Context, rec Record) error
	// Consume compara code contra el pendiente. Borra el registro si coincide
	// o si ya expiró; ante un código distinto lo deja intacto.
	Consume(ctx context.Context, email, code string, now time.Time) (Outcome, error)
	// DeleteExpired borra todo lo vencido a now y devuelve cuántos borró.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Observer recibe eventos del autenticador (métricas).
type Observer interface {
	ObserveIssue()
	ObserveVerify(result string)
	ObserveSweep(n int)
}
