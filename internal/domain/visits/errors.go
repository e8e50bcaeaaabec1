package visits

import (
	"errors"
	"fmt"
)

// ErrorKind clasifica los fallos que se devuelven al llamador.
type ErrorKind string

const (
	KindNotFound               ErrorKind = "NotFound"
	KindForbidden              ErrorKind = "Forbidden"
	KindInvalidStateTransition ErrorKind = "InvalidStateTransition"
	KindInvalidPayload         ErrorKind = "InvalidPayload"
	KindConcurrencyConflict    ErrorKind = "ConcurrencyConflict"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrInvalidPayload    = errors.New("invalid payload")
	ErrConflict          = errors.New("concurrency conflict")
)

var kindSentinels = map[ErrorKind]error{
	KindNotFound:               ErrNotFound,
	KindForbidden:              ErrForbidden,
	KindInvalidStateTransition: ErrInvalidTransition,
	KindInvalidPayload:         ErrInvalidPayload,
	KindConcurrencyConflict:    ErrConflict,
}

// Error es el resultado estructurado de un fallo de dominio.
// errors.Is(err, ErrForbidden) etc. funciona según Kind.
type Error struct {
	Kind    ErrorKind
	Message string // corto, apto para mostrar al usuario
	Err     error  // causa interna opcional; solo para logs
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// Retryable: solo ConcurrencyConflict se puede reintentar tras releer la visita.
func (e *Error) Retryable() bool {
	return e.Kind == KindConcurrencyConflict
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf devuelve el Kind de err, o "" si no es un error de dominio.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// MessageOf devuelve el mensaje apto para el usuario de err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
