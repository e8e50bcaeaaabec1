package sentinel

import "errors"

// Errores de infraestructura. Los adapters de storage devuelven estos
// (opcionalmente envueltos) y los servicios los traducen a errores de dominio.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrExpired  = errors.New("expired")
)
