package auth

import (
	"context"
	"time"
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token de sesión para las claims dadas.
// Devuelve también la expiración para setear la cookie.
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (string, time.Time, error)
}
