package jwt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/platform/sentinel"
	"gestor-visitas/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTTL = 8 * time.Hour

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenExpired = fmt.Errorf("token: %w", sentinel.ErrExpired)
	ErrTokenInvalid = errors.New("invalid token")
)

// claims es el payload firmado. sub lleva el id de usuario.
type claims struct {
	Email string `json:"email"`
	Rol   string `json:"rol"`
	Area  string `json:"area,omitempty"`
	gojwt.RegisteredClaims
}

// Tokens firma y verifica tokens de sesión HS256.
// Implementa auth.TokenIssuer y auth.AuthVerifier.
type Tokens struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func New(secret, issuer string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{key: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(ctx context.Context, c auth.Claims) (string, time.Time, error) {
	if c.UserID <= 0 || !c.Role.Valid() {
		return "", time.Time{}, fmt.Errorf("%w: claims incompletas", ErrTokenInvalid)
	}

	now := t.now()
	exp := now.Add(t.ttl)
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims{
		Email: c.Email,
		Rol:   string(c.Role),
		Area:  c.Area,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   strconv.FormatInt(c.UserID, 10),
			Issuer:    t.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	})

	signed, err := tok.SignedString(t.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (t *Tokens) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var c claims
	parsed, err := gojwt.ParseWithClaims(token, &c, func(tk *gojwt.Token) (any, error) {
		if _, ok := tk.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, gojwt.ErrTokenUnverifiable
		}
		return t.key, nil
	},
		gojwt.WithIssuer(t.issuer),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return auth.Claims{}, ErrTokenExpired
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return auth.Claims{}, fmt.Errorf("%w: sub", ErrTokenInvalid)
	}
	role := access.Role(c.Rol)
	if !role.Valid() {
		return auth.Claims{}, fmt.Errorf("%w: rol", ErrTokenInvalid)
	}

	return auth.Claims{UserID: id, Email: c.Email, Role: role, Area: c.Area}, nil
}
