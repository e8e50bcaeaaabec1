package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gestor-visitas/internal/domain/users"
	"gestor-visitas/internal/platform/logger"
	"gestor-visitas/internal/ports/auth"
	"gestor-visitas/internal/ports/notify"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidCode     = errors.New("invalid or expired code")
	ErrDeliveryFailure = errors.New("delivery failure")
)

// UserFinder es la parte de users.Service que usa el login.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (users.User, error)
	GetByID(ctx context.Context, id int64) (users.User, error)
}

// CodeAuthenticator es la parte de otp.Authenticator que usa el login.
type CodeAuthenticator interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) (bool, error)
}

// Session es el resultado de un login exitoso.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      users.User
}

type Service struct {
	users  UserFinder
	codes  CodeAuthenticator
	sender notify.CodeSender
	tokens auth.TokenIssuer
	log    logger.Logger
}

func NewService(u UserFinder, codes CodeAuthenticator, sender notify.CodeSender, tokens auth.TokenIssuer, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{users: u, codes: codes, sender: sender, tokens: tokens, log: log}
}

// SendCode emite un código para un usuario existente y lo envía por correo.
func (s *Service) SendCode(ctx context.Context, email string) error {
	email = users.NormalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}

	if _, err := s.lookup(ctx, email); err != nil {
		return err
	}

	code, err := s.codes.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("emitir código: %w", err)
	}

	if err := s.sender.SendCode(ctx, email, code); err != nil {
		s.log.Error("envío de código falló", map[string]any{"email": email, "err": err.Error()})
		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	return nil
}

// VerifyCode consume el código y, si es válido, firma un token de sesión.
func (s *Service) VerifyCode(ctx context.Context, email, code string) (Session, error) {
	email = users.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(code) == "" {
		return Session{}, ErrInvalidInput
	}

	ok, err := s.codes.Verify(ctx, email, code)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrInvalidCode
	}

	u, err := s.lookup(ctx, email)
	if err != nil {
		return Session{}, err
	}

	token, exp, err := s.tokens.Issue(ctx, auth.Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Rol,
		Area:   u.Area,
	})
	if err != nil {
		return Session{}, fmt.Errorf("firmar token: %w", err)
	}

	s.log.Info("sesión iniciada", map[string]any{"user_id": u.ID, "rol": string(u.Rol)})
	return Session{Token: token, ExpiresAt: exp, User: u}, nil
}

// Me devuelve el usuario de la sesión actual.
func (s *Service) Me(ctx context.Context, userID int64) (users.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) || errors.Is(err, users.ErrInvalidInput) {
			return users.User{}, ErrUserNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (s *Service) lookup(ctx context.Context, email string) (users.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) || errors.Is(err, users.ErrInvalidInput) {
			return users.User{}, ErrUserNotFound
		}
		return users.User{}, fmt.Errorf("buscar usuario: %w", err)
	}
	return u, nil
}
