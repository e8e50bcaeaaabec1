package memory

import (
	"context"
	"sync"
	"time"

	"gestor-visitas/internal/domain/otp"
)

// OTPStore guarda los códigos pendientes en memoria del proceso.
type OTPStore struct {
	mu      sync.Mutex
	byEmail map[string]otp.Record
}

func NewOTPStore() *OTPStore {
	return &OTPStore{byEmail: make(map[string]otp.Record)}
}

func (s *OTPStore) Put(ctx context.Context, rec otp.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byEmail[rec.Email] = rec
	return nil
}

func (s *OTPStore) Consume(ctx context.Context, email, code string, now time.Time) (otp.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byEmail[email]
	if !ok {
		return otp.OutcomeMissing, nil
	}
	if rec.Expired(now) {
		delete(s.byEmail, email)
		return otp.OutcomeExpired, nil
	}
	if rec.Code != code {
		return otp.OutcomeMismatch, nil
	}
	delete(s.byEmail, email)
	return otp.OutcomeMatched, nil
}

func (s *OTPStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for email, rec := range s.byEmail {
		if rec.Expired(now) {
			delete(s.byEmail, email)
			n++
		}
	}
	return n, nil
}

// Len es útil en tests.
func (s *OTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byEmail)
}
