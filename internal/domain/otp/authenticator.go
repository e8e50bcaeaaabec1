package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"gestor-visitas/internal/platform/logger"
)

const (
	DefaultTTL           = 10 * time.Minute
	DefaultSweepInterval = 5 * time.Minute

	codeDigits = 6
)

var ErrInvalidEmail = errors.New("invalid email")

var codeSpace = big.NewInt(1_000_000)

// Authenticator emite y verifica códigos de un solo uso.
type Authenticator struct {
	store    Store
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	random   io.Reader
	obs      Observer
	log      logger.Logger
}

type Option func(*Authenticator)

func WithTTL(d time.Duration) Option {
	return func(a *Authenticator) {
		if d > 0 {
			a.ttl = d
		}
	}
}

func WithSweepInterval(d time.Duration) Option {
	return func(a *Authenticator) {
		if d > 0 {
			a.interval = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) { a.now = now }
}

// WithRandom reemplaza crypto/rand (solo tests).
func WithRandom(r io.Reader) Option {
	return func(a *Authenticator) { a.random = r }
}

func WithObserver(o Observer) Option {
	return func(a *Authenticator) { a.obs = o }
}

func WithLogger(l logger.Logger) Option {
	return func(a *Authenticator) { a.log = l }
}

func New(store Store, opts ...Option) *Authenticator {
	a := &Authenticator{
		store:    store,
		ttl:      DefaultTTL,
		interval: DefaultSweepInterval,
		now:      time.Now,
		random:   rand.Reader,
		log:      logger.Nop(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Issue genera un código nuevo para email e invalida el anterior, si había.
func (a *Authenticator) Issue(ctx context.Context, email string) (string, error) {
	email = normalize(email)
	if email == "" {
		return "", ErrInvalidEmail
	}

	code, err := a.generate()
	if err != nil {
		return "", fmt.Errorf("generar código: %w", err)
	}

	rec := Record{Email: email, Code: code, ExpiresAt: a.now().Add(a.ttl)}
	if err := a.store.Put(ctx, rec); err != nil {
		return "", fmt.Errorf("guardar código: %w", err)
	}

	if a.obs != nil {
		a.obs.ObserveIssue()
	}
	return code, nil
}

// Verify devuelve true solo una vez por código emitido.
func (a *Authenticator) Verify(ctx context.Context, email, code string) (bool, error) {
	email = normalize(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return false, nil
	}

	out, err := a.store.Consume(ctx, email, code, a.now())
	if err != nil {
		return false, fmt.Errorf("verificar código: %w", err)
	}

	if a.obs != nil {
		a.obs.ObserveVerify(out.String())
	}
	if out != OutcomeMatched {
		a.log.Debug("código rechazado", map[string]any{"email": email, "resultado": out.String()})
	}
	return out == OutcomeMatched, nil
}

// Sweep borra los códigos vencidos.
func (a *Authenticator) Sweep(ctx context.Context) (int, error) {
	n, err := a.store.DeleteExpired(ctx, a.now())
	if err != nil {
		return 0, fmt.Errorf("barrer códigos: %w", err)
	}
	if a.obs != nil {
		a.obs.ObserveSweep(n)
	}
	return n, nil
}

// RunSweeper ejecuta Sweep cada interval hasta que ctx termine.
// Un fallo de barrido se loguea y no detiene el ciclo.
func (a *Authenticator) RunSweeper(ctx context.Context) error {
	t := time.NewTicker(a.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			n, err := a.Sweep(ctx)
			if err != nil {
				a.log.Warn("barrido de códigos falló", map[string]any{"err": err.Error()})
				continue
			}
			if n > 0 {
				a.log.Debug("códigos vencidos eliminados", map[string]any{"n": n})
			}
		}
	}
}

func (a *Authenticator) generate() (string, error) {
	n, err := rand.Int(a.random, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
