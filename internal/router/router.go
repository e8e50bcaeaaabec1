package router

import (
	"database/sql"
	"net/http"
	"time"

	"gestor-visitas/internal/adapters/notify/logsender"
	mem "gestor-visitas/internal/adapters/storage/memory"
	pg "gestor-visitas/internal/adapters/storage/postgres"
	"gestor-visitas/internal/domain/otp"
	"gestor-visitas/internal/domain/reasons"
	"gestor-visitas/internal/domain/session"
	"gestor-visitas/internal/domain/traces"
	"gestor-visitas/internal/domain/users"
	"gestor-visitas/internal/domain/visits"
	"gestor-visitas/internal/middleware"
	"gestor-visitas/internal/platform/logger"
	"gestor-visitas/internal/platform/metrics"
	"gestor-visitas/internal/ports/auth"
	"gestor-visitas/internal/ports/notify"

	_ "gestor-visitas/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Verifier auth.AuthVerifier // nil => solo headers de debug (si DevAuth)
	Tokens   auth.TokenIssuer  // nil => sin rutas /api/auth

	// DevAuth acepta X-Debug-User-ID / X-Debug-User-Role.
	DevAuth bool

	// Si viene DB usa Postgres. Si no, Memory (o una DB en memoria con seed).
	DB     *sql.DB
	Memory *mem.DB

	OTP    *otp.Authenticator // nil => códigos en memoria del proceso
	Sender notify.CodeSender  // nil => logsender

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer // nil => sin /metrics

	Log logger.Logger

	SecureCookies bool
	Location      *time.Location
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.Verifier, opts.DevAuth))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if opts.DB != nil {
			if err := pg.Health(req.Context(), opts.DB); err != nil {
				log.Warn("health: base de datos no disponible", map[string]any{"err": err.Error()})
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		userRepo   users.Repository
		reasonRepo reasons.Repository
		visitRepo  visits.Repository
		traceRepo  traces.Repository
		txRunner   visits.TxRunner
	)

	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		reasonRepo = pg.NewReasonsRepo(opts.DB)
		visitRepo = pg.NewVisitsRepo(opts.DB)
		traceRepo = pg.NewTracesRepo(opts.DB)
		txRunner = pg.NewTxRunner(opts.DB)
	} else {
		db := opts.Memory
		if db == nil {
			db = mem.NewDB()
			db.Seed()
		}
		userRepo = mem.NewUserRepo(db)
		reasonRepo = mem.NewReasonRepo(db)
		visitRepo = mem.NewVisitRepo(db)
		traceRepo = mem.NewTraceRepo(db)
		txRunner = db
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	reasonsSvc := reasons.NewService(reasonRepo)

	visitOpts := []visits.Option{visits.WithLogger(log.With(map[string]any{"module": "visitas"}))}
	if opts.Metrics != nil {
		visitOpts = append(visitOpts, visits.WithObserver(opts.Metrics))
	}
	if opts.Location != nil {
		visitOpts = append(visitOpts, visits.WithLocation(opts.Location))
	}
	visitsSvc := visits.NewService(visitRepo, traceRepo, txRunner, usersSvc, reasonsSvc, visitOpts...)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, log)
	reasons.RegisterRoutes(r, reasonsSvc, log)
	visits.RegisterRoutes(r, visitsSvc, log)

	if opts.Tokens != nil {
		codes := opts.OTP
		if codes == nil {
			otpOpts := []otp.Option{otp.WithLogger(log)}
			if opts.Metrics != nil {
				otpOpts = append(otpOpts, otp.WithObserver(opts.Metrics))
			}
			codes = otp.New(mem.NewOTPStore(), otpOpts...)
		}
		sender := opts.Sender
		if sender == nil {
			sender = logsender.New(log)
		}
		sessionSvc := session.NewService(usersSvc, codes, sender, opts.Tokens, log.With(map[string]any{"module": "auth"}))
		session.RegisterRoutes(r, sessionSvc, log, session.CookieOptions{Secure: opts.SecureCookies})
	}

	return r
}
