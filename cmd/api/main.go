package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gestor-visitas/internal/adapters/auth/jwt"
	"gestor-visitas/internal/adapters/notify/logsender"
	"gestor-visitas/internal/adapters/notify/smtp"
	otpredis "gestor-visitas/internal/adapters/otpstore/redis"
	mem "gestor-visitas/internal/adapters/storage/memory"
	pg "gestor-visitas/internal/adapters/storage/postgres"
	"gestor-visitas/internal/domain/otp"
	"gestor-visitas/internal/platform/config"
	"gestor-visitas/internal/platform/logger"
	"gestor-visitas/internal/platform/metrics"
	"gestor-visitas/internal/ports/notify"
	"gestor-visitas/internal/router"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// @title Gestor de Visitas API
// @version 1.0
// @description Programación, ejecución y trazabilidad de visitas de asesores.
// @BasePath /
func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Output: os.Stdout,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UsingDevSecret() {
		log.Warn("JWT_SECRET no configurado, usando secreto de desarrollo", nil)
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(ctx, cfg.DBDSN, pg.Options{})
		if err != nil {
			return err
		}
		defer opened.Close()
		if err := pg.ApplySchema(ctx, opened); err != nil {
			return err
		}
		db = opened
		log.Info("usando postgres", nil)
	} else {
		log.Warn("DB_DSN vacío, usando repos en memoria con datos de ejemplo", nil)
	}

	var memDB *mem.DB
	if db == nil {
		memDB = mem.NewDB()
		memDB.Seed()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var store otp.Store = mem.NewOTPStore()
	if cfg.RedisURL != "" {
		client, err := otpredis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		store = otpredis.NewStore(client)
		log.Info("códigos OTP en redis", nil)
	}

	codes := otp.New(store,
		otp.WithTTL(cfg.OTPTTL),
		otp.WithSweepInterval(cfg.OTPSweepInterval),
		otp.WithObserver(m),
		otp.WithLogger(log.With(map[string]any{"module": "otp"})),
	)

	var sender notify.CodeSender
	if cfg.SMTP.Configured() {
		sender = smtp.New(smtp.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			Sender:   cfg.SMTP.Sender,
		}, cfg.OTPTTL)
	} else {
		log.Warn("SMTP no configurado, los códigos se escriben en el log", nil)
		sender = logsender.New(log)
	}

	tokens := jwt.New(cfg.JWTSecret, cfg.AppName, cfg.TokenTTL)

	handler := router.NewRouter(router.Options{
		Verifier:      tokens,
		Tokens:        tokens,
		DevAuth:       cfg.DevAuth,
		DB:            db,
		Memory:        memDB,
		OTP:           codes,
		Sender:        sender,
		Metrics:       m,
		Gatherer:      reg,
		Log:           log,
		SecureCookies: cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return codes.RunSweeper(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("apagando servidor", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
