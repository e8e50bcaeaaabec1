package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const devJWTSecret = "dev-secret-change-in-production"

// Config agrupa la configuración del servicio. Todo viene de env vars.
type Config struct {
	Port string

	// DBDSN vacío => repos in-memory (modo dev).
	DBDSN string

	// RedisURL vacío => códigos OTP en memoria del proceso.
	RedisURL string

	JWTSecret string
	TokenTTL  time.Duration

	OTPTTL           time.Duration
	OTPSweepInterval time.Duration

	SMTP SMTP

	LogLevel  string
	LogFormat string
	AppName   string

	// DevAuth habilita X-Debug-User-ID / X-Debug-User-Role sin token.
	DevAuth bool

	// CookieSecure marca auth_token como Secure (solo HTTPS).
	CookieSecure bool

	ShutdownTimeout time.Duration
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// Configured indica si hay SMTP suficiente para enviar correos.
func (s SMTP) Configured() bool {
	return strings.TrimSpace(s.Host) != "" && s.Port > 0 && strings.TrimSpace(s.Sender) != ""
}

// Load lee la configuración desde el entorno, con defaults para dev.
func Load() Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("jwt_secret", devJWTSecret)
	v.SetDefault("token_ttl", 8*time.Hour)
	v.SetDefault("otp_ttl", 10*time.Minute)
	v.SetDefault("otp_sweep_interval", 5*time.Minute)
	v.SetDefault("smtp_port", 587)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("app_name", "gestor-visitas")
	v.SetDefault("dev_auth", false)
	v.SetDefault("cookie_secure", false)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	return Config{
		Port:             v.GetString("port"),
		DBDSN:            v.GetString("db_dsn"),
		RedisURL:         v.GetString("redis_url"),
		JWTSecret:        v.GetString("jwt_secret"),
		TokenTTL:         v.GetDuration("token_ttl"),
		OTPTTL:           v.GetDuration("otp_ttl"),
		OTPSweepInterval: v.GetDuration("otp_sweep_interval"),
		SMTP: SMTP{
			Host:     v.GetString("smtp_host"),
			Port:     v.GetInt("smtp_port"),
			Username: v.GetString("smtp_username"),
			Password: v.GetString("smtp_password"),
			Sender:   v.GetString("smtp_sender_email"),
		},
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
		AppName:         v.GetString("app_name"),
		DevAuth:         v.GetBool("dev_auth"),
		CookieSecure:    v.GetBool("cookie_secure"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}
}

// UsingDevSecret avisa si JWT_SECRET quedó con el valor por defecto.
func (c Config) UsingDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}
