package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()

	assert.Equal(t, 8*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 5*time.Minute, cfg.OTPSweepInterval)
	assert.Equal(t, "gestor-visitas", cfg.AppName)
	assert.False(t, cfg.SMTP.Configured())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/visitas")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("OTP_TTL", "2m")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_SENDER_EMAIL", "noreply@example.com")
	t.Setenv("DEV_AUTH", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://u:p@localhost:5432/visitas", cfg.DBDSN)
	assert.Equal(t, 2*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.Configured())
	assert.True(t, cfg.DevAuth)
	assert.False(t, cfg.UsingDevSecret())
}
