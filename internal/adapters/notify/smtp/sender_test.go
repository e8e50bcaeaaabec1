package smtp

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_SendCode(t *testing.T) {
	s := New(Config{Host: "smtp.example.com", Port: 2525, Username: "u", Password: "p", Sender: "noreply@example.com"}, 10*time.Minute)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	require.NoError(t, s.SendCode(context.Background(), "asesor@x.com", "042137"))

	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"asesor@x.com"}, gotTo)
	msg := string(gotMsg)
	assert.True(t, strings.HasPrefix(msg, "To: asesor@x.com\r\n"))
	assert.Contains(t, msg, "042137")
	assert.Contains(t, msg, "expira en 10 minutos")
}

func TestSender_Errors(t *testing.T) {
	err := New(Config{}, time.Minute).SendCode(context.Background(), "a@x.com", "1")
	assert.ErrorIs(t, err, ErrNotConfigured)

	s := New(Config{Host: "h", Port: 25, Sender: "s@x.com"}, time.Minute)
	boom := errors.New("connection refused")
	s.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }
	assert.ErrorIs(t, s.SendCode(context.Background(), "a@x.com", "1"), boom)
}
