package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFail_WritesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusForbidden, "No autorizado", "Forbidden")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "No autorizado", env.Error)
	assert.Equal(t, "Forbidden", env.Kind)
}

func TestDecodeStrict_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Motivo string `json:"motivo"`
	}

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"motivo":"x","estado":"CANCELADA"}`))
	err := DecodeStrict(req, &dst)
	assert.True(t, errors.Is(err, ErrInvalidJSON))

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"motivo":"x"}`))
	require.NoError(t, DecodeStrict(req, &dst))
	assert.Equal(t, "x", dst.Motivo)
}

func TestDecodeStrict_RejectsTrailingData(t *testing.T) {
	var dst map[string]any
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{} {}`))
	assert.True(t, errors.Is(DecodeStrict(req, &dst), ErrInvalidJSON))
}

func TestDecodeOptional_EmptyBody(t *testing.T) {
	var dst struct {
		Observaciones string `json:"observaciones"`
	}
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	require.NoError(t, DecodeOptional(req, &dst))
	assert.Empty(t, dst.Observaciones)

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"nope":1}`))
	assert.True(t, errors.Is(DecodeOptional(req, &dst), ErrInvalidJSON))
}
