package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Error, ParseLevel(" error "))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("nope"))
}

func TestNew_JSONIncludesAppAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "gestor-visitas", Output: &buf})

	l.With(map[string]any{"request_id": "r-1"}).Info("visita creada", map[string]any{"visita_id": 10})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visita creada", entry["msg"])
	assert.Equal(t, "gestor-visitas", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.EqualValues(t, 10, entry["visita_id"])
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Output: &buf})

	l.Info("ignorado", nil)
	l.Warn("visible", nil)

	out := buf.String()
	assert.False(t, strings.Contains(out, "ignorado"))
	assert.True(t, strings.Contains(out, "visible"))
}
