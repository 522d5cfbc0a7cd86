package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeEntry parses the single JSON log line in buf.
func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("listening")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "server", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "listening", entry["message"])
}

func TestNewLogger_GlobalSettings(t *testing.T) {
	NewLogger("server")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	l := NewClientLogger("client", path)
	l.Info().Msg("session restored")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":"client"`)
	assert.Contains(t, string(data), "session restored")
}

func TestNewClientLogger_UnwritablePathFallsBack(t *testing.T) {
	l := NewClientLogger("client", filepath.Join(t.TempDir(), "missing", "dir", "client.log"))
	require.NotNil(t, l)
}

func TestForEnvironment(t *testing.T) {
	tests := []struct {
		env       string
		wantDebug bool
	}{
		{env: "production", wantDebug: false},
		{env: " Production ", wantDebug: false},
		{env: "development", wantDebug: true},
		{env: "", wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			base := &Logger{zerolog.New(&buf)}

			l := base.ForEnvironment(tt.env)
			l.Debug().Msg("debug line")

			if tt.wantDebug {
				assert.Contains(t, buf.String(), "debug line")
			} else {
				assert.Empty(t, buf.String())
			}
			assert.Equal(t, !tt.wantDebug, IsProduction(tt.env))
		})
	}
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_InheritsFieldsAndIsDistinct(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "server").Logger()}

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)

	child.Info().Msg("child")

	assert.Equal(t, "server", decodeEntry(t, &buf)["role"])
}

func TestFromContext(t *testing.T) {
	t.Run("no logger attached", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})

	t.Run("attached logger is returned", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()

		FromContext(zl.WithContext(context.Background())).Info().Msg("ctx")

		assert.Equal(t, "abc", decodeEntry(t, &buf)["trace_id"])
	})
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "req-1").Logger()
	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("request")

	assert.Equal(t, "req-1", decodeEntry(t, &buf)["trace_id"])
}
