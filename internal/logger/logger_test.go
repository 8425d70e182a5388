package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestInitWithWriter_JSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	InitWithWriter("warn", "json", &buf)

	log := GetLogger()
	log.Info().Msg("hidden")
	log.Warn().Str("backend", "file").Msg("Session store unavailable")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "file", entry["backend"])
	assert.Equal(t, "Session store unavailable", entry["message"])
}
