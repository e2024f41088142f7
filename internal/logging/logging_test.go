package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		" warn ":  zerolog.WarnLevel,
		"Error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"verbose": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.WarnLevel)

	log.Info().Msg("hidden")
	log.Warn().Str("seed", "42").Msg("world rebuilt")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "world rebuilt")
	assert.Contains(t, out, "seed=")
}

func TestNewMultiWritesPlainFileCopy(t *testing.T) {
	var console, file bytes.Buffer
	log := NewMulti(zerolog.DebugLevel, &console, &file)

	log.Debug().Int("meshes", 3).Msg("built")

	require.NotZero(t, console.Len())
	require.NotZero(t, file.Len())
	assert.NotContains(t, file.String(), "\x1b[", "file output must not carry colour codes")
	assert.Contains(t, file.String(), "meshes=3")
}

func TestNewMultiWithoutWritersIsNop(t *testing.T) {
	log := NewMulti(zerolog.InfoLevel, nil, nil)
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}
