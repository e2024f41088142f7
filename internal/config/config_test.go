package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_JSONFlattensSections(t *testing.T) {
	path := writeFile(t, "flightsim.json", `{
		"logLevel": "debug",
		"terrain": { "terrain_size": 41, "ring_radius": 55.5 },
		"mesh_count": 4
	}`)

	s, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "41", s.Values["terrain_size"])
	assert.Equal(t, "55.5", s.Values["ring_radius"])
	assert.Equal(t, "4", s.Values["mesh_count"])
	assert.NotContains(t, s.Values, "loglevel")
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "flightsim.yaml", "terrain_mode: corrected\nprojectile_capacity: 50\n")

	s, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "corrected", s.Values["terrain_mode"])
	assert.Equal(t, "50", s.Values["projectile_capacity"])
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"), nil)
	require.ErrorIs(t, err, ErrNoFile)
	assert.Equal(t, "info", s.LogLevel)
	assert.Empty(t, s.Values)

	_, err = Load("", nil)
	require.ErrorIs(t, err, ErrNoFile)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, "broken.json", `{"terrain_size": `)

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoFile)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "flightsim.json", `{"terrain_size": 41}`)
	t.Setenv("FLIGHTSIM_TERRAIN_SIZE", "17")
	t.Setenv("FLIGHTSIM_MESH_COUNT", "5")
	t.Setenv("FLIGHTSIM_LOG_LEVEL", "warn")

	s, err := Load(path, []string{"terrain_size", "mesh_count", "seed"})
	require.NoError(t, err)

	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "17", s.Values["terrain_size"])
	assert.Equal(t, "5", s.Values["mesh_count"])
	assert.NotContains(t, s.Values, "seed")
}

func TestMerge(t *testing.T) {
	base := map[string]string{"a": "1", "b": "2"}
	got := Merge(base, map[string]string{"b": "3", "c": "4"})

	assert.Equal(t, map[string]string{"a": "1", "b": "3", "c": "4"}, got)
	assert.Equal(t, "2", base["b"])
}
