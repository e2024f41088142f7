// Package config layers an optional config file and FLIGHTSIM_* environment
// variables into the flag-style map the simulation packages consume.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when looking up environment overrides.
const EnvPrefix = "FLIGHTSIM"

// ErrNoFile reports that no config file was read. Settings returned alongside
// it still carry defaults and environment overrides.
var ErrNoFile = errors.New("no config file")

// Settings is the merged configuration.
type Settings struct {
	LogLevel string
	// Values holds simulation keys in the form FromMap expects.
	Values map[string]string
}

// Load reads path (JSON, TOML or YAML, picked by extension) and overlays
// environment variables for each of keys. Nested sections are flattened to
// their leaf key, so {"terrain": {"terrain_size": 41}} yields terrain_size.
func Load(path string, keys []string) (Settings, error) {
	v := viper.New()
	v.SetDefault("logLevel", "info")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("logLevel", EnvPrefix+"_LOG_LEVEL")
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var readErr error
	switch {
	case path == "":
		readErr = ErrNoFile
	default:
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			readErr = fmt.Errorf("%w: %s", ErrNoFile, path)
			break
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	s := Settings{
		LogLevel: v.GetString("logLevel"),
		Values:   map[string]string{},
	}
	for _, key := range v.AllKeys() {
		if key == "loglevel" || !v.IsSet(key) {
			continue
		}
		val := v.GetString(key)
		if val == "" {
			continue
		}
		leaf := key
		if i := strings.LastIndex(key, "."); i >= 0 {
			leaf = key[i+1:]
		}
		s.Values[leaf] = val
	}
	return s, readErr
}

// Merge returns base overlaid with overrides. Neither input is modified.
func Merge(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
