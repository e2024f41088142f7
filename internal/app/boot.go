package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"flightsim/internal/config"
	"flightsim/internal/logging"
	"flightsim/internal/world"

	"github.com/rs/zerolog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Boot loads the config file and environment, builds the logger and opens
// the scenario named in cfg. Command line overrides win over the file. Logs go
// to console (when non-nil) and to cfg.LogFile (when set); the returned
// closer releases the log file.
func Boot(cfg *Config, console io.Writer) (*world.Simulator, zerolog.Logger, io.Closer, error) {
	settings, err := config.Load(cfg.ConfigPath, world.Keys())
	noFile := errors.Is(err, config.ErrNoFile)
	if err != nil && !noFile {
		return nil, zerolog.Nop(), nopCloser{}, err
	}

	var closer io.Closer = nopCloser{}
	var file io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		file, closer = f, f
	}

	level := cfg.LogLevel
	if level == "" {
		level = settings.LogLevel
	}
	log := logging.NewMulti(logging.ParseLevel(level), console, file)
	if noFile && cfg.ConfigPath != "" {
		log.Warn().Str("path", cfg.ConfigPath).Msg("config file not found, using defaults")
	}

	params := config.Merge(settings.Values, cfg.Params())
	sim, err := world.Open(cfg.Scenario, params, world.WithLogger(log.With().Str("scenario", cfg.Scenario).Logger()))
	if err != nil {
		closer.Close()
		return nil, log, nopCloser{}, err
	}
	log.Debug().Interface("params", params).Msg("configuration loaded")
	return sim, log, closer, nil
}
