package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config holds the command line settings shared by the GUI and terminal
// front ends.
type Config struct {
	Scenario   string
	ConfigPath string
	LogLevel   string
	LogFile    string
	Seed       int64
	TPS        int
	Width      int
	Height     int
	HUDWidth   int

	// Overrides are repeatable key=value pairs applied over the config file.
	Overrides map[string]string
}

// NewConfig returns the default front end settings.
func NewConfig() *Config {
	return &Config{
		Scenario:  "islands",
		TPS:       30,
		Width:     960,
		Height:    600,
		HUDWidth:  220,
		Overrides: map[string]string{},
	}
}

// Bind registers the settings on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "world scenario to load")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "optional config file (json, toml or yaml)")
	fs.StringVar(&c.LogLevel, "log", c.LogLevel, "log level: TRACE, DEBUG, INFO, WARN or ERROR (default from the config file)")
	fs.StringVar(&c.LogFile, "logfile", c.LogFile, "also write logs to this file")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "world seed (0 keeps the configured seed)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.Width, "width", c.Width, "view width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "view height in pixels")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels (0 hides it)")
	fs.Var(overrideFlag(c.Overrides), "set", "config override in key=value form (repeatable)")
}

// Params folds the seed flag into the overrides passed to the world.
func (c *Config) Params() map[string]string {
	out := make(map[string]string, len(c.Overrides)+1)
	for k, v := range c.Overrides {
		out[k] = v
	}
	if c.Seed != 0 {
		out["seed"] = fmt.Sprint(c.Seed)
	}
	return out
}

type overrideFlag map[string]string

func (o overrideFlag) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (o overrideFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("override %q is not key=value", value)
	}
	o[key] = strings.TrimSpace(val)
	return nil
}
