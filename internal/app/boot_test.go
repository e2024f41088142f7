package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBootAppliesFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flightsim.yaml")
	data := "logLevel: debug\nterrain:\n  terrain_size: 9\nmesh_count: 4\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig()
	cfg.ConfigPath = path
	cfg.LogFile = filepath.Join(dir, "run.log")
	cfg.Overrides["mesh_count"] = "2"

	var console bytes.Buffer
	sim, _, closer, err := Boot(cfg, &console)
	if err != nil {
		t.Fatalf("boot: %v", err)
	}
	defer closer.Close()

	if got := len(sim.Meshes()); got != 2 {
		t.Fatalf("meshes = %d, want the command line override 2", got)
	}
	if got := sim.Config().Terrain.Size; got != 9 {
		t.Fatalf("terrain size = %d, want 9 from the file", got)
	}
	if !strings.Contains(console.String(), "configuration loaded") {
		t.Fatalf("debug level from the file was not applied:\n%s", console.String())
	}
	logged, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(logged), "world built") {
		t.Fatalf("log file missing world build entry:\n%s", logged)
	}
}

func TestBootWithoutConfigFile(t *testing.T) {
	cfg := NewConfig()
	cfg.ConfigPath = filepath.Join(t.TempDir(), "missing.toml")
	cfg.Overrides["terrain_size"] = "9"
	cfg.Overrides["mesh_count"] = "1"
	var console bytes.Buffer
	sim, _, closer, err := Boot(cfg, &console)
	if err != nil {
		t.Fatalf("a missing config file is not fatal: %v", err)
	}
	defer closer.Close()
	if sim.Name() != "islands" {
		t.Fatalf("scenario = %q", sim.Name())
	}
	if !strings.Contains(console.String(), "config file not found") {
		t.Fatalf("expected a warning, got:\n%s", console.String())
	}
}

func TestBootUnknownScenario(t *testing.T) {
	cfg := NewConfig()
	cfg.Scenario = "nowhere"
	if _, _, _, err := Boot(cfg, nil); err == nil {
		t.Fatal("expected an error for an unknown scenario")
	}
}
