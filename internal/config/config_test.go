package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Generator.Sides != 8 {
		t.Errorf("expected 8 sides, got %d", cfg.Generator.Sides)
	}
	if cfg.Generator.Height != 6.0 {
		t.Errorf("expected height 6.0, got %f", cfg.Generator.Height)
	}
	if cfg.Generator.RadiusBottom != 1.0 {
		t.Errorf("expected bottom radius 1.0, got %f", cfg.Generator.RadiusBottom)
	}
	if cfg.Generator.RadiusTop != 0.8 {
		t.Errorf("expected top radius 0.8, got %f", cfg.Generator.RadiusTop)
	}

	if len(cfg.Parser.ExcludePrefixes) != 2 {
		t.Fatalf("expected 2 exclude prefixes, got %d", len(cfg.Parser.ExcludePrefixes))
	}
	if cfg.Parser.ExcludePrefixes[0] != "WGT-" {
		t.Errorf("expected first exclude prefix WGT-, got %s", cfg.Parser.ExcludePrefixes[0])
	}

	if cfg.Simulation.SpawnInterval != 10 {
		t.Errorf("expected spawn interval 10, got %d", cfg.Simulation.SpawnInterval)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Simulation.Seed)
	}

	if cfg.Server.ListenAddr != "127.0.0.1:8585" {
		t.Errorf("expected listen addr 127.0.0.1:8585, got %s", cfg.Server.ListenAddr)
	}
	if cfg.Server.StepInterval != time.Second {
		t.Errorf("expected step interval 1s, got %v", cfg.Server.StepInterval)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
generator:
  sides: 12
  height: 9.5
simulation:
  spawn_interval: 5
server:
  listen_addr: "0.0.0.0:9000"
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Generator.Sides != 12 {
		t.Errorf("expected 12 sides, got %d", cfg.Generator.Sides)
	}
	if cfg.Generator.Height != 9.5 {
		t.Errorf("expected height 9.5, got %f", cfg.Generator.Height)
	}
	// Unset values keep their defaults.
	if cfg.Generator.RadiusBottom != 1.0 {
		t.Errorf("expected default bottom radius, got %f", cfg.Generator.RadiusBottom)
	}
	if cfg.Simulation.SpawnInterval != 5 {
		t.Errorf("expected spawn interval 5, got %d", cfg.Simulation.SpawnInterval)
	}
	if cfg.Server.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("expected listen addr 0.0.0.0:9000, got %s", cfg.Server.ListenAddr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.Generator.Sides = 16
	cfg.Simulation.Seed = 7

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	reloaded := Default()
	if err := loadFromFile(reloaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	if reloaded.Generator.Sides != 16 {
		t.Errorf("expected 16 sides after reload, got %d", reloaded.Generator.Sides)
	}
	if reloaded.Simulation.Seed != 7 {
		t.Errorf("expected seed 7 after reload, got %d", reloaded.Simulation.Seed)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
