package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Day.StepSeconds != 600 || cfg.Day.Start != "09:00" || cfg.Day.End != "18:00" || cfg.Day.Bases != 1 {
		t.Errorf("unexpected day defaults: %+v", cfg.Day)
	}
	if !cfg.UI.Color {
		t.Error("color should default on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
	if got := cfg.DaySeconds(); got != 9*3600 {
		t.Errorf("DaySeconds = %d, want %d", got, 9*3600)
	}
	if got := cfg.UnitCount(); got != 54 {
		t.Errorf("UnitCount = %d, want 54", got)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file must fall back to defaults: %v", err)
	}
	if cfg.Day.StepSeconds != 600 {
		t.Errorf("got step %d, want default 600", cfg.Day.StepSeconds)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[day]
step_seconds = 1800
start = "08:00"
end = "20:00"
bases = 2

[storage]
db_path = "/tmp/slots.db"

[ui]
color = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Day.StepSeconds != 1800 || cfg.Day.Bases != 2 {
		t.Errorf("file values not applied: %+v", cfg.Day)
	}
	if cfg.Storage.DBPath != "/tmp/slots.db" || cfg.UI.Color {
		t.Errorf("storage/ui not applied: %+v %+v", cfg.Storage, cfg.UI)
	}
	if got := cfg.UnitCount(); got != 12 {
		t.Errorf("UnitCount = %d, want 12", got)
	}
}

func TestLoadFromBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[day\nstep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("malformed TOML must fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DAILYSLOT_DAY_START", "10:00")
	t.Setenv("DAILYSLOT_DAY_END", "16:00")
	t.Setenv("DAILYSLOT_STEP_SECONDS", "1200")
	t.Setenv("DAILYSLOT_DB_PATH", "/tmp/env.db")
	t.Setenv("DAILYSLOT_NO_COLOR", "1")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Day.Start != "10:00" || cfg.Day.End != "16:00" || cfg.Day.StepSeconds != 1200 {
		t.Errorf("env not applied: %+v", cfg.Day)
	}
	if cfg.Storage.DBPath != "/tmp/env.db" || cfg.UI.Color {
		t.Errorf("env not applied: %+v %+v", cfg.Storage, cfg.UI)
	}
}

func TestEnvOverridesIgnoreBadNumbers(t *testing.T) {
	t.Setenv("DAILYSLOT_STEP_SECONDS", "soon")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Day.StepSeconds != 600 {
		t.Errorf("bad env number must keep default, got %d", cfg.Day.StepSeconds)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantIn string
	}{
		{"bad start format", func(c *Config) { c.Day.Start = "9:00" }, "HH:MM"},
		{"bad end format", func(c *Config) { c.Day.End = "18h00" }, "HH:MM"},
		{"start after end", func(c *Config) { c.Day.Start, c.Day.End = "18:00", "09:00" }, "before"},
		{"zero step", func(c *Config) { c.Day.StepSeconds = 0 }, "step_seconds"},
		{"zero bases", func(c *Config) { c.Day.Bases = 0 }, "bases"},
		{"uneven division", func(c *Config) { c.Day.StepSeconds = 7001 }, "evenly"},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }, "db_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("want error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q does not mention %q", err, tt.wantIn)
			}
		})
	}
}
