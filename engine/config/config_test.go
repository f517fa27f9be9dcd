package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tavolo.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}

	want := Default()
	if *cfg != *want {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
title = "Workbench"
width = 1920
height = 1080

[shadow]
resolution = 2048

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Window.Title != "Workbench" || cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Shadow.Resolution != 2048 {
		t.Errorf("shadow resolution = %d, want 2048", cfg.Shadow.Resolution)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Assets.Dir != "assets" {
		t.Errorf("assets dir = %q, want the default", cfg.Assets.Dir)
	}
	if cfg.Window.PosX != 100 || cfg.Window.PosY != 100 {
		t.Errorf("window position = (%d, %d), want defaults", cfg.Window.PosX, cfg.Window.PosY)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[window`)
	if _, err := Load(path); err == nil {
		t.Error("malformed file loaded without error")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"zero window width", "[window]\nwidth = 0\n"},
		{"zero window height", "[window]\nheight = 0\n"},
		{"negative shadow resolution", "[shadow]\nresolution = -1\n"},
		{"zero shadow resolution", "[shadow]\nresolution = 0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.contents)
			if _, err := Load(path); err == nil {
				t.Error("invalid config loaded without error")
			}
		})
	}
}
