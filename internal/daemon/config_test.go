package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("ZERO2ONE_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Port != 8199 || cfg.Engine.RankStep != 85 {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.Data.MaxBackups != 10 {
		t.Fatalf("MaxBackups = %d", cfg.Data.MaxBackups)
	}
}

func TestSaveLoadConfig_RoundTrip(t *testing.T) {
	t.Setenv("ZERO2ONE_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 9000
	cfg.Engine.DynamicEventChance = 0.5
	cfg.Notifications.MaxPerDay = 3
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.API.Port != 9000 || got.Engine.DynamicEventChance != 0.5 || got.Notifications.MaxPerDay != 3 {
		t.Fatalf("round trip: %+v", got)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ZERO2ONE_HOME", home)

	partial := "[api]\nport = 9100\n"
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(partial), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Port != 9100 {
		t.Fatalf("override lost: %d", cfg.API.Port)
	}
	if cfg.Engine.RankStep != 85 {
		t.Fatalf("default lost: %v", cfg.Engine.RankStep)
	}
}

func TestHome_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ZERO2ONE_HOME", dir)
	if Home() != dir {
		t.Fatalf("Home() = %q, want %q", Home(), dir)
	}
}
