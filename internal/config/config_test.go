package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Simulation.HistoryFile != "data/atm_history.csv" {
		t.Errorf("history file = %s", cfg.Simulation.HistoryFile)
	}
	if cfg.Simulation.StateFile != "data/runtime_config.json" {
		t.Errorf("state file = %s", cfg.Simulation.StateFile)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Simulation.Seed)
	}
	if cfg.Database.SQLitePath != "data/cashcycle.db" {
		t.Errorf("sqlite path = %s", cfg.Database.SQLitePath)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
simulation:
  history_file: /tmp/h.csv
  seed: 7
schedule:
  auto_advance_cron: "0 0 9 * * *"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Simulation.HistoryFile != "/tmp/h.csv" {
		t.Errorf("history file = %s", cfg.Simulation.HistoryFile)
	}
	if cfg.Simulation.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Simulation.Seed)
	}
	if cfg.Schedule.AutoAdvanceCron != "0 0 9 * * *" {
		t.Errorf("cron = %s", cfg.Schedule.AutoAdvanceCron)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9100")
	t.Setenv("SIM_SEED", "99")
	t.Setenv("HISTORY_FILE", "/tmp/env.csv")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want env override 9100", cfg.Server.Port)
	}
	if cfg.Simulation.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Simulation.Seed)
	}
	if cfg.Simulation.HistoryFile != "/tmp/env.csv" {
		t.Errorf("history file = %s", cfg.Simulation.HistoryFile)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	valid, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	bad := *valid
	bad.Server.Port = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for port 0")
	}

	bad = *valid
	bad.Simulation.HistoryFile = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected error for empty history file")
	}

	bad = *valid
	bad.Telegram.BotToken = "token"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for bot token without chat id")
	}
}
