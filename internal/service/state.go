package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"CashCycle/internal/model"
)

// LoadRuntimeConfig reads the runtime config from a JSON state file.
// Returns the moderate defaults if the file doesn't exist.
func LoadRuntimeConfig(path string) (model.RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultRuntimeConfig(), nil
		}
		return model.RuntimeConfig{}, err
	}
	var cfg model.RuntimeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.RuntimeConfig{}, err
	}
	if cfg.RiskTolerance == "" {
		cfg = model.DefaultRuntimeConfig()
	}
	return cfg, nil
}

// SaveRuntimeConfig writes the runtime config to a JSON state file.
func SaveRuntimeConfig(path string, cfg *model.RuntimeConfig) error {
	cfg.UpdatedAt = time.Now()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
