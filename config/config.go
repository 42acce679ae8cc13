package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

var (
	configDir  = filepath.Join(os.Getenv("HOME"), ".taskmgr")
	configPath = filepath.Join(configDir, "config.json")
)

func Load() (*Config, error) {
	os.MkdirAll(configDir, 0755)
	return LoadFrom(configPath)
}

// LoadFrom reads a config file, writing defaults in place when the file is
// missing or unreadable.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := defaultConfig()
		_ = SaveTo(path, cfg)
		return cfg, nil
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg := defaultConfig()
		_ = SaveTo(path, cfg)
		return cfg, nil
	}

	if cfg.Webhooks == nil {
		cfg.Webhooks = map[string]string{}
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	return SaveTo(configPath, cfg)
}

func SaveTo(path string, cfg *Config) error {
	data, _ := json.MarshalIndent(cfg, "", "  ")
	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		UpdateIntervalSeconds: 10,
		ServiceLimit:          5,
		DiskPath:              "/",
		CPUThreshold:          80,
		MemThreshold:          80,
		ActiveWebhook:         "",
		Webhooks:              map[string]string{},
	}
}

func Path() string {
	return configPath
}
