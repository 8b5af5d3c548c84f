package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the device agent configuration, loaded from a YAML file
type Config struct {
	ServerURL string `yaml:"server_url"`
	Token     string `yaml:"token"`
	DeviceID  string `yaml:"device_id"`
	MediaDir  string `yaml:"media_dir"`
	Schedule  string `yaml:"schedule"`
}

// LoadConfig reads and validates the agent configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:5002"
	}
	if cfg.MediaDir == "" {
		cfg.MediaDir = "./media"
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 5m"
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("config is missing token")
	}

	return cfg, nil
}
