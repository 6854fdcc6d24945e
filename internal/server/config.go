package server

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is read from an optional YAML file and then overridden from the
// environment.
type Config struct {
	Addr      string `yaml:"addr" env:"LDTOOLS_ADDR"`
	EngineURL string `yaml:"engineUrl" env:"LDTOOLS_ENGINE_URL"`
	PublicURL string `yaml:"publicUrl" env:"LDTOOLS_PUBLIC_URL"`
	DataDir   string `yaml:"dataDir" env:"LDTOOLS_DATA_DIR"`
}

// LoadConfig reads configPath if it exists, applies environment overrides,
// fills defaults and validates.
func LoadConfig(configPath string) (Config, error) {
	var cfg Config

	b, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Environment-only configuration is fine.
	default:
		return Config{}, fmt.Errorf("read %s: %w", configPath, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = ":8080"
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "data"
	}
	if strings.TrimSpace(cfg.PublicURL) == "" {
		cfg.PublicURL = "http://localhost:8080/"
	}

	if strings.TrimSpace(cfg.EngineURL) == "" {
		return Config{}, errors.New("missing engineUrl (LDTOOLS_ENGINE_URL)")
	}
	if _, err := url.Parse(cfg.EngineURL); err != nil {
		return Config{}, fmt.Errorf("invalid engineUrl: %w", err)
	}
	if _, err := url.Parse(cfg.PublicURL); err != nil {
		return Config{}, fmt.Errorf("invalid publicUrl: %w", err)
	}

	return cfg, nil
}
