package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Discord    DiscordConfig    `yaml:"discord"`
	AppsScript AppsScriptConfig `yaml:"appsScript"`
	Sheet      SheetConfig      `yaml:"sheet"`
	Run        RunConfig        `yaml:"run"`
}

type DiscordConfig struct {
	Token      string   `yaml:"token"`
	ChannelIDs []string `yaml:"channelIds"`
}

type AppsScriptConfig struct {
	WebAppURL string `yaml:"webAppUrl"`
	APIKey    string `yaml:"apiKey"`
}

type SheetConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type RunConfig struct {
	// ShareHost is the hostname share links point at, e.g. "calc.example.com".
	ShareHost string `yaml:"shareHost"`
	StateFile string `yaml:"stateFile"`
	DBFile    string `yaml:"dbFile"`
	XLSXFile  string `yaml:"xlsxFile"`
	SinceDays int    `yaml:"sinceDays"`
	// If true, ignores per-channel lastSeenMessageId checkpoints (the share
	// store is still consulted, so nothing is archived twice).
	IgnoreStateCheckpoint bool `yaml:"ignoreStateCheckpoint"`
	DryRun                bool `yaml:"dryRun"`
}

// LoadConfig reads and validates the archiver YAML config.
func LoadConfig(configPath string) (Config, error) {
	b, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("read config (%s): %w", configPath, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config (%s): %w", configPath, err)
	}

	if strings.TrimSpace(cfg.Run.StateFile) == "" {
		cfg.Run.StateFile = filepath.Clean("work/share_archiver_state.json")
	}
	if strings.TrimSpace(cfg.Run.DBFile) == "" {
		cfg.Run.DBFile = filepath.Clean("work/share_archive.db")
	}
	if strings.TrimSpace(cfg.Run.XLSXFile) == "" {
		cfg.Run.XLSXFile = filepath.Clean(filepath.Join("output", "share_archiver", "archive.xlsx"))
	}
	if cfg.Run.SinceDays == 0 {
		cfg.Run.SinceDays = 30
	}
	if strings.TrimSpace(cfg.Sheet.Name) == "" {
		cfg.Sheet.Name = "shares"
	}

	if strings.TrimSpace(cfg.Run.ShareHost) == "" {
		return Config{}, errors.New("missing run.shareHost")
	}
	if strings.TrimSpace(cfg.Discord.Token) == "" {
		return Config{}, errors.New("missing discord.token")
	}
	if len(cfg.Discord.ChannelIDs) == 0 {
		return Config{}, errors.New("missing discord.channelIds")
	}
	if cfg.Run.SinceDays <= 0 {
		return Config{}, fmt.Errorf("invalid sinceDays: %d", cfg.Run.SinceDays)
	}

	if !cfg.Run.DryRun {
		if strings.TrimSpace(cfg.AppsScript.WebAppURL) == "" {
			return Config{}, errors.New("missing appsScript.webAppUrl")
		}
		if strings.TrimSpace(cfg.Sheet.ID) == "" {
			return Config{}, errors.New("missing sheet.id")
		}
	}

	return cfg, nil
}
