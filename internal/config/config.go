package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings forkify reads from config.toml.
type Config struct {
	APIURL         string
	APIKey         string
	Timeout        time.Duration
	ResultsPerPage int
	ModalClose     time.Duration
	StoragePath    string
	LogFile        string
	CacheSize      int
}

const (
	defaultConfigPath     = "~/.config/forkify/config.toml"
	defaultAPIURL         = "https://forkify-api.herokuapp.com/api/v2/recipes"
	defaultStoragePath    = "~/.local/share/forkify/storage.db"
	defaultLogFile        = "~/.local/state/forkify/forkify.log"
	defaultTimeoutSec     = 10
	defaultResultsPerPage = 10
	defaultModalCloseSec  = 2.5
	defaultCacheSize      = 64

	// APIKeyEnv overrides api_key when set.
	APIKeyEnv = "FORKIFY_API_KEY"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		Timeout:        defaultTimeoutSec * time.Second,
		ResultsPerPage: defaultResultsPerPage,
		ModalClose:     seconds(defaultModalCloseSec),
		StoragePath:    mustExpand(defaultStoragePath),
		LogFile:        mustExpand(defaultLogFile),
		CacheSize:      defaultCacheSize,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string  `toml:"api_url"`
		APIKey         string  `toml:"api_key"`
		TimeoutSec     float64 `toml:"timeout_sec"`
		ResultsPerPage int     `toml:"results_per_page"`
		ModalCloseSec  float64 `toml:"modal_close_sec"`
		StoragePath    string  `toml:"storage_path"`
		LogFile        string  `toml:"log_file"`
		CacheSize      int     `toml:"cache_size"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	if raw.TimeoutSec > 0 {
		cfg.Timeout = seconds(raw.TimeoutSec)
	}
	if raw.ResultsPerPage > 0 {
		cfg.ResultsPerPage = raw.ResultsPerPage
	}
	if raw.ModalCloseSec > 0 {
		cfg.ModalClose = seconds(raw.ModalCloseSec)
	}
	if v := strings.TrimSpace(raw.StoragePath); v != "" {
		cfg.StoragePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if raw.CacheSize > 0 {
		cfg.CacheSize = raw.CacheSize
	}
	cfg.applyEnv()

	return cfg, nil
}

// CanUpload reports whether an API key is configured.
func (c Config) CanUpload() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c *Config) applyEnv() {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		c.APIKey = key
	}
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath trims path, expands a leading ~ and makes it absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
