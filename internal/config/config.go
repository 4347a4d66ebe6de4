package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tally/internal/listview"
)

// Config holds the resolved Tally settings.
type Config struct {
	APIURL          string        `validate:"required"`
	Token           string        // bearer token; from token, token_file or TALLY_TOKEN
	PageSize        int           `validate:"oneof=10 20 50 100"`
	RefreshInterval time.Duration `validate:"gte=0"` // zero disables auto-refresh
	RequestTimeout  time.Duration `validate:"gt=0"`
	LogFile         string        `validate:"required"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
}

const (
	defaultConfigPath     = "~/.config/tally/config.toml"
	defaultAPIURL         = "http://127.0.0.1:3000/api"
	defaultLogFile        = "~/.local/state/tally/tally.log"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 10 * time.Second

	tokenEnv = "TALLY_TOKEN"
)

type fileConfig struct {
	APIURL                string `toml:"api_url"`
	Token                 string `toml:"token"`
	TokenFile             string `toml:"token_file"`
	PageSize              int    `toml:"page_size"`
	RefreshSeconds        int    `toml:"refresh_seconds"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	LogFile               string `toml:"log_file"`
	LogLevel              string `toml:"log_level"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		PageSize:       listview.DefaultPageSize,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

// Load locates and parses the Tally config, falling back to defaults when missing.
// TALLY_TOKEN, when set, takes precedence over the file's token settings.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		cfg.Token = strings.TrimSpace(os.Getenv(tokenEnv))
		return cfg, cfg.Validate()
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if raw.PageSize != 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.RefreshSeconds > 0 {
		cfg.RefreshInterval = time.Duration(raw.RefreshSeconds) * time.Second
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	cfg.Token, err = resolveToken(raw.Token, raw.TokenFile, filepath.Dir(resolved))
	if err != nil {
		return Config{}, err
	}
	if env := strings.TrimSpace(os.Getenv(tokenEnv)); env != "" {
		cfg.Token = env
	}

	return cfg, cfg.Validate()
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the resolved settings.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (got %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// resolveToken prefers an inline token; token_file is read relative to the
// config file's directory.
func resolveToken(inline, tokenFile, baseDir string) (string, error) {
	if token := strings.TrimSpace(inline); token != "" {
		return token, nil
	}
	tokenFile = strings.TrimSpace(tokenFile)
	if tokenFile == "" {
		return "", nil
	}
	if !strings.HasPrefix(tokenFile, "~") && !filepath.IsAbs(tokenFile) {
		tokenFile = filepath.Join(baseDir, tokenFile)
	}
	path, err := expandPath(tokenFile)
	if err != nil {
		return "", fmt.Errorf("resolve token_file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read token_file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
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
