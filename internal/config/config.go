// Package config resolves the settings of a conversion run: the API token,
// and the optional YAML file and environment overrides of the binary.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrjoshuak/readablepub/internal/logger"
	"github.com/mrjoshuak/readablepub/types"
)

// Configuration validation errors.
var (
	ErrInvalidAPIURL   = errors.New("api_url must be an absolute http(s) URL")
	ErrInvalidTimeout  = errors.New("timeout must be non-negative")
	ErrInvalidLogLevel = errors.New("log_level must be one of: trace, debug, info, warn, error")
)

// Environment variables overriding the file.
const (
	EnvAPIURL    = "READABLEPUB_API_URL"
	EnvOutputDir = "READABLEPUB_OUTPUT_DIR"
	EnvLogLevel  = "READABLEPUB_LOG_LEVEL"
)

// Config holds the settings of the readablepub binary.
type Config struct {
	APIURL    string        `yaml:"api_url"`
	OutputDir string        `yaml:"output_dir"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	LogLevel  string        `yaml:"log_level"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	opts := types.DefaultOptions()
	return &Config{
		APIURL:    opts.APIBaseURL,
		OutputDir: opts.OutputDir,
		UserAgent: opts.UserAgent,
		LogLevel:  "info",
	}
}

// DefaultPath returns the config file location inside home.
func DefaultPath(home string) string {
	return filepath.Join(home, ".config", types.Name, "config.yaml")
}

// LoadFile reads path on top of the defaults. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment using lookup, which has the
// signature of os.LookupEnv.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		cfg.APIURL = v
	}
	if v, ok := lookup(EnvOutputDir); ok && v != "" {
		cfg.OutputDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks the API URL, timeout and log level.
func (cfg *Config) Validate() error {
	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidAPIURL, cfg.APIURL)
	}
	if cfg.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if !logger.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}
	return nil
}

// Options converts the configuration into conversion options for token.
func (cfg *Config) Options(token string) types.ConversionOptions {
	opts := types.DefaultOptions()
	opts.Token = token
	opts.APIBaseURL = cfg.APIURL
	opts.OutputDir = cfg.OutputDir
	opts.Timeout = cfg.Timeout
	if cfg.UserAgent != "" {
		opts.UserAgent = cfg.UserAgent
	}
	return opts
}
