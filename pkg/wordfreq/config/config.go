// Package config loads wordfreq.yaml and builds the lexical components the
// pipeline needs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordfreq/internal/logging"
	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

// Environment variables consulted by Load.
const (
	EnvConfig  = "WORDFREQ_CONFIG"
	EnvDataDir = "WORDFREQ_DATA"
)

// DefaultRemote serves NLTK data packages as <category>/<name>.zip.
const DefaultRemote = "https://raw.githubusercontent.com/nltk/nltk_data/gh-pages/packages"

// Config is the on-disk configuration.
type Config struct {
	DataDir        string        `yaml:"data_dir"`
	Remote         string        `yaml:"remote"`
	Stoplist       string        `yaml:"stoplist"`
	ExtraStopwords []string      `yaml:"extra_stopwords"`
	Overrides      string        `yaml:"overrides"`
	LogLevel       string        `yaml:"log_level"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
	Server         Server        `yaml:"server"`
}

// Server configures the HTTP front end.
type Server struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		DataDir:      defaultDataDir(),
		Remote:       DefaultRemote,
		LogLevel:     "info",
		FetchTimeout: 60 * time.Second,
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			SessionTTL:     time.Hour,
		},
	}
}

func defaultDataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "wordfreq")
	}
	return ".wordfreq"
}

// Load reads the YAML file at path over the defaults. An empty path falls
// back to $WORDFREQ_CONFIG, and with neither set the defaults are returned.
// $WORDFREQ_DATA overrides data_dir. Relative stoplist and overrides paths
// are resolved against the file's directory.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config %s: %w", path, internalerr.ErrNotFound)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, errors.Join(err, internalerr.ErrInvalidConfig))
		}
		base := filepath.Dir(path)
		cfg.Stoplist = resolve(base, cfg.Stoplist)
		cfg.Overrides = resolve(base, cfg.Overrides)
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.DataDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks field values.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.DataDir) == "" {
		problems = append(problems, "data_dir is required")
	}
	if strings.TrimSpace(c.Remote) == "" {
		problems = append(problems, "remote is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if c.FetchTimeout <= 0 {
		problems = append(problems, "fetch_timeout must be positive")
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr is required")
	}
	if c.Server.SessionTTL < 0 {
		problems = append(problems, "server.session_ttl must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(problems, "; "), internalerr.ErrInvalidConfig)
	}
	return nil
}

// Loader returns a component loader for this configuration.
func (c *Config) Loader() Loader {
	return Loader{
		DataDir:        c.DataDir,
		StoplistPath:   c.Stoplist,
		ExtraStopwords: c.ExtraStopwords,
		OverridesPath:  c.Overrides,
	}
}
