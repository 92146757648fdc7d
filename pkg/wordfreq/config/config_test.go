package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

func TestDefaults(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvConfig, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Remote != DefaultRemote {
		t.Errorf("Remote = %q", cfg.Remote)
	}
	if cfg.LogLevel != "info" || cfg.FetchTimeout != time.Minute {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Server.Addr != ":8080" || !reflect.DeepEqual(cfg.Server.AllowedOrigins, []string{"*"}) {
		t.Errorf("Unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should default to a cache directory")
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "wordfreq.yaml")
	content := `data_dir: /srv/wordfreq
stoplist: stoplist.yaml
overrides: /etc/wordfreq/lemmas.yaml
extra_stopwords: [lorem, ipsum]
log_level: debug
fetch_timeout: 5s
server:
  addr: 127.0.0.1:9000
  allowed_origins: [https://example.com]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DataDir != "/srv/wordfreq" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Stoplist != filepath.Join(tmpDir, "stoplist.yaml") {
		t.Errorf("Relative stoplist not resolved: %q", cfg.Stoplist)
	}
	if cfg.Overrides != "/etc/wordfreq/lemmas.yaml" {
		t.Errorf("Absolute overrides changed: %q", cfg.Overrides)
	}
	if !reflect.DeepEqual(cfg.ExtraStopwords, []string{"lorem", "ipsum"}) {
		t.Errorf("ExtraStopwords = %v", cfg.ExtraStopwords)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.FetchTimeout)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	// Unset keys keep their defaults
	if cfg.Remote != DefaultRemote || cfg.Server.SessionTTL != time.Hour {
		t.Errorf("Defaults lost: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "wordfreq.yaml")
	if err := os.WriteFile(path, []byte("data_dir: /from/file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvDataDir, "/from/env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/from/env" {
		t.Errorf("Environment should override data_dir, got %q", cfg.DataDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoadInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "data_dir: [unclosed\n"},
		{"bad level", "log_level: loud\n"},
		{"bad timeout", "fetch_timeout: -1s\n"},
		{"empty remote", "remote: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "wordfreq.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
