package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHRONOFLOW_CONFIG_PATH", "")
	t.Setenv("CHRONOFLOW_DB_PATH", "")
	t.Setenv("CHRONOFLOW_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("CHRONOFLOW_INSIGHT_MODEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DB.Path == "" {
		t.Fatal("expected a default db path")
	}
	if cfg.Insight.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected default model %q", cfg.Insight.Model)
	}
	if cfg.Insight.APIKey != "" {
		t.Fatal("api key should default to empty")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CHRONOFLOW_CONFIG_PATH", "")
	t.Setenv("CHRONOFLOW_DB_PATH", "/tmp/custom.db")
	t.Setenv("CHRONOFLOW_API_KEY", "key-a")
	t.Setenv("GEMINI_API_KEY", "key-b")
	t.Setenv("CHRONOFLOW_INSIGHT_MODEL", "gemini-2.5-pro")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DB.Path != "/tmp/custom.db" {
		t.Fatalf("db path override ignored: %q", cfg.DB.Path)
	}
	if cfg.Insight.APIKey != "key-a" {
		t.Fatalf("CHRONOFLOW_API_KEY should win over GEMINI_API_KEY, got %q", cfg.Insight.APIKey)
	}
	if cfg.Insight.Model != "gemini-2.5-pro" {
		t.Fatalf("model override ignored: %q", cfg.Insight.Model)
	}
}

func TestLoadGeminiKeyFallback(t *testing.T) {
	t.Setenv("CHRONOFLOW_CONFIG_PATH", "")
	t.Setenv("CHRONOFLOW_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "key-b")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Insight.APIKey != "key-b" {
		t.Fatalf("expected GEMINI_API_KEY fallback, got %q", cfg.Insight.APIKey)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := []byte("db:\n  path: /data/flow.db\ninsight:\n  api_key: file-key\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CHRONOFLOW_CONFIG_PATH", path)
	t.Setenv("CHRONOFLOW_DB_PATH", "")
	t.Setenv("CHRONOFLOW_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DB.Path != "/data/flow.db" {
		t.Fatalf("file db path ignored: %q", cfg.DB.Path)
	}
	if cfg.Insight.APIKey != "file-key" {
		t.Fatalf("file api key ignored: %q", cfg.Insight.APIKey)
	}
	// File values keep the default model when unset.
	if cfg.Insight.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected model %q", cfg.Insight.Model)
	}
}

func TestLoadBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte(":\tnot yaml"), 0o644)
	t.Setenv("CHRONOFLOW_CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
