package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func setupHome(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	// Override the home directory environment variable for testing
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	t.Setenv("EDT_USERNAME", "")
	t.Setenv("EDT_PASSWORD", "")
	t.Setenv("EDT_BASE_URL", "")
	t.Setenv("EDT_REDIS_ADDR", "")
	return tempDir
}

func TestConfigLoadSave(t *testing.T) {
	tempDir := setupHome(t)

	// 1. Test Load with no existing file
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected empty config to be returned, got nil")
	}

	// 2. Modify and Save the config
	cfg.Username = "hpotter"
	cfg.AccentColor = "205"
	cfg.CacheTTL = "2h"
	cfg.CacheBackend = "file"

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	configPath := filepath.Join(tempDir, ".edtctl.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	// 3. Test Load with existing file
	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}

	if !reflect.DeepEqual(cfg, loadedCfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedCfg, cfg)
	}
}

func TestConfigPasswordNeverSaved(t *testing.T) {
	tempDir := setupHome(t)

	cfg := &AppConfig{Username: "hpotter", Password: "alohomora"}
	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, ".edtctl.json"))
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if strings.Contains(string(data), "alohomora") {
		t.Errorf("password must not be persisted, got: %s", data)
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	setupHome(t)

	if err := Save(&AppConfig{Username: "from-file"}); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	t.Setenv("EDT_USERNAME", "from-env")
	t.Setenv("EDT_PASSWORD", "secret")
	t.Setenv("EDT_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Username != "from-env" {
		t.Errorf("expected env username to win, got %s", cfg.Username)
	}
	if !cfg.HasCredentials() {
		t.Errorf("expected credentials to be complete")
	}
	if cfg.CacheBackend != "redis" || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected redis backend from env, got %q at %q", cfg.CacheBackend, cfg.RedisAddr)
	}
}

func TestConfigSaveKeepsEnvOutOfFile(t *testing.T) {
	tempDir := setupHome(t)

	t.Setenv("EDT_REDIS_ADDR", "localhost:6379")
	t.Setenv("EDT_BASE_URL", "http://staging")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.Username = "alice"
	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, ".edtctl.json"))
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "alice") {
		t.Errorf("expected username to be saved, got: %s", content)
	}
	for _, leaked := range []string{"http://staging", "localhost:6379", `"redis"`} {
		if strings.Contains(content, leaked) {
			t.Errorf("environment value %s must not be persisted, got: %s", leaked, content)
		}
	}

	// Without the variables the file alone decides
	t.Setenv("EDT_REDIS_ADDR", "")
	t.Setenv("EDT_BASE_URL", "")
	reloaded, err := Load()
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if reloaded.CacheBackend != "" || reloaded.RedisAddr != "" || reloaded.BaseURL != "" {
		t.Errorf("expected no backend or base url on disk, got %+v", reloaded)
	}
}

func TestConfigSaveRestoresOverriddenFileValue(t *testing.T) {
	tempDir := setupHome(t)

	if err := Save(&AppConfig{Username: "from-file", BaseURL: "https://edt.example", AccentColor: "63"}); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	t.Setenv("EDT_USERNAME", "from-env")
	t.Setenv("EDT_BASE_URL", "http://staging")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.AccentColor = "205"
	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, ".edtctl.json"))
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	content := string(data)
	for _, want := range []string{"from-file", "https://edt.example", "205"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %s on disk, got: %s", want, content)
		}
	}
	if strings.Contains(content, "from-env") || strings.Contains(content, "staging") {
		t.Errorf("override leaked into config file: %s", content)
	}

	// An explicit edit of an overridden field is still saved
	cfg.Username = "hgranger"
	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(tempDir, ".edtctl.json"))
	if !strings.Contains(string(data), "hgranger") {
		t.Errorf("expected edited username to be saved, got: %s", data)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := setupHome(t)

	configPath := filepath.Join(tempDir, ".edtctl.json")
	if err := os.WriteFile(configPath, []byte("invalid json { content"), 0644); err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}

func TestCacheDuration(t *testing.T) {
	tests := map[string]time.Duration{
		"":      DefaultCacheTTL,
		"30m":   30 * time.Minute,
		"bogus": DefaultCacheTTL,
		"-1h":   DefaultCacheTTL,
	}
	for in, want := range tests {
		cfg := &AppConfig{CacheTTL: in}
		if got := cfg.CacheDuration(); got != want {
			t.Errorf("CacheDuration(%q) = %v, want %v", in, got, want)
		}
	}
}
