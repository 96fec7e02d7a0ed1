package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultCacheTTL is how long a scraped week stays fresh
	DefaultCacheTTL = 12 * time.Hour
	// DefaultListenAddr is used by the serve command
	DefaultListenAddr = ":8080"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	Username     string `json:"username,omitempty"`
	BaseURL      string `json:"base_url,omitempty"`
	AccentColor  string `json:"accent_color,omitempty"`
	CacheTTL     string `json:"cache_ttl,omitempty"`     // Go duration, e.g. "12h"
	CacheBackend string `json:"cache_backend,omitempty"` // "file" (default), "redis" or "none"
	RedisAddr    string `json:"redis_addr,omitempty"`
	ListenAddr   string `json:"listen_addr,omitempty"`

	// Password only ever comes from the environment and is never written to disk
	Password string `json:"-"`

	env envOverrides
}

// override remembers the file value a variable replaced during Load.
type override struct {
	set  bool
	disk string
	env  string
}

// restore returns the file value when v still holds the environment value.
func (o override) restore(v string) string {
	if o.set && v == o.env {
		return o.disk
	}
	return v
}

type envOverrides struct {
	username     override
	baseURL      override
	redisAddr    override
	cacheBackend override
}

// getConfigPath returns the absolute path to ~/.edtctl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".edtctl.json"), nil
}

// Load reads the application configuration from disk and applies environment overrides.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg AppConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Values injected by EDT_* variables stay in the environment
	out := *cfg
	out.Username = cfg.env.username.restore(cfg.Username)
	out.BaseURL = cfg.env.baseURL.restore(cfg.BaseURL)
	out.RedisAddr = cfg.env.redisAddr.restore(cfg.RedisAddr)
	out.CacheBackend = cfg.env.cacheBackend.restore(cfg.CacheBackend)

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("EDT_USERNAME"); v != "" {
		cfg.env.username = override{set: true, disk: cfg.Username, env: v}
		cfg.Username = v
	}
	if v := os.Getenv("EDT_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("EDT_BASE_URL"); v != "" {
		cfg.env.baseURL = override{set: true, disk: cfg.BaseURL, env: v}
		cfg.BaseURL = v
	}
	if v := os.Getenv("EDT_REDIS_ADDR"); v != "" {
		cfg.env.redisAddr = override{set: true, disk: cfg.RedisAddr, env: v}
		cfg.RedisAddr = v
		if cfg.CacheBackend == "" {
			cfg.env.cacheBackend = override{set: true, env: "redis"}
			cfg.CacheBackend = "redis"
		}
	}
}

// HasCredentials reports whether both username and password are known.
func (c *AppConfig) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// CacheDuration parses CacheTTL, falling back to DefaultCacheTTL when unset or invalid.
func (c *AppConfig) CacheDuration() time.Duration {
	if c.CacheTTL == "" {
		return DefaultCacheTTL
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d < 0 {
		return DefaultCacheTTL
	}
	return d
}

// Listen returns the address for the HTTP endpoint.
func (c *AppConfig) Listen() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}
