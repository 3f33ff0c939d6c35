package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	libconfig "bankportal/frontend/libs/config"
)

const (
	// PathEnv names the config file when --config is not given.
	PathEnv = "BANKCTL_CONFIG"

	defaultBaseURL = "http://127.0.0.1:8000"
	defaultTimeout = 10 * time.Second
)

// Token backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config defines bankctl configuration.
type Config struct {
	API struct {
		BaseURL string `yaml:"baseUrl" env:"BANKCTL_API_URL"`
	} `yaml:"api"`
	HTTPClient struct {
		Timeout time.Duration `yaml:"timeout" env:"BANKCTL_HTTP_TIMEOUT"`
	} `yaml:"httpClient"`
	Token struct {
		Backend string `yaml:"backend" env:"BANKCTL_TOKEN_BACKEND"`
		File    string `yaml:"file" env:"BANKCTL_TOKEN_FILE"`
		Key     string `yaml:"key" env:"BANKCTL_TOKEN_KEY"`
	} `yaml:"token"`
	Redis struct {
		Addr     string `yaml:"addr" env:"BANKCTL_REDIS_ADDR"`
		Password string `yaml:"password" env:"BANKCTL_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"BANKCTL_REDIS_DB"`
	} `yaml:"redis"`
	Postgres struct {
		DSN string `yaml:"dsn" env:"BANKCTL_POSTGRES_DSN"`
	} `yaml:"postgres"`
	Log struct {
		Level    string `yaml:"level" env:"LOG_LEVEL"`
		Encoding string `yaml:"encoding" env:"BANKCTL_LOG_ENCODING"`
	} `yaml:"log"`
	UI struct {
		RegisterRedirectDelay time.Duration `yaml:"registerRedirectDelay" env:"BANKCTL_REGISTER_REDIRECT_DELAY"`
		LoginRedirectDelay    time.Duration `yaml:"loginRedirectDelay" env:"BANKCTL_LOGIN_REDIRECT_DELAY"`
		LogoutRedirectDelay   time.Duration `yaml:"logoutRedirectDelay" env:"BANKCTL_LOGOUT_REDIRECT_DELAY"`
	} `yaml:"ui"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.API.BaseURL = defaultBaseURL
	cfg.HTTPClient.Timeout = defaultTimeout
	cfg.Token.Backend = BackendFile
	cfg.Redis.Addr = "localhost:6379"
	cfg.Log.Level = "warn"
	cfg.Log.Encoding = "console"
	cfg.UI.RegisterRedirectDelay = 700 * time.Millisecond
	cfg.UI.LoginRedirectDelay = 500 * time.Millisecond
	cfg.UI.LogoutRedirectDelay = 400 * time.Millisecond
	return cfg
}

// Load reads configuration from path, falling back to BANKCTL_CONFIG and then to
// the default file. Only an explicitly named file has to exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	optional := false
	if strings.TrimSpace(path) == "" {
		path = os.Getenv(PathEnv)
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
		optional = true
	}

	if err := libconfig.LoadConfigFrom(path, optional, cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath is bankctl/config.yaml under the user config dir, or empty when
// that dir is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bankctl", "config.yaml")
}

func (c *Config) validate() error {
	switch c.TokenBackend() {
	case BackendFile, BackendMemory, BackendRedis:
	case BackendPostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return fmt.Errorf("config: postgres.dsn required for token backend %q", BackendPostgres)
		}
	default:
		return fmt.Errorf("config: unknown token backend %q", c.Token.Backend)
	}
	return nil
}

// BaseURL returns the API root without a trailing slash.
func (c *Config) BaseURL() string {
	url := strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if url == "" {
		return defaultBaseURL
	}
	return url
}

// HTTPTimeout returns http client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPClient.Timeout <= 0 {
		return defaultTimeout
	}
	return c.HTTPClient.Timeout
}

// TokenBackend returns the normalized backend name.
func (c *Config) TokenBackend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Token.Backend))
	if backend == "" {
		return BackendFile
	}
	return backend
}
