// Package config загружает настройки клиента и сервера из флагов,
// переменных окружения и необязательного YAML файла.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iudanet/quotesync/internal/merge"
)

const (
	// EnvPrefix префикс переменных окружения клиента (QUOTESYNC_SERVER_URL, ...)
	EnvPrefix = "QUOTESYNC"
	// ServerEnvPrefix префикс переменных окружения сервера
	ServerEnvPrefix = "QUOTESYNC_SERVER"

	DefaultSyncInterval = 10 * time.Second
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultTokenTTL     = 24 * time.Hour
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// LogConfig настройки логирования
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// RetryConfig настройки повторов HTTP запросов
type RetryConfig struct {
	MaxTries    uint          `mapstructure:"max_tries"`
	MaxInterval time.Duration `mapstructure:"max_interval"`
}

// ClientConfig настройки клиента quotesync
type ClientConfig struct {
	Log          LogConfig     `mapstructure:"log"`
	ServerURL    string        `mapstructure:"server_url"`
	DBPath       string        `mapstructure:"db_path"`
	Token        string        `mapstructure:"token"`
	Policy       string        `mapstructure:"policy"`
	MetricsAddr  string        `mapstructure:"metrics_addr"`
	Retry        RetryConfig   `mapstructure:"retry"`
	SyncInterval time.Duration `mapstructure:"sync_interval"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`
}

// ServerConfig настройки сервера quotesync-server
type ServerConfig struct {
	Log       LogConfig     `mapstructure:"log"`
	Address   string        `mapstructure:"address"`
	DBPath    string        `mapstructure:"db_path"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// NewClientViper returns a viper instance with client defaults and the
// QUOTESYNC_ environment prefix applied.
func NewClientViper() *viper.Viper {
	v := newViper(EnvPrefix)
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("db_path", "quotesync.db")
	v.SetDefault("token", "")
	v.SetDefault("policy", merge.PolicyAutoRemoteWins.String())
	v.SetDefault("sync_interval", DefaultSyncInterval)
	v.SetDefault("http_timeout", DefaultHTTPTimeout)
	v.SetDefault("retry.max_tries", 3)
	v.SetDefault("retry.max_interval", 2*time.Second)
	v.SetDefault("metrics_addr", "")
	setLogDefaults(v)
	return v
}

// NewServerViper returns a viper instance with server defaults and the
// QUOTESYNC_SERVER_ environment prefix applied.
func NewServerViper() *viper.Viper {
	v := newViper(ServerEnvPrefix)
	v.SetDefault("address", ":8080")
	v.SetDefault("db_path", "quotesync-server.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", DefaultTokenTTL)
	setLogDefaults(v)
	return v
}

// LoadClient читает конфигурацию клиента. Пустой configFile означает
// только значения по умолчанию, окружение и флаги.
func LoadClient(v *viper.Viper, configFile string) (*ClientConfig, error) {
	if err := readFile(v, configFile); err != nil {
		return nil, err
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode client config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadServer читает конфигурацию сервера
func LoadServer(v *viper.Viper, configFile string) (*ServerConfig, error) {
	if err := readFile(v, configFile); err != nil {
		return nil, err
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode server config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the client configuration
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: server_url %q must be an absolute URL", ErrInvalidConfig, c.ServerURL)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	if _, err := merge.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.SyncInterval <= 0 {
		return fmt.Errorf("%w: sync_interval must be positive, got %s", ErrInvalidConfig, c.SyncInterval)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http_timeout must be positive, got %s", ErrInvalidConfig, c.HTTPTimeout)
	}
	if c.Retry.MaxTries == 0 {
		return fmt.Errorf("%w: retry.max_tries must be at least 1", ErrInvalidConfig)
	}
	return c.Log.Validate()
}

// MergePolicy returns the parsed default policy
func (c *ClientConfig) MergePolicy() merge.Policy {
	p, _ := merge.ParsePolicy(c.Policy)
	return p
}

// Validate checks the server configuration
func (c *ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token_ttl must be positive, got %s", ErrInvalidConfig, c.TokenTTL)
	}
	return c.Log.Validate()
}

// Validate checks the logging configuration
func (c LogConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Format)
	}
	return nil
}

func newViper(prefix string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setLogDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

func readFile(v *viper.Viper, configFile string) error {
	if configFile == "" {
		return nil
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}
	return nil
}
