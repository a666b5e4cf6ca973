// Package config loads server settings from an optional config file and the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"resourceEditorAPI/internal/editor"
)

// EnvPrefix is prepended to every environment override, e.g. RESOURCE_EDITOR_PORT.
const EnvPrefix = "RESOURCE_EDITOR"

type Config struct {
	Port               int      `mapstructure:"port"`
	LogLevel           string   `mapstructure:"log_level"`
	LogFile            string   `mapstructure:"log_file"` // empty logs to stderr
	LogMaxSizeMB       int      `mapstructure:"log_max_size_mb"`
	LogMaxBackups      int      `mapstructure:"log_max_backups"`
	LogMaxAgeDays      int      `mapstructure:"log_max_age_days"`
	JWTSecret          string   `mapstructure:"jwt_secret"`
	TokenTTLHours      int      `mapstructure:"token_ttl_hours"`
	KubeconfigPath     string   `mapstructure:"kubeconfig_path"`
	ConsoleNamespace   string   `mapstructure:"console_namespace"` // holds operator credentials
	DefaultLocale      string   `mapstructure:"default_locale"`
	DuplicateKeyPolicy string   `mapstructure:"duplicate_key_policy"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
	SessionTTLMinutes  int      `mapstructure:"session_ttl_minutes"`
	ReadTimeoutSec     int      `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec    int      `mapstructure:"write_timeout_sec"`
	ShutdownTimeoutSec int      `mapstructure:"shutdown_timeout_sec"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 100)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 28)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl_hours", 24)
	v.SetDefault("kubeconfig_path", "")
	v.SetDefault("console_namespace", "resource-editor")
	v.SetDefault("default_locale", "en")
	v.SetDefault("duplicate_key_policy", string(editor.PolicyReject))
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("session_ttl_minutes", 60)
	v.SetDefault("read_timeout_sec", 10)
	v.SetDefault("write_timeout_sec", 10)
	v.SetDefault("shutdown_timeout_sec", 10)
}

// Load reads config.yaml from the usual locations (a missing file is fine), then applies
// environment overrides. configFile, when set, replaces the search.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/resource-editor/")
		v.AddConfigPath("$HOME/.resource-editor")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range", c.Port))
	}
	if c.ConsoleNamespace == "" {
		errs = append(errs, errors.New("console_namespace is required"))
	}
	if _, err := editor.ParseDuplicateKeyPolicy(c.DuplicateKeyPolicy); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) Policy() editor.DuplicateKeyPolicy {
	p, _ := editor.ParseDuplicateKeyPolicy(c.DuplicateKeyPolicy)
	return p
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}
