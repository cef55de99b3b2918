// Package config loads application settings from an optional YAML file,
// an optional .env file and SHINDAN_* environment variables, in rising
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/shindan/internal/llm"
	"github.com/abhisek/shindan/internal/logging"
	"github.com/abhisek/shindan/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. SHINDAN_STORE_DRIVER.
const EnvPrefix = "SHINDAN"

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Config struct {
	Data   DataConfig     `mapstructure:"data"`
	Store  StoreConfig    `mapstructure:"store"`
	Server ServerConfig   `mapstructure:"server"`
	Log    logging.Config `mapstructure:"log"`
	LLM    llm.Config     `mapstructure:"llm"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// DataConfig points at external bank files. Empty paths use the
// embedded data.
type DataConfig struct {
	Questions  string `mapstructure:"questions"`
	Characters string `mapstructure:"characters"`
}

type StoreConfig struct {
	Driver string      `mapstructure:"driver"`
	Path   string      `mapstructure:"path"`
	Redis  RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Driver: DriverSQLite,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: store.DefaultRedisPrefix,
			},
		},
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: logging.DefaultConfig(),
		LLM: llm.DefaultConfig(),
	}
}

// Load reads configuration. When path is empty, config.yaml is looked up
// in $XDG_CONFIG_HOME/shindan and the working directory, and a missing
// file is not an error. A .env file in the working directory is loaded
// into the environment first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d Config) {
	for key, val := range map[string]any{
		"data.questions":  d.Data.Questions,
		"data.characters": d.Data.Characters,

		"store.driver":         d.Store.Driver,
		"store.path":           d.Store.Path,
		"store.redis.addr":     d.Store.Redis.Addr,
		"store.redis.password": d.Store.Redis.Password,
		"store.redis.db":       d.Store.Redis.DB,
		"store.redis.prefix":   d.Store.Redis.Prefix,

		"server.addr":             d.Server.Addr,
		"server.mode":             d.Server.Mode,
		"server.shutdown_timeout": d.Server.ShutdownTimeout,

		"log.level":        d.Log.Level,
		"log.file":         d.Log.File,
		"log.max_size_mb":  d.Log.MaxSizeMB,
		"log.max_backups":  d.Log.MaxBackups,
		"log.max_age_days": d.Log.MaxAgeDays,
		"log.compress":     d.Log.Compress,

		"llm.provider":            d.LLM.Provider,
		"llm.timeout":             d.LLM.Timeout,
		"llm.anthropic.api_key":   d.LLM.Anthropic.APIKey,
		"llm.anthropic.model":     d.LLM.Anthropic.Model,
		"llm.openai.api_key":      d.LLM.OpenAI.APIKey,
		"llm.openai.model":        d.LLM.OpenAI.Model,
		"llm.openai.base_url":     d.LLM.OpenAI.BaseURL,
		"llm.gemini.api_key":      d.LLM.Gemini.APIKey,
		"llm.gemini.model":        d.LLM.Gemini.Model,
		"llm.openrouter.api_key":  d.LLM.OpenRouter.APIKey,
		"llm.openrouter.model":    d.LLM.OpenRouter.Model,
		"llm.openrouter.base_url": d.LLM.OpenRouter.BaseURL,
		"llm.retry.max_attempts":  d.LLM.Retry.MaxAttempts,
		"llm.retry.initial_wait":  d.LLM.Retry.InitialWait,
		"llm.retry.max_wait":      d.LLM.Retry.MaxWait,
		"llm.retry.multiplier":    d.LLM.Retry.Multiplier,
	} {
		v.SetDefault(key, val)
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("store.driver must be %q or %q, got %q", DriverSQLite, DriverRedis, c.Store.Driver)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

// DBPath returns the SQLite path: store.path when set, otherwise the
// store package default.
func (c *Config) DBPath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, os.MkdirAll(filepath.Dir(c.Store.Path), 0o755)
	}
	return store.DefaultDBPath()
}

// configDir resolves $XDG_CONFIG_HOME/shindan, falling back to
// ~/.config/shindan.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "shindan"), nil
}
