// Package config loads the jza configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Store types.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the full configuration of the CLI and server.
type Config struct {
	// Model is the name of the model loaded from and saved to the store.
	Model      string           `mapstructure:"model"`
	Log        LogConfig        `mapstructure:"log"`
	Store      StoreConfig      `mapstructure:"store"`
	Generation GenerationConfig `mapstructure:"generation"`
	Server     ServerConfig     `mapstructure:"server"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StoreConfig struct {
	Type   string      `mapstructure:"type"`
	Dir    string      `mapstructure:"dir"`
	Format string      `mapstructure:"format"`
	Redis  RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type GenerationConfig struct {
	MaxRetries   int    `mapstructure:"max_retries"`
	MaxSteps     int    `mapstructure:"max_steps"`
	AllowRepeats bool   `mapstructure:"allow_repeats"`
	Seed         uint64 `mapstructure:"seed"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Model: "default",
		Log:   LogConfig{Level: "info", Format: "text"},
		Store: StoreConfig{
			Type:   StoreFile,
			Dir:    filepath.Join(".jza", "models"),
			Format: "json",
			Redis:  RedisConfig{Addr: "localhost:6379", Prefix: "jza:model:"},
		},
		Generation: GenerationConfig{MaxRetries: 64, MaxSteps: 512},
		Server:     ServerConfig{Addr: ":8080"},
	}
}

// Load reads path (YAML, or JSON when the extension is .json) over the
// defaults. An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode overlays raw onto cfg. Numbers may be given as strings and durations
// as "30s" style strings.
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks enumerated fields and limits.
func (c Config) Validate() error {
	switch c.Store.Type {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("invalid config: unknown store type %q", c.Store.Type)
	}
	switch c.Store.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid config: unknown store format %q", c.Store.Format)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid config: unknown log format %q", c.Log.Format)
	}
	if c.Generation.MaxRetries < 1 || c.Generation.MaxSteps < 1 {
		return fmt.Errorf("invalid config: generation limits must be positive")
	}
	if c.Model == "" {
		return fmt.Errorf("invalid config: model name cannot be empty")
	}
	return nil
}
