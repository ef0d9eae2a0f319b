package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
	"go.uber.org/zap/zapcore"

	"github.com/fourbecs/becs/internal/core/ecs"
)

type Config struct {
	ECS       ECSConfig       `toml:"ecs"`
	Logging   LoggingConfig   `toml:"logging"`
	Templates TemplatesConfig `toml:"templates"`
	Scripting ScriptingConfig `toml:"scripting"`
}

type ECSConfig struct {
	// IndexBits trades component type capacity against mask words per entity.
	// 2..5 covers most programs.
	IndexBits int `toml:"index_bits"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type TemplatesConfig struct {
	Path string `toml:"path"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
	// Predicates are global Lua functions evaluated against one entity of
	// every template by becslayout.
	Predicates []string `toml:"predicates"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.Layout(); err != nil {
		return eris.Wrap(err, "ecs.index_bits")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return eris.Wrap(err, "logging.level")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return eris.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}

// Layout returns the identifier layout for the configured index bits.
func (c *Config) Layout() (ecs.Layout, error) {
	return ecs.NewLayout(c.ECS.IndexBits)
}

// Default returns the configuration used when no file is given.
func Default() *Config { return defaults() }

func defaults() *Config {
	return &Config{
		ECS: ECSConfig{
			IndexBits: ecs.DefaultIndexBits,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Templates: TemplatesConfig{
			Path: "data/templates.yaml",
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
	}
}
