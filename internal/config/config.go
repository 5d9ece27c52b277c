// Package config handles the entityforms.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-entityforms/internal/logging"
	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the config file looked up in the working directory.
const FileName = "entityforms.yaml"

// Environment overrides applied by ApplyEnv.
const (
	EnvAddr       = "ENTITYFORMS_ADDR"
	EnvLogLevel   = "ENTITYFORMS_LOG_LEVEL"
	EnvParserMode = "ENTITYFORMS_PARSER_MODE"
)

// Config represents the entityforms.yaml file.
type Config struct {
	Version int          `yaml:"version"`
	Parser  ParserConfig `yaml:"parser"`
	Output  OutputConfig `yaml:"output"`
	Server  ServerConfig `yaml:"server"`
	Log     LogConfig    `yaml:"log"`
}

type ParserConfig struct {
	Mode string `yaml:"mode"`
	// Sanitize strips markup from comment descriptions.
	Sanitize bool `yaml:"sanitize"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Parser:  ParserConfig{Mode: string(tsiface.ModeBasic)},
		Output:  OutputConfig{Format: "json"},
		Server:  ServerConfig{Addr: ":8080"},
		Log:     LogConfig{Level: "info", Format: logging.FormatText},
	}
}

// Load reads a Config from a file path. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// ApplyEnv overrides settings from the environment. getenv is injected so
// callers and tests control the lookup.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvParserMode)); v != "" {
		c.Parser.Mode = v
	}
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if _, err := tsiface.ParseMode(c.Parser.Mode); err != nil {
		return fmt.Errorf("config: parser.mode: %w", err)
	}
	if strings.TrimSpace(c.Output.Format) == "" {
		return errors.New("config: output.format is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("config: log.format: unknown format %q", c.Log.Format)
	}
	return nil
}
