package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "SINPATH_"

// Config holds the run settings shared by the CLI and the viewer
type Config struct {
	Seed             string `yaml:"seed"`              // Empty picks a random seed
	Preset           string `yaml:"preset"`            // balanced, chaotic or safe
	IncludeFinale    bool   `yaml:"include_finale"`    // Append the finale layer
	StrictValidation bool   `yaml:"strict_validation"` // Fail generation on rule violations
	CatalogPath      string `yaml:"catalog_path"`      // Empty uses the built-in catalog
	SaveDir          string `yaml:"save_dir"`
	LogLevel         string `yaml:"log_level"`
}

// Default returns the settings used when no file or override is given
func Default() Config {
	return Config{
		Preset:        "balanced",
		IncludeFinale: true,
		SaveDir:       "saves",
		LogLevel:      "info",
	}
}

// Load reads path over the defaults, then applies SINPATH_* environment
// overrides. An empty path skips the file; a missing file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"SEED":         &c.Seed,
		"PRESET":       &c.Preset,
		"CATALOG_PATH": &c.CatalogPath,
		"SAVE_DIR":     &c.SaveDir,
		"LOG_LEVEL":    &c.LogLevel,
	}
	for name, field := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*field = v
		}
	}

	bools := map[string]*bool{
		"INCLUDE_FINALE":    &c.IncludeFinale,
		"STRICT_VALIDATION": &c.StrictValidation,
	}
	for name, field := range bools {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*field = b
	}
	return nil
}

// Validate checks the fields that have a closed set of values
func (c Config) Validate() error {
	switch strings.ToLower(c.Preset) {
	case "balanced", "chaotic", "safe":
	default:
		return fmt.Errorf("config: unknown preset %q", c.Preset)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.SaveDir == "" {
		return errors.New("config: save_dir is empty")
	}
	return nil
}

// Level parses LogLevel
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("config: log_level: %w", err)
	}
	return level, nil
}
