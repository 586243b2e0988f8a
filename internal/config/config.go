package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tripscan/internal/domain"
	apperrors "tripscan/internal/errors"
)

// Config holds traversal and reporting settings. Precedence is flags over
// config file over environment over defaults; the CLI applies flag
// overrides after Load.
type Config struct {
	ExpectedDirs []string `yaml:"expected_dirs"`
	Title        string   `yaml:"title"`
	Strict       bool     `yaml:"strict"`
	NoSiteLevel  bool     `yaml:"no_site_level"`
}

// Default returns the configuration used when no file is given, with
// environment fallbacks applied.
func Default() Config {
	var cfg Config
	cfg.applyEnv()
	if len(cfg.ExpectedDirs) == 0 {
		cfg.ExpectedDirs = append([]string(nil), domain.DefaultExpectedDirs...)
	}
	return cfg
}

// Load reads a YAML configuration file and applies environment fallbacks
// for fields the file leaves unset.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(os.ExpandEnv(path))
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.InvalidConfig, "read", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, apperrors.Wrap(apperrors.InvalidConfig, "parse", path, err)
	}
	cfg.applyEnv()
	if len(cfg.ExpectedDirs) == 0 {
		cfg.ExpectedDirs = append([]string(nil), domain.DefaultExpectedDirs...)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if len(c.ExpectedDirs) == 0 {
		if raw := envOrEmpty("TRIPSCAN_EXPECTED_DIRS"); raw != "" {
			for _, name := range strings.Split(raw, ",") {
				if trimmed := strings.TrimSpace(name); trimmed != "" {
					c.ExpectedDirs = append(c.ExpectedDirs, trimmed)
				}
			}
		}
	}
	if c.Title == "" {
		c.Title = envOrEmpty("TRIPSCAN_TITLE")
	}
	if !c.Strict {
		c.Strict = envTruthy("TRIPSCAN_STRICT")
	}
}

func (c Config) validate() error {
	for _, name := range c.ExpectedDirs {
		if strings.ContainsAny(name, "/\\") {
			return apperrors.New(apperrors.InvalidConfig, "validate", "",
				fmt.Sprintf("expected directory name %q must not contain path separators", name))
		}
	}
	return nil
}

// Grouping returns the traversal grouping mode selected by the config.
func (c Config) Grouping() domain.Grouping {
	if c.NoSiteLevel {
		return domain.Flat
	}
	return domain.WithSites
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
