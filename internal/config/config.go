// Package config loads settings for the portfolio builder from an optional
// YAML file overlaid with FOLIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrMissingGitHubUser = errors.New("github.user is required")
	ErrMissingORCID      = errors.New("orcid.id is required")
	ErrInvalidORCID      = errors.New("orcid.id must look like 0000-0000-0000-0000")
	ErrInvalidPort       = errors.New("server.port must be between 1 and 65535")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
)

// orcidPattern matches the 16-digit identifier with its dash grouping.
// The final character may be an X checksum.
var orcidPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

type Config struct {
	Profile ProfileConfig `yaml:"profile"`
	GitHub  GitHubConfig  `yaml:"github"`
	ORCID   ORCIDConfig   `yaml:"orcid"`
	Output  OutputConfig  `yaml:"output"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ProfileConfig is the static header text on the generated page.
type ProfileConfig struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
}

// GitHubConfig identifies the account whose repositories are listed.
type GitHubConfig struct {
	User string `yaml:"user"`
}

// ORCIDConfig identifies the researcher whose works are listed.
type ORCIDConfig struct {
	ID string `yaml:"id"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML file at path (skipped if it does not exist), then
// overlays FOLIO_* environment variables. A .env file is honored first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Output:  OutputConfig{Dir: "site"},
		Server:  ServerConfig{Port: 8080},
		Logging: LoggingConfig{Level: "info"},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FOLIO_GITHUB_USER"); v != "" {
		cfg.GitHub.User = v
	}
	if v := os.Getenv("FOLIO_ORCID_ID"); v != "" {
		cfg.ORCID.ID = v
	}
	if v := os.Getenv("FOLIO_PROFILE_NAME"); v != "" {
		cfg.Profile.Name = v
	}
	if v := os.Getenv("FOLIO_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("FOLIO_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("FOLIO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks required identifiers and value ranges.
func (c *Config) Validate() error {
	if c.GitHub.User == "" {
		return ErrMissingGitHubUser
	}
	if c.ORCID.ID == "" {
		return ErrMissingORCID
	}
	if !orcidPattern.MatchString(c.ORCID.ID) {
		return fmt.Errorf("%w: got %q", ErrInvalidORCID, c.ORCID.ID)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	return nil
}
