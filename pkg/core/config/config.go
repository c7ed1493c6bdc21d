package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	mdwerrors "github.com/msto63/throwables/pkg/core/errors"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "THROWABLES_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Taxonomy TaxonomyConfig `toml:"taxonomy"`
	GRPC     GRPCConfig     `toml:"grpc"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// TaxonomyConfig holds the exception registry settings
type TaxonomyConfig struct {
	// DeclarationsDir is scanned for *.yaml / *.yml declaration files.
	// Empty disables file declarations.
	DeclarationsDir string `toml:"declarations_dir"`
	Watch           bool   `toml:"watch"`

	// Debounce delays reloading after a burst of file events
	Debounce Duration `toml:"debounce"`

	// JournalPath is the SQLite journal of runtime declarations.
	// Empty disables the journal.
	JournalPath string `toml:"journal_path"`

	// RootBranch is the parent for declarations that name none
	RootBranch string `toml:"root_branch"`

	Declare []DeclarationConfig `toml:"declare"`
}

// DeclarationConfig is an inline [[taxonomy.declare]] entry
type DeclarationConfig struct {
	ID     string `toml:"id"`
	Parent string `toml:"parent"`
}

// GRPCConfig holds settings for the serve command's gRPC health server
type GRPCConfig struct {
	Listen          string   `toml:"listen"`
	RequestIDHeader string   `toml:"request_id_header"`
	HealthInterval  Duration `toml:"health_interval"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerrors.Newf("config file not found: %s", path).
			WithCode(mdwerrors.CodeConfigError).
			WithDetail("path", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, mdwerrors.Wrap(err, "failed to parse config").
			WithCode(mdwerrors.CodeConfigError).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Discover returns the config path from THROWABLES_CONFIG or the first
// existing default location
func Discover() (string, bool) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, true
	}

	defaultPaths := []string{
		"./configs/throwables.toml",
		"./throwables.toml",
		filepath.Join(os.Getenv("HOME"), ".config/throwables/config.toml"),
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// LoadFromEnv loads configuration from THROWABLES_CONFIG or a default location
func LoadFromEnv() (*Config, error) {
	path, ok := Discover()
	if !ok {
		return nil, mdwerrors.New("no config file found, set THROWABLES_CONFIG or create configs/throwables.toml").
			WithCode(mdwerrors.CodeConfigError)
	}
	return Load(path)
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	for i, d := range c.Taxonomy.Declare {
		if strings.TrimSpace(d.ID) == "" {
			return mdwerrors.Newf("taxonomy.declare[%d]: id cannot be empty", i).
				WithCode(mdwerrors.CodeConfigError)
		}
	}

	switch strings.ToLower(c.General.LogFormat) {
	case "json", "console", "text":
	default:
		return mdwerrors.Newf("general.log_format: unsupported format %q", c.General.LogFormat).
			WithCode(mdwerrors.CodeConfigError)
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "throwables"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Taxonomy
	if c.Taxonomy.Debounce.Duration == 0 {
		c.Taxonomy.Debounce.Duration = 250 * time.Millisecond
	}
	if c.Taxonomy.RootBranch == "" {
		c.Taxonomy.RootBranch = "user_exception"
	}

	// gRPC
	if c.GRPC.Listen == "" {
		c.GRPC.Listen = "127.0.0.1:50551"
	}
	if c.GRPC.RequestIDHeader == "" {
		c.GRPC.RequestIDHeader = "x-request-id"
	}
	if c.GRPC.HealthInterval.Duration == 0 {
		c.GRPC.HealthInterval.Duration = 10 * time.Second
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Taxonomy.DeclarationsDir = os.ExpandEnv(c.Taxonomy.DeclarationsDir)
	c.Taxonomy.JournalPath = os.ExpandEnv(c.Taxonomy.JournalPath)
}
