package cmd

import (
	"os"

	"github.com/creasty/defaults"
	"github.com/plazar/ratings/pkg/composite"
	"github.com/plazar/ratings/pkg/database"
	"github.com/plazar/ratings/pkg/rater"
	"gopkg.in/yaml.v3"
)

// CLIConfig represents the configuration for CLI commands. Survey-specific
// schema constants and store credentials live here rather than in any
// package-level state.
type CLIConfig struct {
	// Logging level
	Logging string `yaml:"logging" default:"info"`

	// Database holds the candidate-database connection settings
	Database database.Config `yaml:"database"`

	// Schema holds the relational layout the compiler targets
	Schema composite.Schema `yaml:"schema"`

	// Archive is the remote archive database used by the upload rater
	// (optional; falls back to Database when its DSN is empty)
	Archive database.Config `yaml:"archive"`

	// Upload configures the archive plot-loader side effect
	Upload rater.UploadConfig `yaml:"upload"`

	// Transfer configures the mirror-host rsync side effect
	Transfer rater.TransferConfig `yaml:"transfer"`
}

// Validate validates the CLI configuration
func (c *CLIConfig) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}

	c.Database.SetDefaults()
	c.Schema.SetDefaults()
	c.Upload.SetDefaults()
	c.Transfer.SetDefaults()

	if c.Archive.DSN == "" {
		c.Archive = c.Database
	}

	c.Archive.SetDefaults()

	return c.Schema.Validate()
}

// LoadCLIConfig loads CLI configuration from a YAML file
func LoadCLIConfig(path string) (*CLIConfig, error) {
	if path == "" {
		path = "config.yaml"
	}

	config := &CLIConfig{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	// Try to read the file, but allow it to not exist
	yamlFile, err := os.ReadFile(path) //nolint:gosec // User-provided config file path
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, use defaults or environment variables
			return config, nil
		}

		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, err
	}

	return config, nil
}
