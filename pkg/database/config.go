// Package database provides the MySQL store client used to list rating
// types and execute composite-rating queries.
package database

import (
	"errors"
	"time"
)

// Static errors for configuration validation
var (
	ErrDSNRequired = errors.New("DSN is required")
)

// Config contains MySQL connection settings
type Config struct {
	DSN             string        `yaml:"dsn" validate:"required"`
	QueryTimeout    time.Duration `yaml:"queryTimeout"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	Debug           bool          `yaml:"debug"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.DSN == "" {
		return ErrDSNRequired
	}

	return nil
}

// SetDefaults sets default values for the configuration
func (c *Config) SetDefaults() {
	if c.QueryTimeout == 0 {
		c.QueryTimeout = 30 * time.Second
	}

	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 3 * time.Minute
	}

	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 4
	}
}
