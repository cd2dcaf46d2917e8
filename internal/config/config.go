// Package config manages application configuration.
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/Mukulworld25/sagedo-website/internal/logging"
)

// Environment variables that override the config file.
const (
	EnvInput       = "LOGOMASK_INPUT"
	EnvOutput      = "LOGOMASK_OUTPUT"
	EnvShrink      = "LOGOMASK_SHRINK"
	EnvVerifyInput = "LOGOMASK_VERIFY_INPUT"
	EnvLogLevel    = "LOGOMASK_LOG_LEVEL"
	EnvLogFormat   = "LOGOMASK_LOG_FORMAT"
	EnvVerifyAfter = "LOGOMASK_VERIFY"
)

// Config represents the application configuration.
type Config struct {
	Mask   MaskConfig   `yaml:"mask"`
	Verify VerifyConfig `yaml:"verify"`
	Log    LogConfig    `yaml:"log"`
}

// MaskConfig contains defaults for the mask command.
type MaskConfig struct {
	Input  string  `yaml:"input"`
	Output string  `yaml:"output"`
	Shrink float64 `yaml:"shrink"`
}

// VerifyConfig contains defaults for the verify command.
type VerifyConfig struct {
	Input string `yaml:"input"`
}

// LogConfig contains logging options.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Mask: MaskConfig{
			Input:  "client/public/sagedo_logo_black.png",
			Output: "client/public/sagedo_logo_final_circle.png",
			Shrink: 0.98,
		},
		Verify: VerifyConfig{
			Input: "client/public/sagedo_logo_final_circle.png",
		},
		Log: LogConfig{
			Level:  logging.LevelWarn,
			Format: logging.FormatText,
		},
	}
}

// ApplyEnv overrides fields from LOGOMASK_* environment variables.
func (c *Config) ApplyEnv() error {
	c.Mask.Input = GetEnvOrDefault(EnvInput, c.Mask.Input)
	c.Mask.Output = GetEnvOrDefault(EnvOutput, c.Mask.Output)
	c.Verify.Input = GetEnvOrDefault(EnvVerifyInput, c.Verify.Input)
	c.Log.Level = GetEnvOrDefault(EnvLogLevel, c.Log.Level)
	c.Log.Format = GetEnvOrDefault(EnvLogFormat, c.Log.Format)

	if v := GetEnvOrDefault(EnvShrink, ""); v != "" {
		shrink, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvShrink, v, err)
		}
		c.Mask.Shrink = shrink
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Mask.Input == "" {
		result = multierror.Append(result, fmt.Errorf("mask.input must not be empty"))
	}
	if c.Mask.Output == "" {
		result = multierror.Append(result, fmt.Errorf("mask.output must not be empty"))
	}
	if err := ValidateShrink(c.Mask.Shrink); err != nil {
		result = multierror.Append(result, fmt.Errorf("mask.shrink: %w", err))
	}
	if c.Verify.Input == "" {
		result = multierror.Append(result, fmt.Errorf("verify.input must not be empty"))
	}
	if !logging.ValidLevel(c.Log.Level) {
		result = multierror.Append(result, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	if !logging.ValidFormat(c.Log.Format) {
		result = multierror.Append(result, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return result.ErrorOrNil()
}

// ValidateShrink checks that a shrink factor lies in (0, 1].
func ValidateShrink(shrink float64) error {
	if math.IsNaN(shrink) || shrink <= 0 || shrink > 1 {
		return fmt.Errorf("must be in (0, 1], got %v", shrink)
	}
	return nil
}
