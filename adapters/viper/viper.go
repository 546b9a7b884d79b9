// Package viper wraps spf13/viper for loading the application's YAML
// configuration with environment variable overrides.
package viper

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix namespaces the environment overrides, e.g.
// EXPIRYWATCH_LOG_LEVEL=debug.
const envPrefix = "EXPIRYWATCH"

// Viper struct holds the configuration for the Viper client
type Viper struct {
	configFile string
}

// NewViper creates the viper wrapper for a concrete configuration file.
func NewViper(configFile string) *Viper {
	return &Viper{configFile: configFile}
}

// InitialiseViper initialises the viper client
func (v *Viper) InitialiseViper() error {
	viper.SetConfigFile(v.configFile)

	// Enable Viper to read environment variables
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Attempt to read configuration file
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading configuration file: %w", err)
	}

	return nil
}

// UnmarshalConfig unmarshals the entire Viper configuration into the provided
// struct reference. It helps you avoid calling viper.GetString / viper.GetInt
// repeatedly by binding configuration values directly into a typed struct.
func UnmarshalConfig[T any](target *T) error {
	if target == nil {
		return fmt.Errorf("target struct cannot be nil")
	}

	if err := viper.Unmarshal(target); err != nil {
		return fmt.Errorf("failed to unmarshal viper config: %w", err)
	}

	return nil
}
