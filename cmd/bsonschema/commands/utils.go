/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the bsonschema commands. Provides configuration loading
and logging setup used across all command implementations.
*/

package commands

import (
	"fmt"
	"strings"

	"github.com/kleascm/bsonschema/pkg/logging"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BSONSCHEMA_LOG_LEVEL
const EnvPrefix = "BSONSCHEMA"

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	return nil
}

// LoggerConfigFromViper builds the logger configuration from the bound settings
func LoggerConfigFromViper() *logging.LoggerConfig {
	config := logging.DefaultLoggerConfig()
	if level := viper.GetString("log_level"); level != "" {
		config.Level = logging.LogLevel(strings.ToLower(level))
	}
	if format := viper.GetString("log_format"); format != "" {
		config.Format = logging.LogFormat(strings.ToLower(format))
	}
	config.OutputDir = viper.GetString("log_dir")
	if maxFiles := viper.GetInt("log_max_files"); maxFiles > 0 {
		config.MaxFiles = maxFiles
	}
	config.Colors = !viper.GetBool("no_color")
	return config
}

// SetupLogging configures the logging system
func SetupLogging() (*logging.Logger, error) {
	logger, err := logging.NewLogger(LoggerConfigFromViper())
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}
