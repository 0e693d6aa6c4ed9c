package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/inferloop/tabsynth/pkg/models"
)

// CLIConfig holds persisted defaults for the command-line tool. Every value
// can still be overridden per invocation with flags.
type CLIConfig struct {
	DefaultOutput string         `mapstructure:"default_output"`
	DefaultFormat string         `mapstructure:"default_format"`
	DefaultRows   int            `mapstructure:"default_rows"`
	Generation    GenDefaults    `mapstructure:"generation"`
	Postgres      PostgresConfig `mapstructure:"postgres"`
}

type GenDefaults struct {
	PrivacyLevel        string  `mapstructure:"privacy_level"`
	MissingPercentage   float64 `mapstructure:"missing_percentage"`
	OutlierPercentage   float64 `mapstructure:"outlier_percentage"`
	DuplicatePercentage float64 `mapstructure:"duplicate_percentage"`
}

type PostgresConfig struct {
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

// LoadConfig reads the CLI config file, falling back to defaults when the
// file is absent.
func LoadConfig(cfgFile string) (*CLIConfig, error) {
	config := &CLIConfig{
		DefaultOutput: "-",
		DefaultFormat: "csv",
		DefaultRows:   100,
		Generation: GenDefaults{
			PrivacyLevel: string(models.PrivacyLevelLow),
		},
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		viper.SetConfigFile(filepath.Join(home, ".tabsynth.yaml"))
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			return config, nil
		}
		if _, ok := err.(*os.PathError); ok {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}
