// Package config loads inkwell settings from a config file and INKWELL_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	LogLevel              = "log.level"
	LogFile               = "log.file"
	StorePath             = "store.path"
	EditorHistoryLimit    = "editor.history_limit"
	EditorExclusiveStyles = "editor.exclusive_styles"
	EditorShowStatus      = "editor.show_status"
	ExportFormat          = "export.format"
)

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store"`
	Editor EditorConfig `mapstructure:"editor"`
	Export ExportConfig `mapstructure:"export"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	// File receives log output. Empty disables logging in the editor.
	File string `mapstructure:"file"`
}

type StoreConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type EditorConfig struct {
	// HistoryLimit caps undo steps; 0 uses the state default, negative
	// disables history.
	HistoryLimit    int      `mapstructure:"history_limit" validate:"gte=-1"`
	ExclusiveStyles []string `mapstructure:"exclusive_styles" validate:"dive,required"`
	ShowStatus      bool     `mapstructure:"show_status"`
}

type ExportConfig struct {
	Format string `mapstructure:"format" validate:"oneof=md html raw"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads settings. An explicit path must exist; without one, inkwell.*
// is looked up in the working directory and the user config directory, and
// a missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("inkwell")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("inkwell")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "inkwell"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(LogLevel, "info")
	v.SetDefault(LogFile, "")
	v.SetDefault(StorePath, "inkwell.db")
	v.SetDefault(EditorHistoryLimit, 0)
	v.SetDefault(EditorExclusiveStyles, []string{"SUPERSCRIPT", "SUBSCRIPT"})
	v.SetDefault(EditorShowStatus, true)
	v.SetDefault(ExportFormat, "md")
}
