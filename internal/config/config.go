// Package config loads viewer settings from codeview.yaml, CODEVIEW_*
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	FontPath        string  `mapstructure:"font_path" yaml:"font_path"`
	FontSize        float64 `mapstructure:"font_size" yaml:"font_size"`
	LineSpacing     int     `mapstructure:"line_spacing" yaml:"line_spacing"`
	TabWidth        int     `mapstructure:"tab_width" yaml:"tab_width"`
	Theme           string  `mapstructure:"theme" yaml:"theme"`
	Padding         int     `mapstructure:"padding" yaml:"padding"`
	MaxTextureDim   int     `mapstructure:"max_texture_dim" yaml:"max_texture_dim"`
	ShowLineNumbers bool    `mapstructure:"show_line_numbers" yaml:"show_line_numbers"`
	ShowComments    bool    `mapstructure:"show_comments" yaml:"show_comments"`
	LogLevel        string  `mapstructure:"log_level" yaml:"log_level"`
	LogFile         string  `mapstructure:"log_file" yaml:"log_file"`
}

// Default values.
const (
	DefaultFontSize      = 14
	DefaultLineSpacing   = 4
	DefaultTabWidth      = 4
	DefaultPadding       = 10
	DefaultMaxTextureDim = 8192
)

// New returns a viper instance with defaults, search paths and the
// environment bound, but nothing read yet.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("font_path", "")
	v.SetDefault("font_size", DefaultFontSize)
	v.SetDefault("line_spacing", DefaultLineSpacing)
	v.SetDefault("tab_width", DefaultTabWidth)
	v.SetDefault("theme", "default")
	v.SetDefault("padding", DefaultPadding)
	v.SetDefault("max_texture_dim", DefaultMaxTextureDim)
	v.SetDefault("show_line_numbers", true)
	v.SetDefault("show_comments", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	v.SetConfigName("codeview")
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "codeview"))
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("CODEVIEW")
	v.AutomaticEnv()

	return v
}

// Load reads the configuration. An explicit file must exist; otherwise a
// missing codeview.yaml just leaves the defaults in place.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c.normalized(), nil
}

// normalized replaces values that cannot work with their defaults.
func (c Config) normalized() Config {
	if c.FontSize <= 0 {
		c.FontSize = DefaultFontSize
	}
	if c.LineSpacing < 0 {
		c.LineSpacing = 0
	}
	if c.TabWidth <= 0 {
		c.TabWidth = DefaultTabWidth
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	if c.MaxTextureDim <= 0 {
		c.MaxTextureDim = DefaultMaxTextureDim
	}
	return c
}

// Used returns the path of the file that was read, or "" for defaults only.
func Used(v *viper.Viper) string {
	return v.ConfigFileUsed()
}
