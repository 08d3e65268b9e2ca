// Package config loads runtime settings from a file and the environment.
// Every key has a default, so both binaries run with no configuration at all.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
)

// Config is the full runtime configuration.
type Config struct {
	Server     Server            `mapstructure:"server"`
	Letterhead render.Letterhead `mapstructure:"letterhead"`
	SaveDir    string            `mapstructure:"save_dir"`
	Log        Log               `mapstructure:"log"`
}

// Server holds the HTTP listener settings.
type Server struct {
	Addr          string `mapstructure:"addr"`
	MaxUploadMB   int64  `mapstructure:"max_upload_mb"`
	DefaultFormat string `mapstructure:"default_format"`
}

// Log holds logger settings.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file (optional) and the
// environment. Environment variables use the RENTALFORM prefix with
// underscores, e.g. RENTALFORM_SERVER_ADDR.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.default_format", "pdf")
	v.SetDefault("letterhead.title", render.DefaultLetterhead.Title)
	v.SetDefault("letterhead.addressline", render.DefaultLetterhead.AddressLine)
	v.SetDefault("letterhead.phone", render.DefaultLetterhead.Phone)
	v.SetDefault("save_dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix("RENTALFORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
