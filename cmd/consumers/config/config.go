package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "CLINIC"

// Config drives the journal replay tool. It shares the CLINIC_ prefix and
// file layout with the web process so both can point at one config file.
type Config struct {
	Name    string `mapstructure:"name"`
	Journal struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"journal"`
	Audit struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"audit"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("name", "consumers")
	v.SetDefault("journal.path", "./out/journal.jsonl")
	v.SetDefault("audit.path", "")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Journal.Path == "" {
		return nil, errors.New("config: journal.path is required")
	}
	return &cfg, nil
}
