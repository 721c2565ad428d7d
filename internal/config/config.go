package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the build tool settings. Site content settings (title,
// navigation, theme labels) live in the site config file instead.
type Config struct {
	SiteConfig  string `mapstructure:"siteConfig"`
	ContentDir  string `mapstructure:"contentDir"`
	LayoutsDir  string `mapstructure:"layoutsDir"`
	StaticDir   string `mapstructure:"staticDir"`
	OutputDir   string `mapstructure:"outputDir"`
	StrictLinks bool   `mapstructure:"strictLinks"`
	Workers     int    `mapstructure:"workers"`
	Log         Log    `mapstructure:"log"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const envPrefix = "HANDBOOK"

// SetDefaults registers the conventional directory layout.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("siteConfig", "site.yaml")
	v.SetDefault("contentDir", "content")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "public")
	v.SetDefault("strictLinks", false)
	v.SetDefault("workers", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads the tool config from file (optional) and HANDBOOK_* env vars.
// An explicit file that does not exist is an error; a missing default file is
// not. The returned bool reports whether a file was read.
func Load(v *viper.Viper, file string) (Config, bool, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("handbook")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	found := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && file == "" {
			found = false
		} else {
			return Config{}, false, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, found, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, found, nil
}
