// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// errConfig marks errors that end the program with exit code 2.
var errConfig = errors.New("configuration error")

var errNoSource = errors.New("either a catalog file or server.host is required")

type Config struct {
	Catalog string       `mapstructure:"catalog"`
	Mpris   bool         `mapstructure:"mpris"`
	Server  ServerConfig `mapstructure:"server"`
	Auth    AuthConfig   `mapstructure:"auth"`
	Player  PlayerConfig `mapstructure:"player"`
	UI      UIConfig     `mapstructure:"ui"`
	Log     LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" validate:"omitempty,url"`
	// Channel selects a podcast channel by id or title; empty means the first one
	Channel string `mapstructure:"channel"`
}

type AuthConfig struct {
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	Plaintext bool   `mapstructure:"plaintext"`
}

type PlayerConfig struct {
	SkipSeconds int `mapstructure:"skip_seconds" default:"5" validate:"min=1,max=600"`
	HideDelayMs int `mapstructure:"hide_delay_ms" default:"2000" validate:"min=100,max=60000"`
	// Volume 0 is treated as unset and becomes 1
	Volume     float64 `mapstructure:"volume" default:"1" validate:"gt=0,lte=1"`
	Continuous bool    `mapstructure:"continuous"`
}

type UIConfig struct {
	ArtworkCacheSize int  `mapstructure:"artwork_cache_size" default:"32" validate:"min=1,max=1024"`
	HideArtwork      bool `mapstructure:"hide_artwork"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" default:"info" validate:"oneof=trace debug info warn error"`
}

func (c PlayerConfig) Skip() time.Duration {
	return time.Duration(c.SkipSeconds) * time.Second
}

func (c PlayerConfig) HideDelay() time.Duration {
	return time.Duration(c.HideDelayMs) * time.Millisecond
}

// configKeys are bound to STPOD_* environment variables, e.g. STPOD_AUTH_PASSWORD.
var configKeys = []string{
	"catalog", "mpris",
	"server.host", "server.channel",
	"auth.username", "auth.password", "auth.plaintext",
	"player.skip_seconds", "player.hide_delay_ms", "player.volume", "player.continuous",
	"ui.artwork_cache_size", "ui.hide_artwork",
	"log.file", "log.level",
}

func newConfigViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix("STPOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// readConfig reads configFile, or stpod.toml from the default locations, and
// returns the validated configuration. A missing default config file is not
// an error since everything can be given on the command line.
func readConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("stpod")
		v.SetConfigType("toml")
		v.AddConfigPath("$HOME/.config/stpod")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Mark(errors.Wrap(err, "config file"), errConfig)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse config"), errConfig)
	}
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "set defaults"), errConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Mark(err, errConfig)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	if c.Catalog == "" && c.Server.Host == "" {
		return errNoSource
	}
	return nil
}

func isServerArg(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// applySourceArg puts the positional argument into the config: a server URL
// with optional credentials, or a catalog file path.
func applySourceArg(v *viper.Viper, arg string) error {
	if !isServerArg(arg) {
		v.Set("catalog", arg)
		return nil
	}

	u, err := url.Parse(arg)
	if err != nil || u.Host == "" {
		return errors.Mark(errors.Newf("invalid server URL %q; usage: stpod [flags] [http[s]://[user:pass@]server:port]", arg), errConfig)
	}
	// If credentials were provided
	if len(u.User.Username()) > 0 {
		v.Set("auth.username", u.User.Username())
		if p, ok := u.User.Password(); ok {
			v.Set("auth.password", p)
		}
	}
	// Blank out the credentials so we can use the URL formatting
	u.User = nil
	v.Set("server.host", u.String())
	return nil
}
