// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the exoframe CLI configuration once at startup and
// exposes it as an explicit value passed to commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/exoframe/exoframe-cli/pkg/defaults"
	cerrors "github.com/exoframe/exoframe-cli/pkg/errors"
)

const (
	// EnvPrefix prefixes environment overrides (EXOFRAME_ENDPOINT, EXOFRAME_TOKEN, EXOFRAME_USER_USERNAME).
	EnvPrefix = "EXOFRAME"

	dirName  = ".exoframe"
	fileName = "cli.config.yml"
)

// User identifies the account the token belongs to.
type User struct {
	Username string `mapstructure:"username" yaml:"username"`
}

// Config holds the endpoint and credentials used to talk to the exoframe server.
type Config struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Token    string `mapstructure:"token" yaml:"token"`
	User     User   `mapstructure:"user" yaml:"user"`
}

// DefaultPath returns ~/.exoframe/cli.config.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load reads the configuration file at path, falling back to DefaultPath when
// path is empty. A missing file is not an error: defaults and environment
// overrides still apply.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("endpoint", defaults.DefaultEndpoint)
	v.SetDefault("token", "")
	v.SetDefault("user.username", "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("failed to read config file %s", path), err)
		}
		if explicit {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("config file %s does not exist", path), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "failed to decode config", err)
	}
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")

	return &cfg, nil
}

// WithEndpoint returns a copy of c pointing at endpoint. Empty values keep the current one.
func (c Config) WithEndpoint(endpoint string) *Config {
	if e := strings.TrimRight(strings.TrimSpace(endpoint), "/"); e != "" {
		c.Endpoint = e
	}
	return &c
}

// Validate checks that the endpoint is an absolute http(s) URL.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return cerrors.New(cerrors.ErrCodeInvalidRequest, "endpoint is not configured")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid endpoint", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return cerrors.New(cerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("endpoint %q must use http or https", c.Endpoint))
	}
	if u.Host == "" {
		return cerrors.New(cerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("endpoint %q has no host", c.Endpoint))
	}
	return nil
}
