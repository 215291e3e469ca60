// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config provides configuration loading and persistence for AMPBoard.
// It uses Viper for file/env/flag parsing and go-yaml for writing files and
// decoding the folders profile.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ampboard/ampboard/internal/vhost"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Language string `mapstructure:"language" yaml:"language"`
	Paths    Paths  `mapstructure:"paths" yaml:"paths"`
}

// Paths locates the Apache installation, the document root and the profile.
type Paths struct {
	Apache  string   `mapstructure:"apache" yaml:"apache"`
	Htdocs  string   `mapstructure:"htdocs" yaml:"htdocs"`
	Vhosts  string   `mapstructure:"vhosts" yaml:"vhosts,omitempty"`
	Crt     string   `mapstructure:"crt" yaml:"crt,omitempty"`
	Hosts   []string `mapstructure:"hosts" yaml:"hosts,omitempty"`
	Profile string   `mapstructure:"profile" yaml:"profile"`
}

// Defaults returns the default values keyed the way Viper expects them.
func Defaults() map[string]any {
	return map[string]any{
		"language":      "en",
		"paths.apache":  "",
		"paths.htdocs":  ".",
		"paths.vhosts":  "",
		"paths.crt":     "",
		"paths.hosts":   []string{},
		"paths.profile": "profile",
	}
}

// VhostsFile returns the virtual host configuration file: the configured path,
// or {apache}/conf/extra/httpd-vhosts.conf. Empty when neither is set.
func (p Paths) VhostsFile() string {
	if p.Vhosts != "" {
		return p.Vhosts
	}
	if p.Apache == "" {
		return ""
	}
	return filepath.Join(p.Apache, "conf", "extra", "httpd-vhosts.conf")
}

// CrtDir returns the per-host certificate directory: the configured path, or
// {apache}/crt.
func (p Paths) CrtDir() string {
	if p.Crt != "" {
		return p.Crt
	}
	if p.Apache == "" {
		return ""
	}
	return filepath.Join(p.Apache, "crt")
}

// HostsFiles returns the configured hosts files, or the OS default.
func (p Paths) HostsFiles() []string {
	if len(p.Hosts) > 0 {
		return p.Hosts
	}
	return vhost.DefaultHostsPaths()
}

// VhostSource returns the file source for a vhost.Resolver.
func (p Paths) VhostSource() vhost.FileSource {
	return vhost.FileSource{
		VhostsFile: p.VhostsFile(),
		CrtDir:     p.CrtDir(),
		HostsFiles: p.HostsFiles(),
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "AMPBoard")
		default:
			configDir = "/etc/ampboard"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "ampboard")
	}

	return filepath.Join(configDir, "ampboard.yaml"), nil
}

// LoadConfig reads defaults, config files, AMPBOARD_* environment variables
// and the flags of cmd, in increasing order of precedence. A missing config
// file is not an error; an explicitly given file that cannot be read is.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("ampboard")
	v.SetConfigType("yaml")
	if explicitFile != nil && *explicitFile != "" {
		v.SetConfigFile(*explicitFile)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("ampboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// WriteConfigFile writes c as YAML to the user or system config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}
	return WriteConfigFileTo(c, path)
}

// WriteConfigFileTo writes c as YAML to path, creating parent directories.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	return os.WriteFile(path, data, 0o644)
}
