// Package config loads the command-line driver's settings from defaults,
// a transposition.yaml file, TRANSPOSITION_* environment variables and flags,
// in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName   = "transposition"
	envPrefix = "transposition"
)

// Config is the driver configuration.
type Config struct {
	// Key is the default cipher key. Leave empty to be prompted.
	Key      string `mapstructure:"key" yaml:"key"`
	LogLevel string `mapstructure:"log-level" yaml:"log-level"`
}

// Defaults returns the default values keyed by config name.
func Defaults() map[string]any {
	return map[string]any{
		"key":       "",
		"log-level": "warn",
	}
}

// Path returns the user config file path, e.g. ~/.config/transposition/transposition.yaml.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, appName, appName+".yaml"), nil
}

// LoadConfig builds a T from defaults, the first transposition.yaml found in
// the user config directory or the working directory, the environment and
// cmd's flags. An explicit configFile replaces the search.
//
// A missing config file is not an error. The second return value is the file
// actually read, or "" if none was.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile string) (T, string, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		if userPath, err := Path(); err == nil {
			v.AddConfigPath(filepath.Dir(userPath))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// Only a missing file found by search is tolerated; an explicit
		// --config must exist.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return c, "", fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, "", err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, "", fmt.Errorf("parsing config: %w", err)
	}

	return c, v.ConfigFileUsed(), nil
}

// WriteConfigFile writes c as YAML to path, creating parent directories.
// The file is written 0600 because it may hold a key.
// It refuses to replace an existing file unless overwrite is set.
func WriteConfigFile[T any](c *T, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", dir, err)
	}

	return os.WriteFile(path, data, 0o600)
}
