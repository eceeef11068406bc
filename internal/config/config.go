// Package config loads Blogify settings from defaults, config files and BLOGIFY_* variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "blogify"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "blogify"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine unless the caller named one.
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("blogify")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return Validate(v)
}

// Validate rejects values the service cannot start with.
func Validate(v *viper.Viper) error {
	switch driver := v.GetString("store.driver"); driver {
	case "sqlite":
		if v.GetString("store.sqlite.path") == "" {
			return fmt.Errorf("store.sqlite.path is required for the sqlite store")
		}
	case "postgres":
		if v.GetString("store.postgres.dsn") == "" {
			return fmt.Errorf("store.postgres.dsn is required for the postgres store")
		}
	case "mongo":
		if v.GetString("store.mongo.uri") == "" {
			return fmt.Errorf("store.mongo.uri is required for the mongo store")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", driver)
	}

	for _, key := range []string{"shutdown_timeout", "ai.timeout"} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}

	switch v.GetString("log.format") {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log.format %q", v.GetString("log.format"))
	}

	owner, repo := v.GetString("import.github.owner"), v.GetString("import.github.repo")
	if (owner == "") != (repo == "") {
		return fmt.Errorf("import.github.owner and import.github.repo must be set together")
	}

	return nil
}
