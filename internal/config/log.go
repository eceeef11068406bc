package config

import (
	"io"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// SetupLogging points the global zerolog logger at out using log.format and log.level.
func SetupLogging(v *viper.Viper, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	if v.GetString("log.format") == "json" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	applyLogLevel(v)
}

// WatchLogLevel re-applies log.level whenever the config file changes.
func WatchLogLevel(v *viper.Viper) {
	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		applyLogLevel(v)
		log.Info().Str("file", e.Name).Str("level", zerolog.GlobalLevel().String()).Msg("Config reloaded")
	})
	v.WatchConfig()
}

func applyLogLevel(v *viper.Viper) {
	level, err := zerolog.ParseLevel(v.GetString("log.level"))
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Str("level", v.GetString("log.level")).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
