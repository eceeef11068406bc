// Package cli implements the blogify command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dfryer1193/blogify/internal/config"
	"github.com/dfryer1193/blogify/internal/wire"
)

type ctxKey string

const cfgKey ctxKey = "config"

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and loads configuration for subcommands.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "blogify",
		Short:         "Blogify blog server and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			config.SetupLogging(v, cmd.ErrOrStderr())

			cmd.SetContext(context.WithValue(cmd.Context(), cfgKey, v))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newRenderCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v, ok := cmd.Context().Value(cfgKey).(*viper.Viper)
	if !ok {
		return nil, fmt.Errorf("internal error: config not loaded")
	}
	return v, nil
}

// buildApp wires the services; callers must Close the result.
func buildApp(cmd *cobra.Command) (*wire.App, error) {
	v, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	return wire.BuildApp(cmd.Context(), v)
}
