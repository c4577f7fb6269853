package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/patchsim/internal/config"
)

// NewConfigCmd creates the command printing the effective configuration
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration patchsim would use, as TOML.

The result merges the defaults, the configuration file (--config, or the
nearest .patchsim.toml) and PATCHSIM_* environment variables.

Examples:
  # Show the effective configuration
  patchsim config

  # Show what a specific file resolves to
  patchsim config --config ci.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath(cmd))
			if err != nil {
				return err
			}
			return config.WriteConfig(cmd.OutOrStdout(), cfg)
		},
	}
}
