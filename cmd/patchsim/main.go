package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/patchsim/internal/config"
	"github.com/ludo-technologies/patchsim/internal/logger"
	"github.com/ludo-technologies/patchsim/internal/version"
	"github.com/ludo-technologies/patchsim/service"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	configFile string
	logLevel   string
	verbose    bool

	logCloser io.Closer
}

// NewRootCmd builds the patchsim command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "patchsim",
		Short: "Structural similarity scoring for source code patches",
		Long: `patchsim scores how structurally similar a patched piece of code is to
its original, or to other candidate patches.

Both snippets are parsed into syntax trees, the smallest region where they
diverge is located, and that region is encoded into a fixed-size vector of
node label codes. The vectors are then compared with a pluggable strategy
such as cosine similarity or Euclidean distance.

Features:
  • Java and Python grammars
  • Distance, angle and set based comparison strategies
  • Ranking of many candidate patches with bounded concurrency
  • Optional learned projection of the encoded vectors`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogging(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logCloser != nil {
				_ = opts.logCloser.Close()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"Configuration file path (default: nearest .patchsim.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewScoreCmd())
	rootCmd.AddCommand(NewRankCmd())
	rootCmd.AddCommand(NewCompareCmd())
	rootCmd.AddCommand(NewStrategiesCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// setupLogging configures the global logger from the [log] section of the
// configuration, overridden by --log-level and --verbose
func (o *rootOptions) setupLogging(cmd *cobra.Command) error {
	logCfg := config.DefaultConfig().Log
	if cfg, err := config.LoadConfig(o.configFile); err == nil {
		logCfg = cfg.Log
	}
	if o.logLevel != "" {
		logCfg.Level = o.logLevel
	}
	if o.verbose {
		logCfg.Level = "debug"
	}

	closer, err := logger.SetupWithWriter(logCfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	o.logCloser = closer
	return nil
}

// reportError prints a categorized error with recovery suggestions
func reportError(w io.Writer, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(w, "Error: %s\n", categorized.Message)
	fmt.Fprintf(w, "  %v\n", err)

	suggestions := categorizer.GetRecoverySuggestions(categorized.Category)
	if len(suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range suggestions {
			fmt.Fprintf(w, "  • %s\n", s)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
