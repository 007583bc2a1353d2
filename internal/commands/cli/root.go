// Package cli provides the CLI command structure for go_segop.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_segop/internal/config"
	"github.com/andrei-cloud/go_segop/internal/logging"
)

// NewRootCommand creates and returns the root command with all subcommands.
func NewRootCommand() (*cobra.Command, error) {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "go_segop",
		Short: "segOP TLV payload builder",
		Long: `Build segOP lane payloads: self-describing Type-Length-Value records with
Bitcoin CompactSize lengths, optionally tagged with BUDS tier and data-kind
markers. Payloads are produced as bytes only; nothing is signed or broadcast.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// Initialize configuration before running any command.
			if err := config.Initialize(cfgFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			cfg := config.Get()
			logging.InitFromConfig(cfg.Log.Level, cfg.Log.Format)

			return nil
		},
	}

	// Add persistent flags that affect all commands.
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.go_segop/config.yaml)")

	// Add global flags that can override config file settings.
	rootCmd.PersistentFlags().
		String("log-level", "info", "logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "human", "logging format (human, json)")
	rootCmd.PersistentFlags().Int("max-size", 64000, "maximum payload size in bytes (0 disables the limit)")

	// Bind flags to config.
	for key, flag := range map[string]string{
		"log.level":        "log-level",
		"log.format":       "log-format",
		"payload.max_size": "max-size",
	} {
		if err := config.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	// Register all commands.
	if err := RegisterCommands(rootCmd); err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}

	return rootCmd, nil
}
