package main

import (
	"fmt"

	"github.com/fluxvault/decoder/internal/config"
	"github.com/fluxvault/decoder/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbosity int
	cfg       *config.Config
	log       *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fluxdecode",
	Short: "Reconstruct floppy-disk logical sectors from raw magnetic-flux recordings",
	Long: "fluxdecode turns KryoFlux stream captures and SuperCard Pro traces into\n" +
		"decoded ZDS FM sector records, running the DPLL/byte-framer retry loop\n" +
		"flux2track used against live hardware.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		level := logging.Always
		switch {
		case verbosity >= 2:
			level = logging.VeryVerbose
		case verbosity == 1:
			level = logging.Verbose
		}
		log = logging.New(level, "fluxdecode")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase diagnostic verbosity (repeatable)")
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
