package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"invoicer/internal/config"
	"invoicer/internal/logger"
)

var version = "1.0.0"

// appConfig is replaced by Execute; commands read presentation and report
// defaults from it.
var appConfig = config.Default()

var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Invoicer - draft invoices and compute their totals",
	Long: `Invoicer composes invoice drafts from line items and payments and
derives subtotal, discount, tax, total and balance from them.

Drafts are edited interactively with the draft command or loaded from
JSON and YAML documents with the totals command. The clients, invoices
and reports commands browse the built-in client directory and invoice
history.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Invoicer executed")

		fmt.Println("Welcome to Invoicer!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

// Execute runs the root command with the loaded configuration.
func Execute(cfg *config.Config) {
	log := logger.WithComponent("cmd")
	if cfg != nil {
		appConfig = cfg
	}

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
