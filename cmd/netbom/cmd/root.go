package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "netbom",
	Short: "Bill of materials tools for KiCad netlists",
	Long: `netbom reads a KiCad netlist (XML generic netlist or .net S-expression),
groups interchangeable components into BOM line items and checks the result
against pick-and-place output.

Examples:
  netbom bom board.xml                          # CSV BOM on stdout
  netbom bom board.net --format table           # Terminal table
  netbom bom board.xml --records parts.csv      # Back-fill supplier columns
  netbom info board.net                         # Design summary
  netbom check --bom board.csv --pnp board.pos  # Cross-check fabrication files`,
	Version: "0.9.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.WarnLevel)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
