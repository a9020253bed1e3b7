package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/netbom/pkg/bom"
	"github.com/OpenTraceLab/netbom/pkg/bom/export"
	"github.com/OpenTraceLab/netbom/pkg/kicad/netfile"
)

var (
	configFile  string
	recordsFile string
	formatName  string
	outputFile  string
	rawRows     bool
)

var bomCmd = &cobra.Command{
	Use:   "bom <netlist>",
	Short: "Generate a bill of materials",
	Long: `Group the components of a KiCad netlist into BOM line items and write
one row per group.

Components are filtered (test points, mounting holes and parts with
Installed=NU are dropped), grouped by value, footprint, library, part name
and fitted state, and their fields merged. Conflicting field values are kept
side by side and reported on stderr.

Examples:
  netbom bom board.xml > board.csv
  netbom bom board.net --format yaml
  netbom bom board.xml --records parts.csv --output board.csv
  netbom bom board.xml --config netbom.yaml --format table`,
	Args: cobra.ExactArgs(1),
	RunE: runBOM,
}

func init() {
	rootCmd.AddCommand(bomCmd)

	bomCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	bomCmd.Flags().StringVarP(&recordsFile, "records", "r", "", "CSV parts list used to fill empty columns")
	bomCmd.Flags().StringVarP(&formatName, "format", "f", "csv", "output format: csv, yaml or table")
	bomCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write to file instead of stdout")
	bomCmd.Flags().BoolVar(&rawRows, "raw", false, "write design data only, ignoring records")
}

func loadConfig() (*bom.Config, error) {
	if configFile == "" {
		return bom.DefaultConfig(), nil
	}
	cfg, err := bom.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	log.WithField("file", configFile).Debug("Loaded configuration")
	return cfg, nil
}

func runBOM(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	nl, err := netfile.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing netlist: %w", err)
	}

	engine, err := bom.NewEngine(cfg, bom.WithLogger(log))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var records []bom.Record
	if recordsFile != "" {
		records, err = bom.ReadRecordsFile(recordsFile)
		if err != nil {
			return fmt.Errorf("error reading records: %w", err)
		}
		log.WithFields(logrus.Fields{
			"file":    recordsFile,
			"records": len(records),
		}).Debug("Loaded records")
	}

	b := engine.Build(nl, records)
	log.WithFields(logrus.Fields{
		"components": len(nl.Components),
		"kept":       len(b.Components),
		"groups":     len(b.Groups),
	}).Info("Built BOM")

	rows := b.Rows()
	if rawRows {
		rows = b.DesignRows()
	}

	var out io.Writer = os.Stdout
	colored := format == export.FormatTable && isTerminal(os.Stdout)
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
		colored = false
	}

	if err := export.Write(out, format, b.Columns, rows, export.Options{Color: colored}); err != nil {
		return fmt.Errorf("error writing BOM: %w", err)
	}

	printDiagnostics(os.Stderr, b.Diagnostics, isTerminal(os.Stderr))
	return nil
}
