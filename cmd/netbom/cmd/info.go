package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/netbom/pkg/bom"
	"github.com/OpenTraceLab/netbom/pkg/kicad/netfile"
	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

var infoCmd = &cobra.Command{
	Use:   "info <netlist>",
	Short: "Show netlist information",
	Long: `Display the design metadata of a KiCad netlist together with component,
library part and net counts, and list components whose library part could
not be resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	nl, err := netfile.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing netlist: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := bom.NewEngine(cfg, bom.WithLogger(log))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("Netlist: %s\n", filename)
	if nl.Source() != "" {
		fmt.Printf("Source: %s\n", nl.Source())
	}
	if nl.Date() != "" {
		fmt.Printf("Date: %s\n", nl.Date())
	}
	if nl.Tool() != "" {
		fmt.Printf("Tool: %s\n", nl.Tool())
	}
	if nl.Version() != "" {
		fmt.Printf("Revision: %s\n", nl.Version())
	}
	fmt.Println()

	comps := engine.Interesting(nl)
	groups := engine.Group(comps)

	fmt.Println("Statistics:")
	fmt.Printf("  Components: %d\n", len(nl.Components))
	fmt.Printf("  BOM components: %d\n", len(comps))
	fmt.Printf("  BOM lines: %d\n", len(groups))
	fmt.Printf("  Library parts: %d\n", len(nl.LibParts))
	fmt.Printf("  Libraries: %d\n", len(nl.Libraries))
	fmt.Printf("  Nets: %d\n", len(nl.Nets))

	var unresolved []netlist.Diagnostic
	for _, d := range nl.Diagnostics {
		if d.Kind == netlist.UnresolvedLibPart {
			unresolved = append(unresolved, d)
		}
	}
	if len(unresolved) > 0 {
		fmt.Println()
		fmt.Printf("Unresolved library parts (%d):\n", len(unresolved))
		for _, d := range unresolved {
			c := nl.Component(d.Ref)
			fmt.Printf("  %-8s %s:%s\n", d.Ref, c.LibName(), c.PartName())
		}
	}

	if verbose {
		fmt.Println()
		fmt.Println("Components:")
		for _, c := range nl.Components {
			lib := "-"
			if p := c.LibPart(); p != nil {
				lib = p.LibName() + ":" + p.PartName()
			}
			fmt.Printf("  %-8s %-12s %-40s %s\n", c.Ref(), c.Value(), c.Footprint(), lib)
		}
	}

	return nil
}
