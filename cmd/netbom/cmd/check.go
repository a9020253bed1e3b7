package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/netbom/pkg/pnp"
)

var (
	checkBOMFile string
	checkPosFile string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Cross-check a BOM against a pick-and-place file",
	Long: `Validate a BOM (.csv) against a pick-and-place file (.pos).

Every fitted BOM part must be placed with a matching footprint and value;
parts marked DNF (quantity 0 or "DNF") must not be placed, and every placed
part must appear in the BOM. The command fails when any issue is found.

Examples:
  netbom check --bom board.csv --pnp board-all.pos`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkBOMFile, "bom", "b", "", "BOM file (.csv)")
	checkCmd.Flags().StringVarP(&checkPosFile, "pnp", "p", "", "pick-and-place file (.pos)")
	checkCmd.MarkFlagRequired("bom")
	checkCmd.MarkFlagRequired("pnp")
}

func runCheck(cmd *cobra.Command, args []string) error {
	report, err := pnp.CheckFiles(checkBOMFile, checkPosFile)
	if err != nil {
		return err
	}

	report.WriteSummary(cmd.OutOrStdout())

	if !report.OK() {
		return fmt.Errorf("%d issue(s) found", report.Problems())
	}
	return nil
}
