// Package sheet handles importing spreadsheet exports
package sheet

import (
	"context"
	"fmt"

	"fjacquet/stmt-csv/cmd/common"
	"fjacquet/stmt-csv/cmd/root"
	"fjacquet/stmt-csv/internal/container"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/sheetparser"

	"github.com/spf13/cobra"
)

// SheetName selects the worksheet of an .xlsx workbook.
var SheetName string

// Cmd represents the sheet command
var Cmd = &cobra.Command{
	Use:   "sheet",
	Short: "Import a spreadsheet export (.xlsx or .csv)",
	Long: `Import rows of date, category, description, amount, type and notes from an
Excel workbook or a CSV file. The type column selects credit-card, cash or
deposit records.`,
	Run: sheetFunc,
}

func init() {
	Cmd.Flags().StringVarP(&SheetName, "sheet", "s", "", "Worksheet name (default: first sheet)")
}

func sheetFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Sheet import command called")

	res, err := Run(cmd.Context(), root.GetContainer(), root.SharedFlags, SheetName)
	if err != nil {
		root.Log.Fatalf("Error importing spreadsheet: %v", err)
	}
	if err := common.WriteReport(cmd.OutOrStdout(), res, root.SharedFlags.Format, root.Log); err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}
}

// Run imports the spreadsheet named by flags.Input through c.
func Run(ctx context.Context, c *container.Container, flags root.CommonFlags, sheet string) (models.ImportResult, error) {
	if c == nil {
		return models.ImportResult{}, fmt.Errorf("application not initialized")
	}
	if flags.Input == "" {
		return models.ImportResult{}, fmt.Errorf("an input file is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	grid, err := sheetparser.ReadFile(flags.Input, sheet, c.GetConfig().Delimiter())
	if err != nil {
		return models.ImportResult{}, err
	}

	im := c.GetImporter()
	run := func(ctx context.Context, existing models.Existing) models.ImportResult {
		return im.ImportGrid(ctx, grid, existing)
	}
	return common.RunImport(ctx, c.GetStore(), run, c.GetCSVWriter(),
		common.Options{OutputPrefix: flags.Output, DryRun: flags.DryRun}, c.GetLogger())
}
