// Package batch handles importing every statement file of a directory
package batch

import (
	"context"
	"fmt"

	"fjacquet/stmt-csv/cmd/common"
	"fjacquet/stmt-csv/cmd/root"
	"fjacquet/stmt-csv/internal/batch"
	"fjacquet/stmt-csv/internal/container"
	"fjacquet/stmt-csv/internal/fileutils"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/sheetparser"

	"github.com/spf13/cobra"
)

// Extensions lists the files a batch picks up.
var Extensions = []string{".txt", ".csv", ".tsv", ".xlsx", ".xlsm"}

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch import statement files from a directory",
	Long: `Batch import every statement file found in an input directory.

Text files are imported as pasted statements and spreadsheets (.xlsx, .csv,
.tsv) as sheet exports. Files are imported in name order against the record
store, so statements that overlap only add their new records. The accepted
records are written to statements_<start>_<end>-<family>.csv in the output
directory.

Example:
  stmt-csv batch -i statements/ -o exports/`,
	Run: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch command called")

	summary, err := Run(cmd.Context(), root.GetContainer(), root.SharedFlags)
	if err != nil {
		root.Log.Fatalf("Error during batch import: %v", err)
	}
	for _, f := range summary.Failed {
		root.Log.Warn("File was not imported", logging.Field{Key: logging.FieldFile, Value: f})
	}
	if err := common.WriteReport(cmd.OutOrStdout(), summary.Combined, root.SharedFlags.Format, root.Log); err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}
}

// Run imports the files of the flags.Input directory through c, saves the
// accepted records once and exports them into the flags.Output directory.
func Run(ctx context.Context, c *container.Container, flags root.CommonFlags) (batch.Summary, error) {
	if c == nil {
		return batch.Summary{}, fmt.Errorf("application not initialized")
	}
	if flags.Input == "" {
		return batch.Summary{}, fmt.Errorf("an input directory is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := fileutils.ListFiles(flags.Input, Extensions...)
	if err != nil {
		return batch.Summary{}, err
	}
	if len(files) == 0 {
		return batch.Summary{}, fmt.Errorf("no statement files found in %s", flags.Input)
	}

	log := c.GetLogger()
	aggregator := batch.NewBatchAggregator(log)
	importFile := fileImporter(c)

	var summary batch.Summary
	run := func(ctx context.Context, existing models.Existing) models.ImportResult {
		summary, _ = aggregator.ImportFiles(ctx, files, existing, importFile)
		return summary.Combined
	}
	if _, err := common.RunImport(ctx, c.GetStore(), run, nil, common.Options{DryRun: flags.DryRun}, log); err != nil {
		return summary, err
	}
	if len(summary.Failed) == len(files) {
		return summary, fmt.Errorf("none of the %d files could be imported", len(files))
	}

	if flags.Output != "" {
		prefix := aggregator.GenerateOutputPrefix(flags.Output, summary.DateRange)
		written, err := c.GetCSVWriter().ExportResult(summary.Combined, prefix)
		if err != nil {
			return summary, fmt.Errorf("error exporting CSV: %w", err)
		}
		for _, f := range written {
			log.Info("Wrote CSV file", logging.Field{Key: logging.FieldOutputFile, Value: f})
		}
	}
	return summary, nil
}

// fileImporter reads a file the way its kind asks for and imports it.
func fileImporter(c *container.Container) batch.ImportFileFunc {
	im := c.GetImporter()
	delimiter := c.GetConfig().Delimiter()
	return func(ctx context.Context, path string, existing models.Existing) models.ImportResult {
		switch batch.KindOf(path) {
		case batch.KindSheet:
			grid, err := sheetparser.ReadFile(path, "", delimiter)
			if err != nil {
				return models.NewFailedResult(err.Error())
			}
			return im.ImportGrid(ctx, grid, existing)
		default:
			text, err := common.ReadInput(path, nil)
			if err != nil {
				return models.NewFailedResult(err.Error())
			}
			return im.ImportText(ctx, text, existing)
		}
	}
}
