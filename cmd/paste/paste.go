// Package paste handles importing pasted statement text
package paste

import (
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/stmt-csv/cmd/common"
	"fjacquet/stmt-csv/cmd/root"
	"fjacquet/stmt-csv/internal/classifier"
	"fjacquet/stmt-csv/internal/container"
	"fjacquet/stmt-csv/internal/models"

	"github.com/spf13/cobra"
)

// Dialect forces the statement dialect; empty lets the importer decide.
var Dialect string

// Cmd represents the paste command
var Cmd = &cobra.Command{
	Use:   "paste",
	Short: "Import pasted statement text",
	Long: `Import credit-card or deposit-account statement text copied from online banking.
The dialect is detected from the line shapes unless --dialect is given.`,
	Run: pasteFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Dialect, "dialect", "d", "", "Statement dialect: credit or deposit (default: detect)")
}

func pasteFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Paste import command called")

	res, err := Run(cmd.Context(), root.GetContainer(), root.SharedFlags, Dialect, cmd.InOrStdin())
	if err != nil {
		root.Log.Fatalf("Error importing statement text: %v", err)
	}
	if err := common.WriteReport(cmd.OutOrStdout(), res, root.SharedFlags.Format, root.Log); err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}
}

// ParseDialect validates a --dialect value.
func ParseDialect(s string) (classifier.Dialect, error) {
	switch d := classifier.Dialect(s); d {
	case classifier.DialectUnknown, classifier.DialectCredit, classifier.DialectDeposit:
		return d, nil
	default:
		return classifier.DialectUnknown, fmt.Errorf("unknown dialect %q (want credit or deposit)", s)
	}
}

// Run imports the text named by flags.Input through c.
func Run(ctx context.Context, c *container.Container, flags root.CommonFlags, dialect string, stdin io.Reader) (models.ImportResult, error) {
	if c == nil {
		return models.ImportResult{}, fmt.Errorf("application not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if stdin == nil {
		stdin = os.Stdin
	}

	d, err := ParseDialect(dialect)
	if err != nil {
		return models.ImportResult{}, err
	}
	text, err := common.ReadInput(flags.Input, stdin)
	if err != nil {
		return models.ImportResult{}, err
	}

	im := c.GetImporter()
	run := func(ctx context.Context, existing models.Existing) models.ImportResult {
		return im.ImportTextAs(ctx, text, d, existing)
	}
	return common.RunImport(ctx, c.GetStore(), run, c.GetCSVWriter(),
		common.Options{OutputPrefix: flags.Output, DryRun: flags.DryRun}, c.GetLogger())
}
