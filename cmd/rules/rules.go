// Package rules provides commands to inspect the replacement and category rules
package rules

import (
	"fmt"
	"io"

	"fjacquet/stmt-csv/cmd/root"
	internalrules "fjacquet/stmt-csv/internal/rules"

	"github.com/spf13/cobra"
)

// Text is the description to run through the rules.
var Text string

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect replacement and category rules",
	Long:  `Inspect the replacement and category rules loaded from the rules file.`,
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run a description through the rules",
	Long: `Run a description through the replacement rules, then the category rules,
and print what an import would store.`,
	Run: testFunc,
}

var listCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories named by the category rules",
	Run: func(cmd *cobra.Command, args []string) {
		c := root.GetContainer()
		if c == nil {
			root.Log.Fatal("application not initialized")
			return
		}
		for _, cat := range c.GetRules().Categories() {
			fmt.Fprintln(cmd.OutOrStdout(), cat)
		}
	},
}

func init() {
	testCmd.Flags().StringVarP(&Text, "text", "t", "", "Description to test")
	_ = testCmd.MarkFlagRequired("text")
	Cmd.AddCommand(testCmd, listCmd)
}

func testFunc(cmd *cobra.Command, args []string) {
	c := root.GetContainer()
	if c == nil {
		root.Log.Fatal("application not initialized")
		return
	}
	Explain(cmd.OutOrStdout(), c.GetRules(), Text)
}

// Explain prints the outcome of engine's rules on text.
func Explain(w io.Writer, engine *internalrules.Engine, text string) {
	res := engine.Replace(text)
	if res.ShouldDelete {
		fmt.Fprintf(w, "Deleted: %q matches a delete rule\n", text)
		return
	}
	fmt.Fprintf(w, "Description: %s\n", res.Text)
	if res.Captured != "" {
		fmt.Fprintf(w, "Remark: %s\n", res.Captured)
	}
	fmt.Fprintf(w, "Category: %s\n", engine.Categorize(res.Text))
}
