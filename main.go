package main

import (
	"fmt"
	"os"

	"fjacquet/stmt-csv/cmd/batch"
	"fjacquet/stmt-csv/cmd/paste"
	"fjacquet/stmt-csv/cmd/root"
	"fjacquet/stmt-csv/cmd/rules"
	"fjacquet/stmt-csv/cmd/sheet"
	"fjacquet/stmt-csv/internal/config"
	"fjacquet/stmt-csv/internal/logging"
)

func init() {
	// 1. Load environment variables before viper reads them
	config.LoadEnv(logging.NewLogrusAdapter("warn", "text"))

	// 2. Initialize root command flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(paste.Cmd)
	root.Cmd.AddCommand(sheet.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
