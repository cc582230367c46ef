package root_test

import (
	"os"
	"testing"

	"fjacquet/stmt-csv/cmd/root"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	root.Init()
	os.Exit(m.Run())
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "stmt-csv", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "Taiwanese bank and credit-card statements")
	assert.Contains(t, root.Cmd.Long, "reconciles the result against a local record store")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"input", "i", ""},
		{"output", "o", ""},
		{"dry-run", "n", "false"},
		{"format", "f", "text"},
	}
	for _, tt := range tests {
		flag := root.Cmd.PersistentFlags().Lookup(tt.name)
		if assert.NotNil(t, flag, tt.name) {
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		}
	}
}

func TestRootCommand_Run(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
}

func TestRootCommand_PersistentPostRunWithoutContainer(t *testing.T) {
	original := root.AppContainer
	defer func() { root.AppContainer = original }()

	root.AppContainer = nil
	assert.NotPanics(t, func() {
		root.Cmd.PersistentPostRun(&cobra.Command{}, []string{})
	})
}

func TestGetters(t *testing.T) {
	assert.Equal(t, root.AppContainer, root.GetContainer())
	assert.Equal(t, root.AppConfig, root.GetConfig())
	assert.NotNil(t, root.Log)
}
