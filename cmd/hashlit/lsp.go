package main

import (
	"github.com/spf13/cobra"

	"github.com/portal-co/sha3-literal/server"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the directive language server on stdio",
	Long: `Run a language server that checks //hashlit: directives as Go files are
edited: expansion errors become diagnostics, hovering a directive shows the
declaration it generates, and entry point names complete after //hashlit:.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.NewLSP(cfgFile).Run()
	},
}
