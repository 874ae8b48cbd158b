package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/portal-co/sha3-literal/compiler"
)

var evalCmd = &cobra.Command{
	Use:   "eval <entry> <expression>...",
	Short: "Expand one expression and print the result",
	Long: `Expand an expression against an entry point of the active hashlit.toml
and print the Go expression it generates. Remaining arguments are joined
with spaces. Include paths are relative to the working directory.

Examples:
  hashlit eval sha3_hex_literal '"abc"'
  hashlit eval sha3_literal '[include_bytes("key.pem"), 0x00]'`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}
	table, err := m.Table()
	if err != nil {
		return err
	}
	e, ok := table.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown entry point %s (have %s)", args[0], strings.Join(table.Names(), ", "))
	}

	src := strings.Join(args[1:], " ")
	n, err := e.Expand("expr", src, compiler.Position{Line: 1, Column: 1}, m.Options("."))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), compiler.Format(n))
	return nil
}
