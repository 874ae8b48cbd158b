// hashlit expands //hashlit: directives into compile-time digest
// declarations.
//
// Usage:
//
//	hashlit generate [packages]          # write hashlit_gen.go per package
//	hashlit check [packages]             # fail when a generated file is stale
//	hashlit eval sha3_hex_literal '"abc"'
//	hashlit entries                      # entry points of the active hashlit.toml
//	hashlit algorithms
//	hashlit record digests.cbor
//	hashlit lsp                          # language server on stdio
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/portal-co/sha3-literal/manifest"
)

var (
	verbose int
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "hashlit",
		Short: "Compile-time digest literals for Go",
		Long: `hashlit replaces //hashlit: directives with the digest of a literal
expression, computed once at generation time.

A directive names an entry point, a declaration and an expression:

  //hashlit:sha3_hex_literal Pin "abc"
  //hashlit:sha3_literal Key [include_bytes("key.pem"), 0x00] => verify.Key()

Entry points come from the nearest hashlit.toml, or the built-in sha3 and
sha3_512 families when there is none.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "hashlit.toml to use (default: nearest one above the working directory)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(algorithmsCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(lspCmd)
}

// exitError ends the process with code after its message, if any, has
// been printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }

func loadManifest() (*manifest.Manifest, error) {
	return manifest.Resolve(cfgFile, ".")
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.err != nil {
				fmt.Fprintln(os.Stderr, "hashlit:", exitErr.err)
			}
			return exitErr.code
		}
		fmt.Fprintln(os.Stderr, "hashlit:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
