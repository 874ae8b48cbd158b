package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/portal-co/sha3-literal/compiler/hash"
	"github.com/portal-co/sha3-literal/record"
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List the entry points of the active hashlit.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManifest()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, e := range m.Entries {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.RawName(), "bytes", e.Algorithm)
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.HexName(), "hex", e.Algorithm)
		}
		return w.Flush()
	},
}

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the digest algorithms hashlit.toml may name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, alg := range hash.All() {
			fmt.Fprintf(w, "%s\t%d\n", alg.Name, alg.Size)
		}
		return w.Flush()
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <file>",
	Short: "Print a digest record written by generate --record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := record.ReadFile(args[0])
		if err != nil {
			return err
		}
		return r.WriteText(cmd.OutOrStdout())
	},
}
