package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/portal-co/sha3-literal/compiler"
	"github.com/portal-co/sha3-literal/gogen"
	"github.com/portal-co/sha3-literal/manifest"
	"github.com/portal-co/sha3-literal/record"
)

var (
	outputName string
	recordPath string
	dryRun     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [packages]",
	Short: "Write the generated declarations of each package",
	Long: `Expand every //hashlit: directive of the given packages (default ".")
and write the declarations to one generated file per package.

Each package is expanded with the nearest hashlit.toml above its directory,
or the --config file when one is given.

Errors in any directive are all reported, and nothing is written for a
package that has one.

Examples:
  hashlit generate
  hashlit generate ./...
  hashlit generate --record digests.cbor ./...`,
	RunE: runGenerate,
}

var checkCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Fail when a generated file is missing or stale",
	RunE:  runCheck,
}

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, checkCmd} {
		cmd.Flags().StringVarP(&outputName, "output", "o", "", "generated file name (default from each package's hashlit.toml, else "+manifest.DefaultOutput+")")
	}
	generateCmd.Flags().StringVar(&recordPath, "record", "", "write a CBOR digest record to this file")
	generateCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report what would change without writing")
}

// output is the rendered source of one package.
type output struct {
	path   string
	src    []byte
	result *gogen.Result
	record string // digest record to merge into, "" for none
}

// pkgConfig is the generator setup derived from one manifest.
type pkgConfig struct {
	manifest *manifest.Manifest
	output   string
	gen      *gogen.Generator
}

// configs resolves the manifest governing each package directory: the
// --config file when set, otherwise the nearest hashlit.toml above it.
// Packages sharing a manifest share one generator.
type configs struct {
	byDir      map[string]*pkgConfig
	byManifest map[string]*pkgConfig
}

func newConfigs() *configs {
	return &configs{
		byDir:      make(map[string]*pkgConfig),
		byManifest: make(map[string]*pkgConfig),
	}
}

func (c *configs) forDir(dir string) (*pkgConfig, error) {
	if pc, ok := c.byDir[dir]; ok {
		return pc, nil
	}
	m, err := manifest.Resolve(cfgFile, dir)
	if err != nil {
		return nil, err
	}
	pc, ok := c.byManifest[m.Dir]
	if !ok {
		table, err := m.Table()
		if err != nil {
			return nil, err
		}
		name := outputName
		if name == "" {
			name = m.Generate.Output
		}
		pc = &pkgConfig{
			manifest: m,
			output:   name,
			gen: &gogen.Generator{
				Table:   table,
				Options: compiler.Options{MaxDepth: m.Generate.MaxDepth},
			},
		}
		c.byManifest[m.Dir] = pc
	}
	c.byDir[dir] = pc
	return pc, nil
}

// isOutput reports whether filename is the generated file of its
// package. Manifest errors are reported when the package is expanded.
func (c *configs) isOutput(filename string) bool {
	pc, err := c.forDir(filepath.Dir(filename))
	return err == nil && filepath.Base(filename) == pc.output
}

// expandAll loads and expands the packages matching patterns. All errors
// across packages are reported together.
func expandAll(patterns []string) ([]output, error) {
	cfgs := newConfigs()
	pkgs, err := gogen.Load(".", cfgs.isOutput, patterns...)
	if err != nil {
		return nil, err
	}

	var (
		outs []output
		errs compiler.ErrorList
	)
	for _, pkg := range pkgs {
		if len(pkg.Files) == 0 {
			continue
		}
		pc, err := cfgs.forDir(pkg.Dir)
		if err != nil {
			return nil, err
		}
		res, err := pc.gen.Package(pkg)
		if err != nil {
			var list compiler.ErrorList
			if errors.As(err, &list) {
				errs = append(errs, list...)
				continue
			}
			return nil, err
		}
		src, err := gogen.Render(res)
		if err != nil {
			return nil, err
		}
		rec := recordPath
		if rec == "" {
			rec = pc.manifest.RecordPath()
		}
		outs = append(outs, output{
			path:   gogen.OutputPath(pkg, pc.output),
			src:    src,
			result: res,
			record: rec,
		})
	}
	if len(errs) > 0 {
		errs.Sort()
		return nil, &exitError{code: 1, err: errs}
	}
	return outs, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	outs, err := expandAll(args)
	if err != nil {
		return err
	}

	for _, out := range outs {
		if dryRun {
			ok, err := gogen.UpToDate(out.path, out.src)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "would write %s\n", relPath(out.path))
			}
			continue
		}
		changed, err := gogen.WriteOutput(out.path, out.src)
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", relPath(out.path))
		}
	}

	if dryRun {
		return nil
	}
	byRecord := make(map[string][]output)
	for _, out := range outs {
		if out.record != "" {
			byRecord[out.record] = append(byRecord[out.record], out)
		}
	}
	paths := make([]string, 0, len(byRecord))
	for path := range byRecord {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := updateRecord(path, byRecord[path]); err != nil {
			return err
		}
	}
	return nil
}

// updateRecord merges the generated packages into the record at path,
// keeping entries of packages that were not regenerated.
func updateRecord(path string, outs []output) error {
	r := &record.Record{}
	if _, err := os.Stat(path); err == nil {
		if r, err = record.ReadFile(path); err != nil {
			return err
		}
	}
	for _, out := range outs {
		r.Add(out.result)
	}
	return record.WriteFile(path, r)
}

func runCheck(cmd *cobra.Command, args []string) error {
	outs, err := expandAll(args)
	if err != nil {
		return err
	}

	stale := 0
	for _, out := range outs {
		ok, err := gogen.UpToDate(out.path, out.src)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s is stale\n", relPath(out.path))
			stale++
		}
	}
	if stale > 0 {
		return &exitError{code: 1, err: fmt.Errorf("%d generated file(s) out of date; run hashlit generate", stale)}
	}
	return nil
}

func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil {
		return rel
	}
	return path
}
