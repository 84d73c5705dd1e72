// Package cli implements the namegen command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/namekit/internal/query"
	"github.com/dmitrymomot/namekit/pkg/names"
)

// ErrNoMatch is returned by pick and full when the filters select nothing.
var ErrNoMatch = errors.New("no name matches the filters")

type app struct {
	ds *names.Dataset
}

// NewRootCommand builds the namegen command. A nil ds selects the embedded
// dataset.
func NewRootCommand(ds *names.Dataset) *cobra.Command {
	a := &app{ds: ds}
	root := &cobra.Command{
		Use:           "namegen",
		Short:         "Pick random person names",
		Long:          "Pick random first, last and full names from the embedded dataset, filtered by first letter, origin, kind and gender.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		a.pickCmd(),
		a.fullCmd(),
		a.countCmd(),
		a.originsCmd(),
		a.statsCmd(),
		compileCmd(),
		serveCmd(),
	)
	return root
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(nil)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "namegen: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) dataset() *names.Dataset {
	if a.ds == nil {
		a.ds = names.Load()
	}
	return a.ds
}

// filterFlags are shared by pick, full and count.
type filterFlags struct {
	letters []string
	origins []string
	kind    string
	gender  string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVarP(&f.letters, "letter", "l", nil, "first letter to match, repeatable or comma separated")
	fs.StringSliceVarP(&f.origins, "origin", "o", nil, "origin tag to match, repeatable or comma separated")
	fs.StringVarP(&f.kind, "kind", "k", query.Any, "first, last or any")
	fs.StringVarP(&f.gender, "gender", "g", query.Any, "male, female, unisex or any; applies to first names only")
}

func (f *filterFlags) generator(ds *names.Dataset) (*names.Generator, error) {
	return query.Params{
		Letters: f.letters,
		Origins: f.origins,
		Kind:    f.kind,
		Gender:  f.gender,
	}.Build(ds)
}

// drawFlags are shared by pick and full.
type drawFlags struct {
	count int
	seed  uint64
}

func (d *drawFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&d.count, "count", "n", 1, "number of independent draws")
	fs.Uint64Var(&d.seed, "seed", 0, "seed for a reproducible sequence")
}

func (d *drawFlags) rand(cmd *cobra.Command) (names.Rand, error) {
	if d.count < 1 {
		return nil, fmt.Errorf("--count must be at least 1, got %d", d.count)
	}
	if cmd.Flags().Changed("seed") {
		return seeded(d.seed), nil
	}
	return names.SharedRand(), nil
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
