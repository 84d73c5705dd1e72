package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/namekit/internal/dataset"
	"github.com/dmitrymomot/namekit/pkg/names"
)

func compileCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a YAML name list into the embedded dataset format",
		Example: "  namegen compile --in data/names.yaml --out pkg/names/data/names.bson.gz",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			src, err := os.Open(in)
			if err != nil {
				return err
			}
			defer src.Close()

			// A failed compile leaves the previous blob untouched.
			tmp, err := os.CreateTemp(filepath.Dir(out), ".names-*.tmp")
			if err != nil {
				return err
			}
			defer func() {
				if err != nil {
					_ = os.Remove(tmp.Name())
				}
			}()

			stats, err := dataset.Compile(src, tmp)
			if err != nil {
				_ = tmp.Close()
				return err
			}
			if err := tmp.Close(); err != nil {
				return err
			}
			if err := os.Rename(tmp.Name(), out); err != nil {
				return err
			}
			if err := os.Chmod(out, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d names (%d first, %d last)\n",
				out, stats.Total, stats.ByKind[names.First], stats.ByKind[names.Last])
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&in, "in", "", "YAML source file")
	fs.StringVar(&out, "out", "", "destination blob")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	cmd.PreRunE = func(*cobra.Command, []string) error {
		if in == out {
			return errors.New("--in and --out must differ")
		}
		return nil
	}
	return cmd
}
