package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/namekit/pkg/names"
)

func (a *app) pickCmd() *cobra.Command {
	var (
		filters filterFlags
		draw    drawFlags
	)
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Print random names matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := filters.generator(a.dataset())
			if err != nil {
				return err
			}
			rnd, err := draw.rand(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for range draw.count {
				n, ok := g.Finish(rnd)
				if !ok {
					return ErrNoMatch
				}
				fmt.Fprintln(out, n.Text)
			}
			return nil
		},
	}
	cmd.Example = `  namegen pick --letter A --origin greek --kind first --gender female
  namegen pick -o irish,welsh -k last -n 5 --seed 42`
	filters.register(cmd)
	draw.register(cmd)
	return cmd
}

func (a *app) fullCmd() *cobra.Command {
	var (
		filters filterFlags
		draw    drawFlags
	)
	cmd := &cobra.Command{
		Use:   "full",
		Short: "Print random \"First Last\" names",
		Long:  "Print random full names. The filters apply to both halves; --kind is ignored and --gender only affects the first name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := filters.generator(a.dataset())
			if err != nil {
				return err
			}
			rnd, err := draw.rand(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for range draw.count {
				first, last, ok := g.FullName(rnd)
				if !ok {
					return ErrNoMatch
				}
				fmt.Fprintf(out, "%s %s\n", first.Text, last.Text)
			}
			return nil
		},
	}
	filters.register(cmd)
	draw.register(cmd)
	return cmd
}

func (a *app) countCmd() *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print how many names match the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := filters.generator(a.dataset())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), g.Count())
			return nil
		},
	}
	filters.register(cmd)
	return cmd
}

func (a *app) originsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "origins",
		Short: "List origin tags with the number of names carrying each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats := a.dataset().Stats()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, o := range names.Origins() {
				fmt.Fprintf(tw, "%s\t%d\n", o, stats.ByOrigin[o])
			}
			return tw.Flush()
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dataset statistics as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a.dataset().Stats())
		},
	}
}
