package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ihmgraph/pkg/graph"
	"github.com/matzehuels/ihmgraph/pkg/ihm/dumper"
)

func (c *CLI) statsCommand() *cobra.Command {
	var objects bool

	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Count the rows of each category in every data block",
		Long: `Read FILE and print, for each data block, how many rows every category
would have when the block is written back. Use "-" to read stdin.

With --objects the counts are of graph nodes per object kind instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), args[0], cmd.InOrStdin(), cmd.OutOrStdout(), objects)
		},
	}
	cmd.Flags().BoolVar(&objects, "objects", false, "count objects per kind")
	return cmd
}

func runStats(ctx context.Context, path string, stdin io.Reader, w io.Writer, objects bool) error {
	systems, err := readSystems(ctx, path, stdin)
	if err != nil {
		return err
	}
	for _, s := range systems {
		cats, err := dumper.Dump(s)
		if err != nil {
			return err
		}
		printTitle(w, "data_"+s.ID)
		if !objects {
			for _, cat := range cats {
				if len(cat.Rows) > 0 {
					printCount(w, cat.Name, len(cat.Rows))
				}
			}
			continue
		}
		g, err := graph.FromCategories(cats)
		if err != nil {
			return err
		}
		kinds := g.Kinds()
		for _, k := range g.SortedKinds() {
			printCount(w, k, kinds[k])
		}
		printDetail(w, "%d objects, %d links", g.NodeCount(), g.EdgeCount())
	}
	return nil
}
