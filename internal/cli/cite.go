package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ihmgraph/pkg/ihm"
	"github.com/matzehuels/ihmgraph/pkg/ihm/dumper"
	"github.com/matzehuels/ihmgraph/pkg/integrations/pubmed"
)

type citeOpts struct {
	output  string
	into    string // file whose first data block receives the citations
	refresh bool
}

func (c *CLI) citeCommand() *cobra.Command {
	var opts citeOpts

	cmd := &cobra.Command{
		Use:   "cite PMID...",
		Short: "Fetch citations from PubMed and print them as mmCIF",
		Long: `Look up each PubMed id and write the citations as a _citation table.

With --into FILE the citations are added to the first data block of FILE
instead, skipping ids the block already cites. Lookups are cached; use
--refresh to fetch them again.`,
		Example: `  ihmgraph cite 25161197
  ihmgraph cite 25161197 --into model.cif -o cited.cif`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := c.openCache(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()
			client := c.newPubMed(backend)
			return runCite(cmd.Context(), client, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.into, "into", "", "add the citations to this file")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached lookups")
	return cmd
}

func runCite(ctx context.Context, client *pubmed.Client, pmids []string, stdin io.Reader, stdout, status io.Writer, opts citeOpts) error {
	logger := loggerFromContext(ctx)

	systems := []*ihm.System{ihm.NewSystem("citations")}
	if opts.into != "" {
		var err error
		if systems, err = readSystems(ctx, opts.into, stdin); err != nil {
			return err
		}
	}
	target := systems[0]

	cited := make(map[string]bool)
	for cit := range target.AllCitations() {
		if cit.PMID.IsPresent() {
			cited[cit.PMID.Text()] = true
		}
	}

	prog := newProgress(logger)
	added := 0
	for _, pmid := range pmids {
		if cited[pmid] {
			logger.Debug("Already cited", "pmid", pmid)
			continue
		}
		cit, err := client.FetchCitation(ctx, pmid, opts.refresh)
		if err != nil {
			return err
		}
		logger.Debug("Fetched citation", "pmid", pmid, "title", cit.Title.Text())
		target.Citations = append(target.Citations, cit)
		cited[pmid] = true
		added++
	}
	prog.done(pluralize(added, "Fetched %d citation", "Fetched %d citations"))

	err := writeOutput(opts.output, stdout, func(w io.Writer) error {
		return dumper.Write(ctx, w, systems...)
	})
	if err != nil {
		return err
	}
	if opts.output != "" && opts.output != stdio {
		printFile(status, opts.output)
	}
	if skipped := len(pmids) - added; skipped > 0 {
		printInfo(status, "%d already cited", skipped)
	}
	return nil
}
