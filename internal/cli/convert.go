package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/errors"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
	"github.com/matzehuels/ihmgraph/pkg/ihm/dumper"
)

type convertOpts struct {
	output string
	name   string   // new data block name; single-block input only
	repos  []string // DOI=DIR pairs
	top    string   // top directory of every --repo archive
}

func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert IN [OUT]",
		Short: "Read a file and write it back with normalized ids",
		Long: `Read IN and write every data block to OUT (default stdout). Objects are
renumbered in file order and duplicate objects are merged.

--repo DOI=DIR points local files below DIR at the archive with that DOI,
so that the written file references the deposited copy.`,
		Example: `  ihmgraph convert model.cif clean.cif
  ihmgraph convert model.cif --repo 10.5281/zenodo.46266=./nup84 --top-directory nup84-1.0`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				opts.output = args[1]
			}
			return runConvert(cmd.Context(), args[0], cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.name, "name", "", "rename the data block")
	cmd.Flags().StringArrayVar(&opts.repos, "repo", nil, "DOI=DIR archive holding local files (repeatable)")
	cmd.Flags().StringVar(&opts.top, "top-directory", "", "directory the --repo archives unpack to")
	return cmd
}

func runConvert(ctx context.Context, input string, stdin io.Reader, stdout, status io.Writer, opts convertOpts) error {
	repos, err := parseRepos(opts.repos, opts.top)
	if err != nil {
		return err
	}
	systems, err := readSystems(ctx, input, stdin)
	if err != nil {
		return err
	}

	if opts.name != "" {
		if len(systems) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "--name needs a single data block, %s has %d", input, len(systems))
		}
		if err := errors.ValidateBlockName(opts.name); err != nil {
			return err
		}
		systems[0].ID = opts.name
	}
	if len(repos) > 0 {
		for _, s := range systems {
			if err := s.UpdateLocationsInRepositories(repos); err != nil {
				return err
			}
		}
	}

	prog := newProgress(loggerFromContext(ctx))
	err = writeOutput(opts.output, stdout, func(w io.Writer) error {
		return dumper.Write(ctx, w, systems...)
	})
	if err != nil {
		return err
	}
	if opts.output != "" && opts.output != stdio {
		prog.done(pluralize(len(systems), "Wrote %d data block", "Wrote %d data blocks"))
		printFile(status, opts.output)
	}
	return nil
}

// parseRepos turns DOI=DIR flags into repositories.
func parseRepos(specs []string, top string) ([]*ihm.Repository, error) {
	if top != "" {
		if err := errors.ValidatePath(top); err != nil {
			return nil, err
		}
	}
	var repos []*ihm.Repository
	for _, s := range specs {
		doi, dir, ok := strings.Cut(s, "=")
		doi, dir = strings.TrimSpace(doi), strings.TrimSpace(dir)
		if !ok || doi == "" || dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--repo %q: want DOI=DIR", s)
		}
		repos = append(repos, &ihm.Repository{
			DOI:          cif.Str(doi),
			Root:         dir,
			TopDirectory: top,
		})
	}
	return repos, nil
}
