package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ihmgraph/pkg/errors"
	"github.com/matzehuels/ihmgraph/pkg/graph"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
	"github.com/matzehuels/ihmgraph/pkg/ihm/dumper"
	"github.com/matzehuels/ihmgraph/pkg/render"
)

const (
	formatSVG  = "svg"
	formatDOT  = "dot"
	formatJSON = "json"
	formatPDF  = "pdf"
	formatPNG  = "png"
)

var validFormats = map[string]bool{formatSVG: true, formatDOT: true, formatJSON: true, formatPDF: true, formatPNG: true}

type graphOpts struct {
	output     string
	format     string
	block      string  // data block to draw; default first
	from       string  // draw only what this node reaches
	detailed   bool    // list row attributes in labels
	edgeLabels bool    // label edges with the linking attribute
	scale      float64 // PNG scale factor
}

func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Draw the object graph of a data block",
		Long: `Draw how the objects of FILE refer to each other: models to protocols,
protocols to dataset groups, datasets to the files that hold them.

The format follows the --output extension unless --format is given:
svg, dot, json, pdf or png. PDF and PNG need rsvg-convert on PATH.`,
		Example: `  ihmgraph graph model.cif -o model.svg
  ihmgraph graph model.cif --from "model:1" --detailed -o model1.svg
  ihmgraph graph model.cif -f dot | dot -Tpng > model.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			return runGraph(cmd.Context(), args[0], cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, dot, json, pdf, png")
	cmd.Flags().StringVar(&opts.block, "block", "", "data block name (default first)")
	cmd.Flags().StringVar(&opts.from, "from", "", `only draw objects reachable from this node, e.g. "model:1"`)
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show object attributes")
	cmd.Flags().BoolVar(&opts.edgeLabels, "edge-labels", false, "label edges")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	return cmd
}

// resolveFormat returns format, or the format named by the extension of
// output, defaulting to svg.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	if format == "" {
		format = formatSVG
	}
	if !validFormats[format] {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be svg, dot, json, pdf or png)", format)
	}
	return format, nil
}

func runGraph(ctx context.Context, input string, stdin io.Reader, stdout, status io.Writer, opts graphOpts) error {
	logger := loggerFromContext(ctx)

	systems, err := readSystems(ctx, input, stdin)
	if err != nil {
		return err
	}
	sys, err := pickSystem(systems, opts.block)
	if err != nil {
		return err
	}
	cats, err := dumper.Dump(sys)
	if err != nil {
		return err
	}
	g, err := graph.FromCategories(cats)
	if err != nil {
		return err
	}
	if opts.from != "" {
		if _, ok := g.Node(opts.from); !ok {
			return errors.New(errors.ErrCodeNotFound, "no object %q in data_%s", opts.from, sys.ID)
		}
		g = g.Subgraph(opts.from)
	}
	logger.Infof("Object graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	prog := newProgress(logger)
	data, err := renderGraph(ctx, g, opts)
	if err != nil {
		return err
	}
	err = writeOutput(opts.output, stdout, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return err
	}
	if opts.output != "" && opts.output != stdio {
		prog.done("Rendered " + strings.ToUpper(opts.format))
		printFile(status, opts.output)
	}
	return nil
}

func pickSystem(systems []*ihm.System, name string) (*ihm.System, error) {
	if name == "" {
		return systems[0], nil
	}
	for _, s := range systems {
		if s.ID == name {
			return s, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no data block %q", name)
}

func renderGraph(ctx context.Context, g *graph.Graph, opts graphOpts) ([]byte, error) {
	if opts.format == formatJSON {
		var b strings.Builder
		if err := graph.WriteJSON(g, &b); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	}

	dot := render.ToDOT(g, render.Options{Detailed: opts.detailed, EdgeLabels: opts.edgeLabels})
	switch opts.format {
	case formatDOT:
		return []byte(dot), nil
	case formatSVG:
		return render.RenderSVG(ctx, dot)
	case formatPDF:
		return render.RenderPDF(ctx, dot)
	case formatPNG:
		return render.RenderPNG(ctx, dot, opts.scale)
	}
	return nil, fmt.Errorf("unsupported format: %s", opts.format)
}
