package reader

import (
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/errors"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
	"github.com/matzehuels/ihmgraph/pkg/observability"
)

// Options configures Read and ReadBlock.
type Options struct {
	// Logger receives debug output about skipped categories. Defaults to
	// log.Default().
	Logger *log.Logger

	// Handlers are added to the defaults. A handler for a category that a
	// default handler also serves replaces the default. Every handler sees
	// its rows in file order, interleaved with the other categories as
	// they appear in the block.
	Handlers []Handler

	// Source names the input in logs and hooks, e.g. a file name.
	Source string
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// handlers returns the dispatch table, keyed by lower-case category name.
func (o Options) handlers() map[string]Handler {
	byName := make(map[string]Handler)
	for _, h := range slices.Concat(DefaultHandlers(), o.Handlers) {
		byName[strings.ToLower(h.Category())] = h
	}
	return byName
}

// Read parses r and returns one system per data block.
func Read(ctx context.Context, r io.Reader, opts Options) ([]*ihm.System, error) {
	start := time.Now()
	observability.IO().OnReadStart(ctx, opts.Source)

	systems, rows, err := read(ctx, r, opts)

	observability.IO().OnReadComplete(ctx, opts.Source, len(systems), rows, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return systems, nil
}

func read(ctx context.Context, r io.Reader, opts Options) ([]*ihm.System, int, error) {
	blocks, err := cif.Parse(r)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", sourceName(opts.Source))
	}
	var (
		systems []*ihm.System
		rows    int
	)
	for _, b := range blocks {
		s, err := readBlock(ctx, b, opts)
		if err != nil {
			return nil, rows, err
		}
		rows += s.handled
		systems = append(systems, s.System)
	}
	return systems, rows, nil
}

// ReadBlock builds the system of one parsed data block.
func ReadBlock(ctx context.Context, b *cif.Block, opts Options) (*ihm.System, error) {
	s, err := readBlock(ctx, b, opts)
	if err != nil {
		return nil, err
	}
	return s.System, nil
}

func readBlock(ctx context.Context, b *cif.Block, opts Options) (*Session, error) {
	logger := opts.logger()
	s := NewSession(ihm.NewSystem(b.Name), logger)
	byName := opts.handlers()

	for _, row := range b.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := strings.ToLower(row.Category)
		h, ok := byName[name]
		if !ok {
			s.skipped[name]++
			continue
		}
		if err := h.Handle(s, row.Record); err != nil {
			return nil, blockError(b.Name, err)
		}
		s.handled++
	}

	for _, name := range b.Categories() {
		if n := s.skipped[strings.ToLower(name)]; n > 0 {
			logger.Debug("skipped category", "block", b.Name, "category", name, "rows", n)
		}
	}
	if err := s.Finish(); err != nil {
		return nil, blockError(b.Name, err)
	}
	return s, nil
}

// blockError names the data block in err, keeping its code.
func blockError(block string, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInvalidFormat
	}
	return errors.Wrap(code, err, "data_%s", block)
}

func sourceName(source string) string {
	if source == "" {
		return "input"
	}
	return source
}
