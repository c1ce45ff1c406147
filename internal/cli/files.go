package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/ihmgraph/pkg/errors"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
	"github.com/matzehuels/ihmgraph/pkg/ihm/reader"
)

// stdio names standard input or output in file arguments.
const stdio = "-"

// readSystems reads every data block of path, or of stdin for "-".
func readSystems(ctx context.Context, path string, stdin io.Reader) ([]*ihm.System, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var r io.Reader = stdin
	if path != stdio {
		f, err := os.Open(path)
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
		}
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	systems, err := reader.Read(ctx, r, reader.Options{Logger: logger, Source: filepath.Base(path)})
	if err != nil {
		return nil, err
	}
	if len(systems) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: no data blocks", path)
	}
	prog.done(pluralize(len(systems), "Read %d data block", "Read %d data blocks"))
	return systems, nil
}

// writeOutput calls write with path opened for writing, or with stdout for
// "-" or an empty path. A partially written file is removed on error.
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" || path == stdio {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf(one, n)
	}
	return fmt.Sprintf(many, n)
}
