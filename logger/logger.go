// Package logger builds the process logger from configuration.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/postsaver/postsaver/common/utils/fsutil"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing to stderr and, when file is set, appending to
// file as well. The returned closer releases the log file.
func New(level, file string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if file != "" {
		f, err := fsutil.OpenAppend(file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %q: %w", file, err)
		}
		out = io.MultiWriter(os.Stderr, f)
		closer = f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	})
	return logger, closer, nil
}
