// Package logging builds the charmbracelet/log logger shared by the CLI,
// the TUI and the store.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options holds logger configuration.
type Options struct {
	Level           string
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns warn-level, untimestamped options.
func DefaultOptions() Options {
	return Options{
		Level:  "warn",
		Prefix: "tada",
	}
}

// New returns a text logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	}), nil
}

// OpenFile returns a timestamped logger appending to path, and the file to
// close when done.
func OpenFile(path string, opts Options) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	opts.ReportTimestamp = true
	l, err := New(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return l, f, nil
}
