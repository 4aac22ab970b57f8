package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("tada", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, args, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		ui.Fail(os.Stderr, err.Error())
		return 2
	}
	ui.SetTheme(cfg.Theme)
	ui.SetColorMode(ui.ParseColorMode(cfg.Color))
	if !needsStore(args) {
		// help and bare invocations never touch the data directory
		return cli.Run(context.Background(), args, cli.Options{})
	}

	interactive := args[0] == "ui"
	logger, closeLog, err := newLogger(cfg, interactive)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return 1
	}
	defer func() { _ = closeLog.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slot, closeSlot, err := store.Open(ctx, cfg)
	if err != nil {
		ui.Fail(os.Stderr, "open storage: "+err.Error())
		return 1
	}
	defer func() {
		if err := closeSlot.Close(); err != nil {
			logger.Warn("close storage", "err", err)
		}
	}()

	st := todo.New(slot, todo.WithKey(cfg.Key), todo.WithLogger(logger))
	defer func() {
		// saves are fire-and-forget while running; give the last one a
		// chance to land before exit
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(cctx); err != nil {
			logger.Warn("pending save not written", "err", err)
		}
	}()

	// The TUI loads asynchronously; every other subcommand needs the list first.
	if !interactive {
		st.Load(ctx)
	}
	logger.Debug("starting", "cmd", args[0], "backend", cfg.Backend, "config", cfg.File)

	code := cli.Run(ctx, args, cli.Options{
		Group: cfg.Group,
		Store: st,
		Interactive: func(ctx context.Context) error {
			return tui.Run(ctx, st)
		},
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}

func needsStore(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help", "-h", "--help":
		return false
	}
	return true
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newLogger(cfg *config.Config, interactive bool) (*log.Logger, io.Closer, error) {
	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	if interactive || cfg.LogFile != "" {
		return logging.OpenFile(cfg.TUILogFile(), opts)
	}
	l, err := logging.New(os.Stderr, opts)
	if err != nil {
		return nil, nil, err
	}
	return l, nopCloser{}, nil
}
