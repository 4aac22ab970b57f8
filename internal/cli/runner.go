package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options carries what the subcommands need from main.
type Options struct {
	Group  bool // list grouped by pending/done
	Store  *todo.Store
	Stdout io.Writer
	Stderr io.Writer

	// Interactive runs the full-screen UI for the "ui" subcommand.
	Interactive func(ctx context.Context) error
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// The store must already be loaded, except for "ui" which loads it itself.
func Run(ctx context.Context, args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Stdout)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ls", "list":
		return doList(opt, strings.Join(a, " "))

	case "add":
		if len(a) == 0 {
			ui.Fail(opt.Stderr, "usage: tada add <text...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "done":
		if len(a) != 1 {
			ui.Fail(opt.Stderr, "usage: tada done <index|id>")
			return 2
		}
		return doToggle(opt, a[0])

	case "rm":
		if len(a) != 1 {
			ui.Fail(opt.Stderr, "usage: tada rm <index|id>")
			return 2
		}
		return doRemove(opt, a[0])

	case "ui":
		if opt.Interactive == nil {
			ui.Fail(opt.Stderr, "ui: interactive mode unavailable")
			return 1
		}
		if err := opt.Interactive(ctx); err != nil {
			ui.Fail(opt.Stderr, "ui: "+err.Error())
			return 1
		}
		return 0
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tada - a tiny todo list

Usage:
  tada [flags] <subcommand> [args]

Subcommands:
  add <text...>      Add a new item (text can be multiple words)
  ls [query...]      List items, optionally only those containing query
  done <index|id>    Toggle done for the item at 1-based index (or with id)
  rm <index|id>      Remove the item at 1-based index (or with id)
  ui                 Interactive list with search

Flags:
  -config <path>     Config file (default ~/.config/tada/config.toml)
  -backend <name>    file, sqlite or memory
  -data-dir <dir>    Where the list is stored
  -key <name>        Storage key of the list (default my-todos)
  -log-level <lvl>   debug, info, warn or error
  -log-file <path>   Write logs to this file
  -theme <name>      classic, neon or mono
  -color             Force colored output
  -no-color          Disable colored output
  -group             Group ls output by pending/done

Examples:
  tada add "Buy milk"
  tada ls milk
  tada done 2
  tada rm 3
`)
}

// -------------- subcommand impls ----------------

func doList(opt Options, query string) int {
	items := opt.Store.List()
	visible := todo.Filter(items, query)

	d, p := items.Stats()
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymPending), p,
		ui.C(t.Accent, "Total"), len(items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)))
	if query != "" {
		lines = append(lines, ui.C(t.Accent, fmt.Sprintf("Search %q: %d of %d", query, len(visible), len(items))))
	}
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(items, visible)...)
	} else {
		lines = append(lines, flatLines(items, visible)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `tada add \"Buy milk\"`"))
	ui.Panel(opt.Stdout, lines)
	return 0
}

func doAdd(opt Options, text string) int {
	before := len(opt.Store.List())
	items, err := opt.Store.Add(text)
	if err != nil {
		ui.Fail(opt.Stderr, "add: "+err.Error())
		return 1
	}
	if len(items) == before {
		ui.Note(opt.Stdout, "nothing to add")
		return 0
	}
	ui.OK(opt.Stdout, fmt.Sprintf("added #%d", len(items)))
	return 0
}

func doToggle(opt Options, ref string) int {
	it, code := resolve(opt, ref)
	if code != 0 {
		return code
	}
	items, err := opt.Store.ToggleComplete(it.ID)
	if err != nil {
		ui.Fail(opt.Stderr, "done: "+err.Error())
		return 1
	}
	if i := items.Index(it.ID); i >= 0 && items[i].Completed {
		ui.OK(opt.Stdout, "done")
	} else {
		ui.OK(opt.Stdout, "reopened")
	}
	return 0
}

func doRemove(opt Options, ref string) int {
	it, code := resolve(opt, ref)
	if code != 0 {
		return code
	}
	if _, err := opt.Store.Delete(it.ID); err != nil {
		ui.Fail(opt.Stderr, "rm: "+err.Error())
		return 1
	}
	ui.OK(opt.Stdout, "removed")
	return 0
}

// resolve maps a 1-based index or an item id to the item.
func resolve(opt Options, ref string) (model.Item, int) {
	items := opt.Store.List()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			ui.Fail(opt.Stderr, fmt.Sprintf("index out of range: have %d, got %d", len(items), n))
			ui.Note(opt.Stderr, "Hint: run `tada ls` to see valid indexes")
			return model.Item{}, 2
		}
		return items[n-1], 0
	}
	if i := items.Index(ref); i >= 0 {
		return items[i], 0
	}
	ui.Fail(opt.Stderr, "no item with id "+ref)
	ui.Note(opt.Stderr, "Hint: run `tada ls` to see valid indexes")
	return model.Item{}, 2
}

// -------------- rendering helpers --------------

// flatLines renders visible items numbered by their place in all.
func flatLines(all, visible model.List) []string {
	if len(visible) == 0 {
		if len(all) == 0 {
			return []string{ui.C(ui.Current().Muted, "no items")}
		}
		return []string{ui.C(ui.Current().Muted, "no matches")}
	}
	t := ui.Current()
	out := make([]string, 0, len(visible))
	for _, it := range visible {
		idx := fmt.Sprintf("%2d.", all.Index(it.ID)+1)
		box, color := t.BoxUnchecked, t.Muted
		if it.Completed {
			box, color = t.BoxChecked, t.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(t.Muted, idx), ui.C(color, box), ui.Truncate(it.Text, 80)))
	}
	return out
}

func groupLines(all, visible model.List) []string {
	var pend, done model.List
	for _, it := range visible {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(all, pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(all, done)...)
	}
	return lines
}
