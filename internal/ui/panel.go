package ui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// visibleWidth is the terminal cell width of s without escape codes.
func visibleWidth(s string) int { return runewidth.StringWidth(stripANSI(s)) }

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", bar, done*100/total)
}

// Panel writes lines inside a frame drawn with the current theme.
func Panel(w io.Writer, lines []string) {
	t := current
	maxw := 0
	for _, ln := range lines {
		if vw := visibleWidth(ln); vw > maxw {
			maxw = vw
		}
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+ln+strings.Repeat(" ", maxw-visibleWidth(ln))+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

// Truncate shortens s to at most n cells, marking the cut with "...".
func Truncate(s string, n int) string {
	if runewidth.StringWidth(s) <= n {
		return s
	}
	return runewidth.Truncate(s, n, "...")
}
