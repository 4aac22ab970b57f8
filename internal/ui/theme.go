package ui

import "strings"

// Theme bundles palette, check boxes and box borders.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	SymDone, SymPending                           string

	plain bool
}

var themes = map[string]Theme{
	"classic": {
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymPending: "•",
	},
	"neon": {
		Title: "\033[95m", // bright magenta
		Muted: fgGray, Accent: "\033[96m",
		Success: fgGreen, Error: fgRed, Pending: "\033[93m",
		BoxUnchecked: "◻", BoxChecked: "◼",
		CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
		H: "─", V: "│",
		SymDone: "✔", SymPending: "•",
	},
	"mono": {
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
		H: "-", V: "|",
		SymDone: "x", SymPending: "-",
		plain: true,
	},
}

var current = themes["classic"]

// SetTheme switches the theme; unknown names fall back to classic.
func SetTheme(name string) {
	t, ok := themes[strings.ToLower(name)]
	if !ok {
		t = themes["classic"]
	}
	current = t
}

func Current() Theme { return current }
