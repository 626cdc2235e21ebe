package ui

import (
	"slices"
	"strings"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`. The mono theme leaves every color
// empty, which Paint renders as plain text.
type Theme struct {
	Title, Muted, Faint, Accent, Success, Error, Pending string
	Low, Medium, High                                   string
	BoxUnchecked, BoxChecked                            string
	CornerTL, CornerTR, CornerBL, CornerBR              string
	H, V                                                string
	SymDone, SymUnchecked                               string
}

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

var themes = map[string]Theme{
	"classic": {
		Title: bold, Muted: fgGray, Faint: faint, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		Low: fgBlue, Medium: fgYellow, High: fgMagenta,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymUnchecked: "•",
	},
	"neon": {
		Title: "\033[95m", // bright magenta
		Muted: fgGray, Faint: faint, Accent: "\033[96m",
		Success: fgGreen, Error: fgRed, Pending: "\033[93m",
		Low: "\033[96m", Medium: "\033[93m", High: "\033[91m",
		BoxUnchecked: "◻", BoxChecked: "◼",
		CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
		H: "─", V: "│",
		SymDone: "✔", SymUnchecked: "•",
	},
	"mono": {
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
		H: "-", V: "|",
		SymDone: "x", SymUnchecked: "-",
	},
}

var current Theme

func init() { SetTheme("classic") }

// ValidTheme reports whether name is one of Themes, ignoring case.
func ValidTheme(name string) bool {
	return slices.Contains(Themes, strings.ToLower(name))
}

// SetTheme switches the palette. Unknown names fall back to classic.
func SetTheme(name string) {
	th, ok := themes[strings.ToLower(name)]
	if !ok {
		th = themes["classic"]
	}
	current = th
}

// Expose what renderers need
func Current() Theme { return current }
