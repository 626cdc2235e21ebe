package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	reset = "\033[0m"
	bold  = "\033[1m"
	faint = "\033[2m"

	fgGray    = "\033[90m"
	fgGreen   = "\033[32m"
	fgYellow  = "\033[33m"
	fgBlue    = "\033[34m"
	fgRed     = "\033[31m"
	fgMagenta = "\033[35m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

// SetColorForcing overrides terminal detection: force paints every writer,
// disable paints none. disable wins when both are set.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// colorFor reports whether escape codes should go to w. Without forcing,
// only writers backed by a terminal get color.
func colorFor(w io.Writer) bool {
	switch {
	case disableColor:
		return false
	case forceColor:
		return true
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Paint wraps s in color when the text is headed for w and w takes color.
// An empty color (the mono theme) leaves s as is.
func Paint(w io.Writer, color, s string) string {
	if color == "" || !colorFor(w) {
		return s
	}
	return color + s + reset
}

// C paints s for standard output.
func C(color, s string) string { return Paint(os.Stdout, color, s) }

// Dim is the faint style used for row numbers.
func Dim(s string) string { return C(current.Faint, s) }

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, Paint(w, current.Success, symCheck+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, Paint(w, current.Error, symCross+" "+msg))
}
