package ui

import (
	"fmt"
	"io"
	"os"
)

const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

// ColorMode decides when escape codes are emitted.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode maps "auto", "always" and "never" to a ColorMode.
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	}
	return ColorAuto
}

var colorMode = ColorAuto

func SetColorMode(m ColorMode) { colorMode = m }

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func colorOn() bool {
	switch colorMode {
	case ColorAlways:
		return !current.plain
	case ColorNever:
		return false
	}
	return !current.plain && isTTY()
}

// C wraps s in color when color output is on.
func C(color, s string) string {
	if color == "" || !colorOn() {
		return s
	}
	return color + s + reset
}

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, C(current.Success, symCheck+" "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Error, symCross+" "+msg)) }
func Note(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Muted, msg)) }
