package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Terminal colors
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
)

// DefaultTerminalWidth is used when the output is not a terminal
const DefaultTerminalWidth = 100

// GetDisplayWidth calculates the display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads s with spaces up to width display columns
func PadString(s string, width int, leftAlign bool) string {
	actual := GetDisplayWidth(s)
	if actual >= width {
		return s
	}
	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// TruncateToWidth shortens s to width display columns, marking the cut with an ellipsis
func TruncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "...")
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of f, or DefaultTerminalWidth
func TerminalWidth(f *os.File) int {
	if !IsTerminal(f) {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < 40 {
		return DefaultTerminalWidth
	}
	return width
}

// Colorize wraps text in a color sequence
func Colorize(text, color string) string {
	return fmt.Sprintf("%s%s%s", color, text, ColorReset)
}
