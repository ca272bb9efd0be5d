package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/penwyp/go-peak-window/internal/core/model"
	"github.com/penwyp/go-peak-window/internal/util"
)

// Formatter renders an evaluation report
type Formatter interface {
	Format(report *model.Report) error
}

// Supported output formats
const (
	FormatTable   = "table"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatSummary = "summary"
)

// Formats lists the accepted output format names
var Formats = []string{FormatTable, FormatJSON, FormatCSV, FormatSummary}

// New returns the formatter for the given format writing to w
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatTable, "":
		return NewTableFormatter(w), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatSummary:
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (expected one of %s)",
			format, strings.Join(Formats, ", "))
	}
}

// statusLabel returns the human label for a case status
func statusLabel(status model.CaseStatus) string {
	switch status {
	case model.StatusPassed:
		return "✓ pass"
	case model.StatusFailed:
		return "✗ FAIL"
	case model.StatusError:
		return "! error"
	default:
		return "- n/a"
	}
}

func statusColor(status model.CaseStatus) string {
	switch status {
	case model.StatusPassed:
		return util.ColorGreen
	case model.StatusFailed, model.StatusError:
		return util.ColorRed
	default:
		return util.ColorYellow
	}
}

// terminalOf returns w as a terminal file, or nil
func terminalOf(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok && util.IsTerminal(f) {
		return f
	}
	return nil
}
