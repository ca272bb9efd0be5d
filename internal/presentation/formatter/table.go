package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-peak-window/internal/core/model"
	"github.com/penwyp/go-peak-window/internal/util"
)

// fixedColumnsWidth approximates the width taken by every column but Input
const fixedColumnsWidth = 60

type TableFormatter struct {
	w             io.Writer
	headers       []string
	color         bool
	maxInputWidth int
}

// NewTableFormatter renders a bordered table. When w is a terminal, status
// cells are colored and the Input column is cut to fit the terminal width.
func NewTableFormatter(w io.Writer) *TableFormatter {
	f := &TableFormatter{
		w:       w,
		headers: []string{"Case", "Input", "Expected", "Forward", "Reverse", "Steps", "Status"},
	}
	if tty := terminalOf(w); tty != nil {
		f.color = true
		f.maxInputWidth = max(util.TerminalWidth(tty)-fixedColumnsWidth, 12)
	}
	return f
}

func (f *TableFormatter) Format(report *model.Report) error {
	rows := make([][]string, 0, len(report.Results))
	for _, r := range report.Results {
		input := util.FormatSequence(r.Input)
		if f.maxInputWidth > 0 {
			input = util.TruncateToWidth(input, f.maxInputWidth)
		}
		reverse := strconv.Itoa(r.Reverse)
		if !r.Symmetric && r.Status != model.StatusError {
			reverse += "*"
		}
		rows = append(rows, []string{
			r.Name,
			input,
			util.FormatOptionalInt(r.Expected),
			strconv.Itoa(r.Forward),
			reverse,
			util.FormatNumber(r.Steps),
			statusLabel(r.Status),
		})
	}

	widths := f.calculateColumnWidths(rows)

	var b strings.Builder
	f.writeBorder(&b, widths, "top")
	f.writeRow(&b, f.headers, widths, nil)
	f.writeBorder(&b, widths, "middle")
	for i, row := range rows {
		f.writeRow(&b, row, widths, &report.Results[i])
	}
	f.writeBorder(&b, widths, "bottom")
	fmt.Fprintf(&b, "%d cases: %d passed, %d failed, %d unchecked", report.Total, report.Passed, report.Failed, report.Unchecked)
	if report.Errors > 0 {
		fmt.Fprintf(&b, ", %d errors", report.Errors)
	}
	b.WriteString("\n")

	_, err := io.WriteString(f.w, b.String())
	return err
}

// calculateColumnWidths sizes each column to its widest cell
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], util.GetDisplayWidth(cell))
		}
	}
	return widths
}

func (f *TableFormatter) writeBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
}

// writeRow writes one row; text columns are left aligned, numbers right aligned
func (f *TableFormatter) writeRow(b *strings.Builder, cells []string, widths []int, result *model.CaseResult) {
	b.WriteString("│")
	for i, cell := range cells {
		leftAlign := i == 0 || i == 1 || i == len(cells)-1
		padded := util.PadString(cell, widths[i], leftAlign)
		if f.color && result != nil && i == len(cells)-1 {
			padded = util.Colorize(padded, statusColor(result.Status))
		}
		b.WriteString(" ")
		b.WriteString(padded)
		b.WriteString(" │")
	}
	b.WriteString("\n")
}
