package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-peak-window/internal/core/model"
	"github.com/penwyp/go-peak-window/internal/util"
)

// SummaryFormatter prints aggregate counts and lists failing cases.
type SummaryFormatter struct {
	w io.Writer
}

func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

func (f *SummaryFormatter) Format(report *model.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Cases:     %s\n", util.FormatNumber(report.Total))
	fmt.Fprintf(&b, "Passed:    %s\n", util.FormatNumber(report.Passed))
	fmt.Fprintf(&b, "Failed:    %s\n", util.FormatNumber(report.Failed))
	fmt.Fprintf(&b, "Unchecked: %s\n", util.FormatNumber(report.Unchecked))
	if report.Errors > 0 {
		fmt.Fprintf(&b, "Errors:    %s\n", util.FormatNumber(report.Errors))
	}
	fmt.Fprintf(&b, "Largest window: %d\n", report.Largest)

	for _, r := range report.Results {
		switch r.Status {
		case model.StatusFailed:
			fmt.Fprintf(&b, "FAIL %s: input=%s expected=%s forward=%d reverse=%d\n",
				r.Name, util.FormatSequence(r.Input), util.FormatOptionalInt(r.Expected), r.Forward, r.Reverse)
		case model.StatusError:
			fmt.Fprintf(&b, "ERROR %s: %s\n", r.Name, r.Error)
		}
	}

	_, err := io.WriteString(f.w, b.String())
	return err
}
