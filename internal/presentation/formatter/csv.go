package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-peak-window/internal/core/model"
	"github.com/penwyp/go-peak-window/internal/util"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(report *model.Report) error {
	w := csv.NewWriter(f.w)

	headers := []string{"Case", "Input", "Expected", "Forward", "Reverse", "Symmetric", "Steps", "Status", "Error"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, r := range report.Results {
		record := []string{
			r.Name,
			strings.Trim(util.FormatSequence(r.Input), "[]"),
			util.FormatOptionalInt(r.Expected),
			strconv.Itoa(r.Forward),
			strconv.Itoa(r.Reverse),
			strconv.FormatBool(r.Symmetric),
			strconv.Itoa(r.Steps),
			string(r.Status),
			r.Error,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
