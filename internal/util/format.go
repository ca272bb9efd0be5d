package util

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumber abbreviates large counts
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// FormatSequence renders box heights as "[8 6 2 5]"
func FormatSequence(seq []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range seq {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(']')
	return b.String()
}

// FormatOptionalInt renders nil as "-"
func FormatOptionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
