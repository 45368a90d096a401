package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/actuclaim/actuclaim/internal/domain"
)

// ConsoleFormatter renders a plain-text report for terminals.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(dc *domain.DamagesCase) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "ECONOMIC DAMAGES CALCULATION")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf)

	for _, s := range Sections(dc) {
		fmt.Fprintln(&buf, strings.ToUpper(s.Title))
		fmt.Fprintln(&buf, strings.Repeat("-", len(s.Title)))
		width := labelWidth(s.Lines)
		for _, l := range s.Lines {
			fmt.Fprintf(&buf, "  %-*s %s\n", width+1, l.Label+":", l.Value)
		}
		if s.Note != "" {
			fmt.Fprintf(&buf, "  Note: %s\n", s.Note)
		}
		fmt.Fprintln(&buf)
	}

	if len(dc.Notes) > 0 {
		fmt.Fprintln(&buf, "ASSUMPTIONS & ADJUSTMENTS")
		fmt.Fprintln(&buf, "-------------------------")
		for _, n := range dc.Notes {
			fmt.Fprintf(&buf, "• %s\n", n.Message)
		}
	}
	return buf.Bytes(), nil
}

func labelWidth(lines []Line) int {
	w := 0
	for _, l := range lines {
		if len(l.Label) > w {
			w = len(l.Label)
		}
	}
	return w
}
