package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"infra-tco/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes view to w
	Render(w io.Writer, view *EstimateView) error
}

// ForFormat returns the formatter for f
func ForFormat(f Format, showDetails bool) (Formatter, error) {
	switch f {
	case FormatCLI, "":
		return &TableFormatter{ShowDetails: showDetails}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	default:
		return nil, errors.InvalidArgument("unknown output format %q (use cli or json)", f)
	}
}

// JSONFormatter renders the view as JSON
type JSONFormatter struct {
	Indent bool
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes view as JSON
func (f *JSONFormatter) Render(w io.Writer, view *EstimateView) error {
	return RenderJSON(w, view, f.Indent)
}

// RenderJSON writes any view as JSON
func RenderJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return errors.Internal("failed to encode output", err)
	}
	return nil
}

// TableFormatter renders a boxed summary table
type TableFormatter struct {
	ShowDetails bool
}

// Format returns FormatCLI
func (f *TableFormatter) Format() Format { return FormatCLI }

// Render writes view as a table
func (f *TableFormatter) Render(w io.Writer, view *EstimateView) error {
	return RenderTable(w, view, f.ShowDetails)
}

const (
	tableRule   = "─────────────────────────────────────────────────────────────────────────"
	labelWidth  = 50
	amountWidth = 20
)

var titleCaser = cases.Title(language.English)

// RenderTable writes view as a boxed table
func RenderTable(w io.Writer, view *EstimateView, showDetails bool) error {
	tw := &tableWriter{w: w}

	tw.line("┌" + tableRule + "┐")
	tw.row(titleLine(view), "")
	tw.line("├" + tableRule + "┤")

	for _, c := range view.Categories {
		tw.row(fmt.Sprintf("%s (%s)", titleCaser.String(string(c.Category)), c.Percentage), c.Monthly+"/month")
		if showDetails {
			for _, li := range c.LineItems {
				tw.row(fmt.Sprintf("  └─ %s", li.Description), li.Total)
			}
		}
	}

	if len(view.Environments) > 0 {
		tw.line("├" + tableRule + "┤")
		for _, e := range view.Environments {
			tw.row(fmt.Sprintf("%s: %d nodes, %s/node", e.Environment, e.Nodes, e.CostPerNode), e.Monthly+"/month")
		}
	}

	tw.line("├" + tableRule + "┤")
	tw.row("TOTAL MONTHLY", view.MonthlyTotal)
	tw.row("TOTAL YEARLY", view.YearlyTotal)
	tw.row("3-YEAR TCO", view.ThreeYearTCO)
	tw.row("5-YEAR TCO", view.FiveYearTCO)
	tw.line("└" + tableRule + "┘")

	if len(view.Notes) > 0 {
		tw.line("")
		for _, n := range view.Notes {
			tw.line("Note: " + n)
		}
	}
	return tw.err
}

func titleLine(view *EstimateView) string {
	parts := []string{strings.ToUpper(view.Provider)}
	if view.Distribution != "" {
		parts = append(parts, view.Distribution)
	}
	if view.Region != "" {
		parts = append(parts, view.Region)
	}
	parts = append(parts, view.PricingType)
	return strings.Join(parts, " · ")
}

// tableWriter remembers the first write error
type tableWriter struct {
	w   io.Writer
	err error
}

func (t *tableWriter) line(s string) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintln(t.w, s)
}

func (t *tableWriter) row(label, amount string) {
	t.line(fmt.Sprintf("│ %-*s %*s │", labelWidth, truncate(label, labelWidth), amountWidth, amount))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
