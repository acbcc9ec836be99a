package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"assetpress/internal/batch"
)

type SummaryRow struct {
	Label string
	Value string
}

// RenderSummary draws the closing label/value table for a batch run.
func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// RenderOutcome draws one per-file status line.
func RenderOutcome(out batch.Outcome) string {
	var status string
	switch out.Status {
	case batch.StatusOK:
		status = okStyle.Render("ok     ")
	case batch.StatusSkipped:
		status = skipStyle.Render("skipped")
	case batch.StatusFailed:
		status = failStyle.Render("failed ")
	}

	line := fmt.Sprintf("%s  %s", status, fileStyle.Render(out.Display))
	if out.Reason != "" {
		line += dimStyle.Render("  " + out.Reason)
	}
	return line
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	valueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	fileStyle  = lipgloss.NewStyle().Foreground(ColorAccent)
	okStyle    = lipgloss.NewStyle().Foreground(ColorSuccess)
	skipStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
	failStyle  = lipgloss.NewStyle().Foreground(ColorFail)
)
