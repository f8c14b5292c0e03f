package reports

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	apperrors "nbastats/internal/errors"
	"nbastats/pkg/contracts/domain"
)

// DefaultBarWidth is the length of the longest bar in characters
const DefaultBarWidth = 40

// TextChartRenderer draws a horizontal bar chart as plain text
type TextChartRenderer struct {
	w     io.Writer
	width int
}

// NewTextChartRenderer writes charts to w. width <= 0 selects DefaultBarWidth.
func NewTextChartRenderer(w io.Writer, width int) *TextChartRenderer {
	if width <= 0 {
		width = DefaultBarWidth
	}
	return &TextChartRenderer{w: w, width: width}
}

// Render implements Renderer
func (r *TextChartRenderer) Render(ctx context.Context, chart domain.ChartSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.WriteString(r.w, r.format(chart)); err != nil {
		return apperrors.NewRenderError("failed to write text chart", err)
	}
	return nil
}

func (r *TextChartRenderer) format(chart domain.ChartSpec) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", chart.Title)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", utf8.RuneCountInString(chart.Title)))
	fmt.Fprintf(&b, "%s vs %s\n\n", chart.XLabel, chart.YLabel)

	if len(chart.Entries) == 0 {
		b.WriteString("(no data)\n")
		return b.String()
	}

	labelWidth, peak := 0, 0.0
	for _, e := range chart.Entries {
		labelWidth = max(labelWidth, utf8.RuneCountInString(e.Label))
		peak = max(peak, e.Value)
	}

	for _, e := range chart.Entries {
		bar := 0
		if peak > 0 && e.Value > 0 {
			bar = int(e.Value/peak*float64(r.width) + 0.5)
		}
		fmt.Fprintf(&b, "%-*s | %s %.2f\n", labelWidth, e.Label, strings.Repeat("#", bar), e.Value)
	}
	return b.String()
}
