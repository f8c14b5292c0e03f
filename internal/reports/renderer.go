package reports

import (
	"context"

	"nbastats/pkg/contracts/domain"
)

// Renderer draws one bar chart from ranked entries
type Renderer interface {
	Render(ctx context.Context, chart domain.ChartSpec) error
}

// ChartFor builds the team performance chart from ranked entries
func ChartFor(title, xLabel, yLabel string, entries []domain.RankedEntry) domain.ChartSpec {
	if entries == nil {
		entries = []domain.RankedEntry{}
	}
	return domain.ChartSpec{
		Title:   title,
		XLabel:  xLabel,
		YLabel:  yLabel,
		Entries: entries,
	}
}

// Multi renders the chart with every renderer in order and stops at the
// first failure.
type Multi []Renderer

// Render implements Renderer
func (m Multi) Render(ctx context.Context, chart domain.ChartSpec) error {
	for _, r := range m {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Render(ctx, chart); err != nil {
			return err
		}
	}
	return nil
}
