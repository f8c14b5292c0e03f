package reports

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "nbastats/internal/errors"
	"nbastats/pkg/contracts/domain"
)

const (
	chartSheet = "TeamPerformance"
	barColor   = "4682B4" // steelblue
	chartCell  = "D2"
)

// ExcelChartRenderer writes the chart data and a clustered column chart
// into an XLSX workbook.
type ExcelChartRenderer struct {
	path   string
	logger *slog.Logger
}

// NewExcelChartRenderer creates a renderer writing the workbook to path
func NewExcelChartRenderer(path string, logger *slog.Logger) *ExcelChartRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelChartRenderer{
		path:   path,
		logger: logger.With("component", "excel_renderer"),
	}
}

// Path returns the workbook location
func (r *ExcelChartRenderer) Path() string { return r.path }

// Render writes the workbook. An empty chart produces the data sheet
// header only.
func (r *ExcelChartRenderer) Render(ctx context.Context, chart domain.ChartSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), chartSheet); err != nil {
		return r.renderError("failed to name sheet", err)
	}
	if err := writeChartData(f, chart); err != nil {
		return r.renderError("failed to write chart data", err)
	}

	if len(chart.Entries) > 0 {
		if err := f.AddChart(chartSheet, chartCell, columnChart(chart)); err != nil {
			return r.renderError("failed to add chart", err)
		}
	} else {
		r.logger.WarnContext(ctx, "No entries to chart, writing data sheet only")
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).
			WithContext("path", r.path)
	}
	if err := f.SaveAs(r.path); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).
			WithContext("path", r.path)
	}

	r.logger.InfoContext(ctx, "Chart rendered",
		slog.String("path", r.path),
		slog.Int("bars", len(chart.Entries)))
	return nil
}

func (r *ExcelChartRenderer) renderError(msg string, err error) error {
	return apperrors.NewRenderError(msg, err).WithContext("path", r.path)
}

func writeChartData(f *excelize.File, chart domain.ChartSpec) error {
	header := []interface{}{chart.XLabel, chart.YLabel}
	if err := f.SetSheetRow(chartSheet, "A1", &header); err != nil {
		return err
	}
	for i, e := range chart.Entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{e.Label, e.Value}
		if err := f.SetSheetRow(chartSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(chartSheet, "B", "B", 36)
}

func columnChart(chart domain.ChartSpec) *excelize.Chart {
	last := len(chart.Entries) + 1
	return &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", chartSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", chartSheet, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", chartSheet, last),
				Fill:       excelize.Fill{Type: "pattern", Color: []string{barColor}, Pattern: 1},
			},
		},
		Title:  []excelize.RichTextRun{{Text: chart.Title}},
		Legend: excelize.ChartLegend{Position: "none"},
		PlotArea: excelize.ChartPlotArea{
			ShowVal: true,
		},
		XAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: chart.XLabel}},
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: chart.YLabel}},
		},
		Dimension: excelize.ChartDimension{Width: 960, Height: 540},
	}
}
