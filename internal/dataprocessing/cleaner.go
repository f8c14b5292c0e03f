package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	apperrors "nbastats/internal/errors"
	"nbastats/pkg/contracts/domain"
)

// DropReason explains why the cleaner removed a row
type DropReason string

const (
	ReasonMissing     DropReason = "missing"
	ReasonNegative    DropReason = "negative"
	ReasonNonIntegral DropReason = "non_integral"
	ReasonNonPositive DropReason = "non_positive"
)

// CleanOptions lists the columns the cleaner checks
type CleanOptions struct {
	// Required cells must be present; numeric ones must also be
	// non-negative, and integral for int columns.
	Required []string
	// Positive cells must be strictly greater than zero
	Positive []string
}

// DefaultCleanOptions keeps rows usable for both the scorer ranking and
// the points-per-game aggregation.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		Required: []string{domain.ColumnPlayer, domain.ColumnTeam, domain.ColumnGames, domain.ColumnPoints},
		Positive: []string{domain.ColumnGames},
	}
}

// DropKey identifies the first check a dropped row failed
type DropKey struct {
	Column string
	Reason DropReason
}

// String returns "column:reason"
func (k DropKey) String() string {
	return k.Column + ":" + string(k.Reason)
}

// DropCount is one line of a CleanReport breakdown
type DropCount struct {
	DropKey
	Rows int
}

// CleanReport counts the rows the cleaner kept and dropped.
// Each dropped row is counted once, under the first check it failed.
type CleanReport struct {
	InputRows   int
	KeptRows    int
	DroppedRows int
	Drops       map[DropKey]int
}

// Breakdown returns the drop counts ordered by column then reason
func (r CleanReport) Breakdown() []DropCount {
	out := make([]DropCount, 0, len(r.Drops))
	for k, n := range r.Drops {
		out = append(out, DropCount{DropKey: k, Rows: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

// Summary converts the report into its exported form
func (r CleanReport) Summary() domain.CleanSummary {
	s := domain.CleanSummary{
		InputRows:   r.InputRows,
		KeptRows:    r.KeptRows,
		DroppedRows: r.DroppedRows,
	}
	if len(r.Drops) > 0 {
		s.Reasons = make(map[string]int, len(r.Drops))
		for k, n := range r.Drops {
			s.Reasons[k.String()] = n
		}
	}
	return s
}

// LogValue implements slog.LogValuer
func (r CleanReport) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("input_rows", r.InputRows),
		slog.Int("kept_rows", r.KeptRows),
		slog.Int("dropped_rows", r.DroppedRows),
	}
	for _, d := range r.Breakdown() {
		attrs = append(attrs, slog.Int(d.String(), d.Rows))
	}
	return slog.GroupValue(attrs...)
}

type cleanCheck struct {
	name     string
	index    int
	ctype    ColumnType
	positive bool
}

// Clean returns a new table holding only the rows that pass every check
// in opts. Failing rows are dropped, not reported as errors; the report
// says how many and why. t is not modified.
//
// A column named in opts but absent from the schema is a VALIDATION error.
func Clean(t *Table, opts CleanOptions) (*Table, CleanReport, error) {
	checks, err := buildChecks(t.Schema(), opts)
	if err != nil {
		return nil, CleanReport{}, err
	}

	report := CleanReport{
		InputRows: t.Len(),
		Drops:     make(map[DropKey]int),
	}

	cleaned := t.Filter(func(i int) bool {
		for _, c := range checks {
			if reason, ok := checkCell(t.rows[i][c.index], c); !ok {
				report.Drops[DropKey{Column: c.name, Reason: reason}]++
				return false
			}
		}
		return true
	})

	report.KeptRows = cleaned.Len()
	report.DroppedRows = report.InputRows - report.KeptRows
	return cleaned, report, nil
}

func buildChecks(schema Schema, opts CleanOptions) ([]cleanCheck, error) {
	byName := make(map[string]int)
	var checks []cleanCheck

	add := func(name string, positive bool) error {
		col, ok := schema.Column(name)
		if !ok {
			return apperrors.NewValidationError(fmt.Sprintf("clean column %q not in table", name)).
				WithContext("column", name)
		}
		if positive && !col.Type.Numeric() {
			return apperrors.NewValidationError(fmt.Sprintf("positive check on non-numeric column %q", name)).
				WithContext("column", name)
		}
		if i, seen := byName[name]; seen {
			checks[i].positive = checks[i].positive || positive
			return nil
		}
		byName[name] = len(checks)
		checks = append(checks, cleanCheck{
			name:     name,
			index:    schema.index[name],
			ctype:    col.Type,
			positive: positive,
		})
		return nil
	}

	for _, name := range opts.Required {
		if err := add(name, false); err != nil {
			return nil, err
		}
	}
	for _, name := range opts.Positive {
		if err := add(name, true); err != nil {
			return nil, err
		}
	}
	return checks, nil
}

func checkCell(cell Cell, c cleanCheck) (DropReason, bool) {
	if cell.IsNull() {
		return ReasonMissing, false
	}
	if !c.ctype.Numeric() {
		if strings.TrimSpace(cell.Text()) == "" {
			return ReasonMissing, false
		}
		return "", true
	}

	v, _ := cell.Number()
	if v < 0 {
		return ReasonNegative, false
	}
	if c.ctype == TypeInt && v != math.Trunc(v) {
		return ReasonNonIntegral, false
	}
	if c.positive && v <= 0 {
		return ReasonNonPositive, false
	}
	return "", true
}
