package dataprocessing

import (
	"math"
	"strings"

	"nbastats/pkg/contracts/domain"
)

// Describe profiles every column: non-null count, null count and, for
// numeric columns, mean, sample standard deviation, min and max.
func Describe(t *Table) []domain.ColumnSummary {
	cols := t.Schema().Columns()
	out := make([]domain.ColumnSummary, len(cols))

	for j, c := range cols {
		s := domain.ColumnSummary{
			Name:    c.Name,
			Type:    c.Type.String(),
			Numeric: c.Type.Numeric(),
		}

		var values []float64
		for i := 0; i < t.Len(); i++ {
			cell := t.rows[i][j]
			if cell.IsNull() {
				s.Nulls++
				continue
			}
			s.Count++
			if v, ok := cell.Number(); ok {
				values = append(values, v)
			}
		}

		if s.Numeric && len(values) > 0 {
			s.Mean, s.Std, s.Min, s.Max = moments(values)
		}
		out[j] = s
	}
	return out
}

// moments returns mean, sample standard deviation (n-1), min and max
func moments(values []float64) (mean, std, lo, hi float64) {
	lo, hi = values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	mean = sum / float64(len(values))

	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			d := v - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(len(values)-1))
	}
	return mean, std, lo, hi
}

// Overview counts records, distinct players, distinct team codes and the
// seasons covered by t.
func Overview(t *Table) domain.DatasetOverview {
	ov := domain.DatasetOverview{Records: t.Len()}
	players := make(map[string]struct{})
	teams := make(map[string]struct{})

	for i := 0; i < t.Len(); i++ {
		if p := strings.TrimSpace(t.Text(i, domain.ColumnPlayer)); p != "" {
			players[p] = struct{}{}
		}
		if tm := strings.TrimSpace(t.Text(i, domain.ColumnTeam)); tm != "" {
			teams[tm] = struct{}{}
		}
		if y, ok := t.Number(i, domain.ColumnYear); ok {
			year := int(y)
			if ov.FirstYear == 0 || year < ov.FirstYear {
				ov.FirstYear = year
			}
			if year > ov.LastYear {
				ov.LastYear = year
			}
		}
	}

	ov.UniquePlayers = len(players)
	ov.Teams = len(teams)
	return ov
}

// Preview returns the header followed by the text of the first n rows
func Preview(t *Table, n int) [][]string {
	if n > t.Len() {
		n = t.Len()
	}
	if n < 0 {
		n = 0
	}
	out := make([][]string, 0, n+1)
	out = append(out, t.Schema().Names())
	for i := 0; i < n; i++ {
		row := make([]string, len(t.rows[i]))
		for j, cell := range t.rows[i] {
			row[j] = cell.Text()
		}
		out = append(out, row)
	}
	return out
}
