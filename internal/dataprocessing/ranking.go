package dataprocessing

import (
	"fmt"
	"math"
	"sort"

	apperrors "nbastats/internal/errors"
	"nbastats/pkg/contracts/domain"
)

// RankTop orders the rows of t by metric and returns the first n as
// ranked entries labelled with the player name. Rows with equal values keep
// their table order. n larger than the table returns every row; an empty
// table returns an empty slice.
//
// Rows whose metric cell is null are not ranked.
func RankTop(t *Table, metric string, n int, order domain.SortOrder) ([]domain.RankedEntry, error) {
	idx, err := rankRows(t, metric, n, order)
	if err != nil {
		return nil, err
	}

	labels := playerLabels(t, idx)
	out := make([]domain.RankedEntry, len(idx))
	for k, i := range idx {
		v, _ := t.Number(i, metric)
		out[k] = domain.RankedEntry{Label: labels[k], Value: v}
	}
	return out, nil
}

// TopScorers returns the n highest scoring player-seasons by total points
func TopScorers(t *Table, n int) ([]domain.ScorerEntry, error) {
	idx, err := rankRows(t, domain.ColumnPoints, n, domain.Descending)
	if err != nil {
		return nil, err
	}

	labels := playerLabels(t, idx)
	out := make([]domain.ScorerEntry, len(idx))
	for k, i := range idx {
		rec := t.Record(i)
		out[k] = domain.ScorerEntry{
			Rank:    k + 1,
			Label:   labels[k],
			Player:  rec.Player,
			Team:    rec.Team,
			Year:    rec.Year,
			Points:  rec.Points,
			Games:   rec.Games,
			Minutes: rec.Minutes,
		}
	}
	return out, nil
}

// ScoringInsightsFor summarises the points of a scorer list
func ScoringInsightsFor(scorers []domain.ScorerEntry) domain.ScoringInsights {
	if len(scorers) == 0 {
		return domain.ScoringInsights{}
	}
	ins := domain.ScoringInsights{
		Highest: math.Inf(-1),
		Lowest:  math.Inf(1),
	}
	var sum float64
	for _, s := range scorers {
		p := float64(s.Points)
		sum += p
		ins.Highest = math.Max(ins.Highest, p)
		ins.Lowest = math.Min(ins.Lowest, p)
	}
	ins.Mean = sum / float64(len(scorers))
	return ins
}

// rankRows returns the row indices of the top n rows by metric
func rankRows(t *Table, metric string, n int, order domain.SortOrder) ([]int, error) {
	if n < 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("rank size must be non-negative, got %d", n)).
			WithContext("n", n)
	}
	col, ok := t.Schema().Column(metric)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("metric column %q not in table", metric)).
			WithContext("column", metric)
	}
	if !col.Type.Numeric() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("metric column %q is not numeric", metric)).
			WithContext("column", metric).
			WithContext("type", col.Type.String())
	}

	idx := make([]int, 0, t.Len())
	values := make([]float64, t.Len())
	for i := 0; i < t.Len(); i++ {
		if v, ok := t.Number(i, metric); ok {
			values[i] = v
			idx = append(idx, i)
		}
	}

	sort.SliceStable(idx, func(a, b int) bool {
		if order == domain.Ascending {
			return values[idx[a]] < values[idx[b]]
		}
		return values[idx[a]] > values[idx[b]]
	})

	if n < len(idx) {
		idx = idx[:n]
	}
	return idx, nil
}

// playerLabels names each selected row after its player. A player who
// appears more than once in the selection is qualified with team and year.
func playerLabels(t *Table, idx []int) []string {
	seen := make(map[string]int, len(idx))
	rows := make([]domain.PlayerSeason, len(idx))
	for k, i := range idx {
		rows[k] = seasonRow(t, i)
		seen[rows[k].Player]++
	}

	labels := make([]string, len(idx))
	for k, rec := range rows {
		switch {
		case seen[rec.Player] < 2:
			labels[k] = rec.Player
		case rec.Year != 0:
			labels[k] = fmt.Sprintf("%s (%s, %d)", rec.Player, rec.Team, rec.Year)
		default:
			labels[k] = fmt.Sprintf("%s (%s)", rec.Player, rec.Team)
		}
	}
	return labels
}
