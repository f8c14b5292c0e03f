package dataprocessing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	apperrors "nbastats/internal/errors"
	"nbastats/pkg/contracts/domain"
)

// groupStat accumulates one group in first-appearance order
type groupStat struct {
	key      string
	rows     int
	ratioSum float64
	numSum   float64
	denSum   float64
}

func (g groupStat) mean() float64 { return g.ratioSum / float64(g.rows) }

// RankTeamsByAvgPPG computes numerator/denominator for every row, averages
// those ratios per group with every row weighted equally, and returns the
// n groups with the highest mean. Ties keep first-appearance order.
//
// A null or non-positive denominator is a DIVISION error: the table was
// expected to be cleaned. Groups without rows never appear.
func RankTeamsByAvgPPG(t *Table, group, numerator, denominator string, n int) ([]domain.RankedEntry, error) {
	if n < 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("rank size must be non-negative, got %d", n)).
			WithContext("n", n)
	}

	groups, err := groupRatios(t, group, numerator, denominator)
	if err != nil {
		return nil, err
	}
	if n < len(groups) {
		groups = groups[:n]
	}

	out := make([]domain.RankedEntry, len(groups))
	for i, g := range groups {
		out[i] = domain.RankedEntry{Label: g.key, Value: g.mean()}
	}
	return out, nil
}

// TeamStats returns every team ranked by mean points per game per player,
// with player count, total points and mean games played.
func TeamStats(t *Table) ([]domain.TeamAggregate, error) {
	groups, err := groupRatios(t, domain.ColumnTeam, domain.ColumnPoints, domain.ColumnGames)
	if err != nil {
		return nil, err
	}

	out := make([]domain.TeamAggregate, len(groups))
	for i, g := range groups {
		out[i] = domain.TeamAggregate{
			Rank:        i + 1,
			Team:        g.key,
			AvgPPG:      g.mean(),
			Players:     g.rows,
			TotalPoints: int(math.Round(g.numSum)),
			AvgGames:    g.denSum / float64(g.rows),
		}
	}
	return out, nil
}

// TeamInsightsFor summarises a ranked team list
func TeamInsightsFor(teams []domain.TeamAggregate) domain.TeamInsights {
	if len(teams) == 0 {
		return domain.TeamInsights{}
	}
	var sum float64
	for _, team := range teams {
		sum += team.AvgPPG
	}
	return domain.TeamInsights{
		Highest:       teams[0],
		Lowest:        teams[len(teams)-1],
		MeanAcross:    sum / float64(len(teams)),
		TeamsAnalyzed: len(teams),
	}
}

// groupRatios returns the groups of t sorted by descending mean ratio
func groupRatios(t *Table, group, numerator, denominator string) ([]groupStat, error) {
	if !t.Schema().Has(group) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("group column %q not in table", group)).
			WithContext("column", group)
	}
	for _, name := range []string{numerator, denominator} {
		col, ok := t.Schema().Column(name)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("column %q not in table", name)).
				WithContext("column", name)
		}
		if !col.Type.Numeric() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("column %q is not numeric", name)).
				WithContext("column", name)
		}
	}

	var groups []groupStat
	index := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		key := strings.TrimSpace(t.Text(i, group))
		if key == "" {
			continue
		}

		den, ok := t.Number(i, denominator)
		if !ok || den <= 0 {
			return nil, apperrors.NewDivisionError(denominator, i)
		}
		num, ok := t.Number(i, numerator)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("missing value in column %q", numerator)).
				WithContext("column", numerator).
				WithContext("row", i)
		}

		k, seen := index[key]
		if !seen {
			k = len(groups)
			index[key] = k
			groups = append(groups, groupStat{key: key})
		}
		groups[k].rows++
		groups[k].ratioSum += num / den
		groups[k].numSum += num
		groups[k].denSum += den
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].mean() > groups[b].mean()
	})

	if groups == nil {
		groups = []groupStat{}
	}
	return groups, nil
}
