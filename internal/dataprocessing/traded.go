package dataprocessing

import (
	"fmt"
	"strings"

	apperrors "nbastats/internal/errors"
	"nbastats/pkg/contracts/domain"
)

// TradedPolicy decides what happens to the rows of players who changed
// teams mid-season. The data source lists such a player once per team plus
// a combined line under the TOT pseudo team.
type TradedPolicy string

const (
	// PolicyKeep ranks every row, TOT lines included
	PolicyKeep TradedPolicy = "keep"
	// PolicyExcludeTotals drops the TOT lines and keeps the per-team rows
	PolicyExcludeTotals TradedPolicy = "exclude-totals"
	// PolicyPreferTotals keeps the TOT line and drops the per-team rows of
	// the same player-season
	PolicyPreferTotals TradedPolicy = "prefer-totals"
)

// ParseTradedPolicy validates a policy name. The empty string selects
// PolicyPreferTotals.
func ParseTradedPolicy(s string) (TradedPolicy, error) {
	switch p := TradedPolicy(s); p {
	case PolicyKeep, PolicyExcludeTotals, PolicyPreferTotals:
		return p, nil
	case "":
		return PolicyPreferTotals, nil
	default:
		return "", apperrors.NewValidationError(fmt.Sprintf("unknown traded policy %q", s)).
			WithContext("policy", s)
	}
}

// ResolveTraded applies policy to t. A player-season is identified by
// player and year; without a Year column every row of a player is one
// season.
func ResolveTraded(t *Table, policy TradedPolicy) (*Table, error) {
	switch policy {
	case PolicyKeep:
		return t, nil
	case PolicyExcludeTotals:
		return ExcludeTradedTotals(t), nil
	case PolicyPreferTotals, "":
		totals := make(map[string]bool)
		for i := 0; i < t.Len(); i++ {
			if rec := seasonRow(t, i); rec.IsTradedTotal() {
				totals[rec.SeasonKey()] = true
			}
		}
		if len(totals) == 0 {
			return t, nil
		}
		return t.Filter(func(i int) bool {
			rec := seasonRow(t, i)
			return rec.IsTradedTotal() || !totals[rec.SeasonKey()]
		}), nil
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown traded policy %q", policy)).
			WithContext("policy", string(policy))
	}
}

// ExcludeTradedTotals returns t without its TOT lines. Team aggregates are
// always computed on this view since TOT is not a team.
func ExcludeTradedTotals(t *Table) *Table {
	return t.Filter(func(i int) bool {
		return !seasonRow(t, i).IsTradedTotal()
	})
}

// seasonRow reads only the identifying columns of row i
func seasonRow(t *Table, i int) domain.PlayerSeason {
	rec := domain.PlayerSeason{
		Player: strings.TrimSpace(t.Text(i, domain.ColumnPlayer)),
		Team:   strings.TrimSpace(t.Text(i, domain.ColumnTeam)),
	}
	if v, ok := t.Number(i, domain.ColumnYear); ok {
		rec.Year = int(v)
	}
	return rec
}
