package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"nbastats/internal/shared/testutil"
	"nbastats/pkg/contracts/domain"
)

var coreColumns = []Column{
	{Name: domain.ColumnPlayer, Type: TypeString},
	{Name: domain.ColumnTeam, Type: TypeString},
	{Name: domain.ColumnGames, Type: TypeInt},
	{Name: domain.ColumnPoints, Type: TypeInt},
}

// buildTable creates a table from literal rows. Values may be string,
// int, float64 or nil for a null cell.
func buildTable(t *testing.T, cols []Column, rows ...[]any) *Table {
	t.Helper()

	schema, err := NewSchema(cols...)
	require.NoError(t, err)

	cells := make([][]Cell, len(rows))
	for i, row := range rows {
		require.Len(t, row, len(cols), "row %d", i)
		cells[i] = make([]Cell, len(row))
		for j, v := range row {
			switch val := v.(type) {
			case nil:
				cells[i][j] = NullCell()
			case string:
				cells[i][j] = TextCell(val)
			case int:
				cells[i][j] = NumberCell(float64(val))
			case float64:
				cells[i][j] = NumberCell(val)
			default:
				t.Fatalf("unsupported literal %T", v)
			}
		}
	}

	table, err := NewTable(schema, cells)
	require.NoError(t, err)
	return table
}

// player builds a core-columns row
func player(name, team string, games, points int) []any {
	return []any{name, team, games, points}
}

func loadSample(t *testing.T) *Table {
	t.Helper()
	table, err := LoadFile(context.Background(), testutil.WriteSampleCSV(t), DefaultLoadOptions())
	require.NoError(t, err)
	return table
}

func cleanSample(t *testing.T) *Table {
	t.Helper()
	cleaned, _, err := Clean(loadSample(t), DefaultCleanOptions())
	require.NoError(t, err)
	return cleaned
}

func labels(entries []domain.RankedEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}
