package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbastats/pkg/contracts/domain"
)

func TestDescribe(t *testing.T) {
	table := buildTable(t, coreColumns,
		player("A", "X", 2, 10),
		player("B", "X", 4, 20),
		[]any{"C", nil, 6, nil},
	)

	summaries := Describe(table)
	require.Len(t, summaries, 4)

	team := summaries[1]
	assert.Equal(t, domain.ColumnSummary{Name: "Tm", Type: "string", Count: 2, Nulls: 1}, team)

	games := summaries[2]
	assert.Equal(t, "G", games.Name)
	assert.True(t, games.Numeric)
	assert.Equal(t, 3, games.Count)
	assert.InDelta(t, 4.0, games.Mean, 1e-9)
	assert.InDelta(t, 2.0, games.Std, 1e-9)
	assert.Equal(t, 2.0, games.Min)
	assert.Equal(t, 6.0, games.Max)

	points := summaries[3]
	assert.Equal(t, 2, points.Count)
	assert.Equal(t, 1, points.Nulls)
	assert.InDelta(t, math.Sqrt(50), points.Std, 1e-9)
}

func TestDescribe_SingleValueHasZeroStd(t *testing.T) {
	summaries := Describe(buildTable(t, coreColumns, player("A", "X", 2, 10)))
	assert.Zero(t, summaries[3].Std)
}

func TestOverview(t *testing.T) {
	ov := Overview(cleanSample(t))
	assert.Equal(t, domain.DatasetOverview{
		Records:       6,
		UniquePlayers: 4,
		Teams:         4,
		FirstYear:     2018,
		LastYear:      2018,
	}, ov)

	assert.Equal(t, domain.DatasetOverview{}, Overview(EmptyTable(MustSchema(coreColumns...))))
}

func TestPreview(t *testing.T) {
	table := cleanSample(t)

	rows := Preview(table, 2)
	require.Len(t, rows, 3)
	assert.Equal(t, table.Schema().Names(), rows[0])
	assert.Equal(t, "James Harden", rows[1][0])
	assert.Equal(t, "LAL", rows[2][3])

	assert.Len(t, Preview(table, 100), table.Len()+1)
	assert.Len(t, Preview(table, -1), 1)
}
