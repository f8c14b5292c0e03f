package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbastats/pkg/contracts/domain"
)

func TestNewSchema(t *testing.T) {
	s, err := NewSchema(coreColumns...)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []string{"Player", "Tm", "G", "PTS"}, s.Names())
	assert.True(t, s.Has("G"))
	assert.False(t, s.Has("AST"))

	col, ok := s.Column("PTS")
	require.True(t, ok)
	assert.Equal(t, TypeInt, col.Type)

	_, err = NewSchema(Column{Name: "G"}, Column{Name: "G"})
	assert.Error(t, err)
	assert.Panics(t, func() { MustSchema(Column{Name: "G"}, Column{Name: "G"}) })
}

func TestCell(t *testing.T) {
	assert.True(t, NullCell().IsNull())
	assert.True(t, NumberCell(math.NaN()).IsNull())
	assert.True(t, NumberCell(math.Inf(1)).IsNull())

	v, ok := NumberCell(12.5).Number()
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)
	assert.Equal(t, "12.5", NumberCell(12.5).Text())
	assert.Equal(t, "30", NumberCell(30).Text())

	_, ok = TextCell("HOU").Number()
	assert.False(t, ok)
	assert.Equal(t, "HOU", TextCell("HOU").Text())
	assert.Equal(t, "", NullCell().Text())
}

func TestNewTable_RejectsRaggedRows(t *testing.T) {
	schema := MustSchema(coreColumns...)
	_, err := NewTable(schema, [][]Cell{{TextCell("A")}})
	assert.Error(t, err)
}

func TestTable_FilterLeavesSourceUntouched(t *testing.T) {
	table := buildTable(t, coreColumns,
		player("A", "X", 10, 100),
		player("B", "Y", 0, 0),
		player("C", "X", 5, 40),
	)

	filtered := table.Filter(func(i int) bool {
		g, _ := table.Number(i, domain.ColumnGames)
		return g > 0
	})

	assert.Equal(t, 3, table.Len())
	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, "A", filtered.Text(0, domain.ColumnPlayer))
	assert.Equal(t, "C", filtered.Text(1, domain.ColumnPlayer))
	assert.Equal(t, table.Schema().Names(), filtered.Schema().Names())
}

func TestTable_OutOfRangeCellIsNull(t *testing.T) {
	table := buildTable(t, coreColumns, player("A", "X", 10, 100))
	assert.True(t, table.Cell(5, domain.ColumnPlayer).IsNull())
	assert.True(t, table.Cell(0, "AST").IsNull())

	var nilTable *Table
	assert.Zero(t, nilTable.Len())
}

func TestTable_Record(t *testing.T) {
	cols := append(append([]Column(nil), coreColumns...),
		Column{Name: domain.ColumnYear, Type: TypeInt},
		Column{Name: domain.ColumnMinutes, Type: TypeFloat},
		Column{Name: "Pos", Type: TypeString},
		Column{Name: "AST", Type: TypeInt},
	)
	table := buildTable(t, cols,
		[]any{" James Harden ", "HOU", 72, 2191, 2018, 2551.5, "SG", 630},
		[]any{"Role Player", "MIA", 40, 200, nil, nil, nil, nil},
	)

	rec := table.Record(0)
	assert.Equal(t, domain.PlayerSeason{
		Player:  "James Harden",
		Team:    "HOU",
		Year:    2018,
		Games:   72,
		Points:  2191,
		Minutes: 2551.5,
		Extra:   map[string]string{"Pos": "SG", "AST": "630"},
	}, rec)

	second := table.Record(1)
	assert.Zero(t, second.Year)
	assert.Nil(t, second.Extra)
	assert.Len(t, table.Records(), 2)
}

func TestColumnType(t *testing.T) {
	assert.Equal(t, "string", TypeString.String())
	assert.Equal(t, "int", TypeInt.String())
	assert.Equal(t, "float", TypeFloat.String())
	assert.False(t, TypeString.Numeric())
	assert.True(t, TypeInt.Numeric())
	assert.True(t, TypeFloat.Numeric())
}
