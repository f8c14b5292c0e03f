package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"nbastats/pkg/contracts/domain"
)

// ColumnType is the value type of a table column
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt
	TypeFloat
)

// String returns the lower-case type name
func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	default:
		return "string"
	}
}

// Numeric reports whether values of this type are numbers
func (t ColumnType) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Column is a named, typed column of a Schema
type Column struct {
	Name string
	Type ColumnType
}

// Schema is the fixed, ordered column set shared by every row of a Table
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema builds a schema. Duplicate column names are rejected.
func NewSchema(columns ...Column) (Schema, error) {
	s := Schema{
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, dup := s.index[c.Name]; dup {
			return Schema{}, fmt.Errorf("duplicate column %q", c.Name)
		}
		s.columns[i] = c
		s.index[c.Name] = i
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error
func MustSchema(columns ...Column) Schema {
	s, err := NewSchema(columns...)
	if err != nil {
		panic(err)
	}
	return s
}

// Columns returns a copy of the columns in order
func (s Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Names returns the column names in order
func (s Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of columns
func (s Schema) Len() int { return len(s.columns) }

// Column looks up a column by name
func (s Schema) Column(name string) (Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// Has reports whether the schema contains name
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Cell is one value of a row. Numeric cells keep their float64 value,
// string cells their text; a null cell has neither.
type Cell struct {
	text string
	num  float64
	kind cellKind
}

type cellKind uint8

const (
	cellNull cellKind = iota
	cellText
	cellNumber
)

// NullCell returns a missing value
func NullCell() Cell { return Cell{} }

// TextCell returns a string value
func TextCell(s string) Cell { return Cell{text: s, kind: cellText} }

// NumberCell returns a numeric value. NaN and infinities are null.
func NumberCell(f float64) Cell {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NullCell()
	}
	return Cell{num: f, kind: cellNumber}
}

// IsNull reports whether the cell holds no value
func (c Cell) IsNull() bool { return c.kind == cellNull }

// Number returns the numeric value
func (c Cell) Number() (float64, bool) { return c.num, c.kind == cellNumber }

// Text returns the string form of the value, empty for null cells
func (c Cell) Text() string {
	switch c.kind {
	case cellText:
		return c.text
	case cellNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Table is an immutable sequence of rows sharing one Schema.
// Operations never modify a Table; they return new ones.
type Table struct {
	schema Schema
	rows   [][]Cell
}

// NewTable builds a table, copying rows. Every row must match the schema width.
func NewTable(schema Schema, rows [][]Cell) (*Table, error) {
	copied := make([][]Cell, len(rows))
	for i, row := range rows {
		if len(row) != schema.Len() {
			return nil, fmt.Errorf("row %d has %d cells, schema has %d columns", i, len(row), schema.Len())
		}
		copied[i] = append([]Cell(nil), row...)
	}
	return &Table{schema: schema, rows: copied}, nil
}

// EmptyTable returns a table with the given schema and no rows
func EmptyTable(schema Schema) *Table {
	return &Table{schema: schema}
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Schema returns the table schema
func (t *Table) Schema() Schema { return t.schema }

// Cell returns the value at row i of column name
func (t *Table) Cell(i int, name string) Cell {
	j, ok := t.schema.index[name]
	if !ok || i < 0 || i >= len(t.rows) {
		return NullCell()
	}
	return t.rows[i][j]
}

// Number returns the numeric value at row i of column name
func (t *Table) Number(i int, name string) (float64, bool) {
	return t.Cell(i, name).Number()
}

// Text returns the string value at row i of column name
func (t *Table) Text(i int, name string) string {
	return t.Cell(i, name).Text()
}

// Filter returns a new table with the rows for which keep returns true.
// Row order is preserved.
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := &Table{schema: t.schema, rows: make([][]Cell, 0, len(t.rows))}
	for i, row := range t.rows {
		if keep(i) {
			// rows are never mutated, so sharing them is safe
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// Record maps row i onto a PlayerSeason. Columns outside the core set
// are carried as text in Extra.
func (t *Table) Record(i int) domain.PlayerSeason {
	rec := domain.PlayerSeason{
		Player: strings.TrimSpace(t.Text(i, domain.ColumnPlayer)),
		Team:   strings.TrimSpace(t.Text(i, domain.ColumnTeam)),
	}
	if v, ok := t.Number(i, domain.ColumnYear); ok {
		rec.Year = int(v)
	}
	if v, ok := t.Number(i, domain.ColumnGames); ok {
		rec.Games = int(v)
	}
	if v, ok := t.Number(i, domain.ColumnPoints); ok {
		rec.Points = int(v)
	}
	if v, ok := t.Number(i, domain.ColumnMinutes); ok {
		rec.Minutes = v
	}

	for j, c := range t.schema.columns {
		if isCoreColumn(c.Name) {
			continue
		}
		cell := t.rows[i][j]
		if cell.IsNull() {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string)
		}
		rec.Extra[c.Name] = cell.Text()
	}
	return rec
}

// Records maps every row onto a PlayerSeason
func (t *Table) Records() []domain.PlayerSeason {
	out := make([]domain.PlayerSeason, t.Len())
	for i := range out {
		out[i] = t.Record(i)
	}
	return out
}

func isCoreColumn(name string) bool {
	switch name {
	case domain.ColumnPlayer, domain.ColumnTeam, domain.ColumnYear,
		domain.ColumnGames, domain.ColumnPoints, domain.ColumnMinutes:
		return true
	}
	return false
}
