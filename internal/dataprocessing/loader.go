package dataprocessing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	apperrors "nbastats/internal/errors"
	"nbastats/pkg/contracts/domain"
)

// DefaultRequiredColumns are the columns every analysis needs
var DefaultRequiredColumns = []Column{
	{Name: domain.ColumnPlayer, Type: TypeString},
	{Name: domain.ColumnTeam, Type: TypeString},
	{Name: domain.ColumnGames, Type: TypeInt},
	{Name: domain.ColumnPoints, Type: TypeInt},
}

// defaultNullValues mirror the tokens the upstream dataset uses for missing cells
var defaultNullValues = []string{"", "NA", "N/A", "n/a", "NaN", "nan", "null", "NULL", "None", "#N/A", "<NA>", "<nil>"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadOptions configures how a file is read into a Table
type LoadOptions struct {
	// Required columns must be present in the header. They are coerced to
	// their declared type; cells that fail coercion become null.
	Required []Column

	// Delimiter overrides the field separator. Zero selects ',' or, for
	// .tsv files, a tab.
	Delimiter rune

	// NullValues are cell contents read as missing
	NullValues []string
}

// DefaultLoadOptions returns options for the NBA player-season dataset
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Required:   append([]Column(nil), DefaultRequiredColumns...),
		NullValues: append([]string(nil), defaultNullValues...),
	}
}

// Loader reads delimited text and spreadsheet files into Tables
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger uses slog.Default().
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With("component", "loader")}
}

// LoadFile reads path with the reader matching its extension
func LoadFile(ctx context.Context, path string, opts LoadOptions) (*Table, error) {
	return NewLoader(nil).LoadFile(ctx, path, opts)
}

// LoadFile reads path with the reader matching its extension.
// Either the whole file becomes a Table or a LOAD error is returned.
func (l *Loader) LoadFile(ctx context.Context, path string, opts LoadOptions) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return l.LoadXLSX(ctx, path, opts)
	case ".csv", ".tsv", ".txt", "":
		return l.LoadCSV(ctx, path, opts)
	default:
		return nil, apperrors.NewLoadError(path, "unsupported file extension", nil).
			WithContext("extension", filepath.Ext(path))
	}
}

// IsSupportedFile reports whether LoadFile has a reader for path
func IsSupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".csv", ".tsv", ".txt", "":
		return true
	}
	return false
}

// LoadCSV reads a delimited text file with a header row
func (l *Loader) LoadCSV(ctx context.Context, path string, opts LoadOptions) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Delimiter == 0 && strings.EqualFold(filepath.Ext(path), ".tsv") {
		opts.Delimiter = '\t'
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer file.Close()

	return l.LoadReader(ctx, file, path, opts)
}

// LoadReader reads delimited text from r. source names the input in
// errors and logs.
func (l *Loader) LoadReader(ctx context.Context, r io.Reader, source string, opts LoadOptions) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader := csv.NewReader(skipBOM(r))
	reader.LazyQuotes = true
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewLoadError(source, "failed to parse delimited file", err)
	}

	return l.fromRecords(ctx, records, source, opts)
}

// LoadXLSX reads the first sheet of a workbook; its first row is the header
func (l *Loader) LoadXLSX(ctx context.Context, path string, opts LoadOptions) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, openError(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewLoadError(path, "failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewLoadError(path, "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewLoadError(path, "failed to read sheet", err).
			WithContext("sheet", sheets[0])
	}
	if len(rows) == 0 {
		return nil, apperrors.NewLoadError(path, "sheet is empty", nil).
			WithContext("sheet", sheets[0])
	}

	// GetRows trims trailing empty cells; pad every row to the header width
	width := len(rows[0])
	records := make([][]string, 0, len(rows))
	for i, row := range rows {
		if len(row) > width {
			return nil, apperrors.NewLoadError(path, "row is wider than header", nil).
				WithContext("row", fmt.Sprint(i+1))
		}
		padded := make([]string, width)
		copy(padded, row)
		records = append(records, padded)
	}

	l.logger.DebugContext(ctx, "Read workbook sheet",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("rows", len(records)-1))

	return l.fromRecords(ctx, records, path, opts)
}

// gotaOptions translates LoadOptions into dataframe load options.
// Passthrough columns are typed by gota's inference.
// Required numeric columns are read as floats so that non-integral or
// malformed values reach the cleaner instead of failing the load.
func gotaOptions(opts LoadOptions) []dataframe.LoadOption {
	types := make(map[string]series.Type, len(opts.Required))
	for _, c := range opts.Required {
		if c.Type.Numeric() {
			types[c.Name] = series.Float
		} else {
			types[c.Name] = series.String
		}
	}

	nulls := opts.NullValues
	if nulls == nil {
		nulls = defaultNullValues
	}

	options := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithTypes(types),
		dataframe.NaNValues(nulls),
	}
	return options
}

// fromRecords checks the header against the required columns, lets gota
// type the columns and copies the frame into an immutable Table.
func (l *Loader) fromRecords(ctx context.Context, records [][]string, source string, opts LoadOptions) (*Table, error) {
	if len(records) == 0 {
		return nil, apperrors.NewLoadError(source, "file is empty", nil)
	}

	header := make([]string, len(records[0]))
	present := make(map[string]bool, len(header))
	// Names must be unique: gota renames repeats (PTS becomes PTS_0, PTS_1)
	for j, name := range records[0] {
		header[j] = strings.TrimSpace(name)
		if header[j] == "" {
			return nil, apperrors.NewLoadError(source, "empty column name in header", nil).
				WithContext("column", fmt.Sprint(j+1))
		}
		if present[header[j]] {
			return nil, apperrors.NewLoadError(source, fmt.Sprintf("duplicate column %q in header", header[j]), nil).
				WithContext("column", header[j])
		}
		present[header[j]] = true
	}
	declared := make(map[string]ColumnType, len(opts.Required))
	for _, c := range opts.Required {
		if !present[c.Name] {
			return nil, apperrors.NewMissingColumnError(source, c.Name)
		}
		declared[c.Name] = c.Type
	}

	// gota refuses a frame without data rows
	if len(records) == 1 {
		columns := make([]Column, len(header))
		for j, name := range header {
			columns[j] = Column{Name: name, Type: declared[name]}
		}
		schema, err := NewSchema(columns...)
		if err != nil {
			return nil, apperrors.NewLoadError(source, "invalid header", err)
		}
		l.logger.InfoContext(ctx, "Dataset loaded",
			slog.String("source", source),
			slog.Int("rows", 0),
			slog.Int("columns", len(columns)))
		return EmptyTable(schema), nil
	}

	records = append([][]string{header}, records[1:]...)

	df := dataframe.LoadRecords(records, gotaOptions(opts)...)
	if df.Err != nil {
		return nil, apperrors.NewLoadError(source, "failed to parse records", df.Err)
	}

	names := df.Names()
	columns := make([]Column, len(names))
	for j, name := range names {
		columns[j] = Column{Name: name, Type: inferredType(df.Col(name).Type())}
		if t, ok := declared[name]; ok {
			columns[j].Type = t
		}
	}
	schema, err := NewSchema(columns...)
	if err != nil {
		return nil, apperrors.NewLoadError(source, "invalid header", err)
	}

	nulls := opts.NullValues
	if nulls == nil {
		nulls = defaultNullValues
	}
	nullSet := make(map[string]bool, len(nulls))
	for _, v := range nulls {
		nullSet[v] = true
	}

	nrow := df.Nrow()
	rows := make([][]Cell, nrow)
	for i := range rows {
		rows[i] = make([]Cell, len(columns))
	}
	for j, c := range columns {
		s := df.Col(c.Name)
		for i := 0; i < nrow; i++ {
			rows[i][j] = toCell(s.Elem(i), c.Type, nullSet)
		}
	}

	l.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("source", source),
		slog.Int("rows", nrow),
		slog.Int("columns", len(columns)))

	return &Table{schema: schema, rows: rows}, nil
}

func inferredType(t series.Type) ColumnType {
	switch t {
	case series.Int:
		return TypeInt
	case series.Float:
		return TypeFloat
	default:
		return TypeString
	}
}

func toCell(el series.Element, t ColumnType, nulls map[string]bool) Cell {
	if el.IsNA() {
		return NullCell()
	}
	if t.Numeric() {
		return NumberCell(el.Float())
	}
	v := el.String()
	if strings.TrimSpace(v) == "" || nulls[v] {
		return NullCell()
	}
	return TextCell(v)
}

// skipBOM drops a leading UTF-8 byte order mark
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

func openError(path string, err error) error {
	if os.IsNotExist(err) {
		return apperrors.NewLoadError(path, "file not found", err)
	}
	return apperrors.NewLoadError(path, "failed to open file", err)
}
