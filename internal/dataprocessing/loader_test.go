package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "nbastats/internal/errors"
	"nbastats/internal/shared/testutil"
	"nbastats/pkg/contracts/domain"
)

func TestLoadFile_SampleCSV(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	path := testutil.WriteSampleCSV(t)

	table, err := NewLoader(logger).LoadFile(context.Background(), path, DefaultLoadOptions())
	require.NoError(t, err)
	require.NotNil(t, table)

	assert.Equal(t, 8, table.Len())
	assert.Equal(t, strings.Split(testutil.SampleHeader, ","), table.Schema().Names())

	tests := []struct {
		column string
		want   ColumnType
	}{
		{domain.ColumnPlayer, TypeString},
		{domain.ColumnTeam, TypeString},
		{domain.ColumnGames, TypeInt},
		{domain.ColumnPoints, TypeInt},
		{"Pos", TypeString},
		{"Age", TypeInt},
		{domain.ColumnYear, TypeInt},
	}
	for _, tt := range tests {
		col, ok := table.Schema().Column(tt.column)
		require.True(t, ok, tt.column)
		assert.Equal(t, tt.want, col.Type, tt.column)
	}

	first := table.Record(0)
	assert.Equal(t, "James Harden", first.Player)
	assert.Equal(t, "HOU", first.Team)
	assert.Equal(t, 80, first.Games)
	assert.Equal(t, 2000, first.Points)
	assert.Equal(t, 2018, first.Year)
	assert.Equal(t, "SG", first.Extra["Pos"])

	// the empty PTS cell of the last row is read as null
	assert.True(t, table.Cell(7, domain.ColumnPoints).IsNull())

	testutil.AssertLogContains(t, logs, slog.LevelInfo, "Dataset loaded")
	assert.True(t, logs.ContainsAttr("component", "loader"))
}

func TestLoadFile_MissingRequiredColumn(t *testing.T) {
	path := testutil.WriteFile(t, "no_games.csv", "Player,Tm,PTS\nA,X,100\nB,Y,50\n")

	table, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
	assert.ErrorIs(t, err, apperrors.ErrLoad)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ColumnGames, appErr.Context["column"])
	assert.Equal(t, path, appErr.Context["path"])
	assert.Contains(t, err.Error(), `"G"`)
}

func TestLoadFile_DuplicateHeader(t *testing.T) {
	tests := []struct {
		name    string
		content string
		column  string
	}{
		{"repeated required column", "Player,Tm,G,PTS,PTS\nA,X,10,100,5\n", "PTS"},
		{"repeated passthrough column", "Player,Tm,G,PTS,Pos,Pos\nA,X,10,100,C,F\n", "Pos"},
		{"header only", "Player,Tm,G,G,PTS\n", "G"},
		{"padded repeat", "Player,Tm, G ,G,PTS\nA,X,1,1,1\n", "G"},
		{"empty name", "Player,Tm,G,,PTS\nA,X,10,x,100\n", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, "dup.csv", tt.content)

			table, err := LoadFile(context.Background(), path, DefaultLoadOptions())
			require.Error(t, err)
			assert.Nil(t, table)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.column, appErr.Context["column"])
			assert.Equal(t, path, appErr.Context["path"])
		})
	}
}

func TestLoadFile_XLSXDuplicateHeader(t *testing.T) {
	path := testutil.WriteXLSX(t, "dup.xlsx", [][]string{{"Player", "Tm", "G", "PTS", "PTS"}, {"A", "X", "10", "100", "5"}})

	table, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	assert.Nil(t, table)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
	assert.Contains(t, err.Error(), `duplicate column "PTS"`)
}

func TestLoadFile_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")

	table, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
	assert.Contains(t, err.Error(), "file not found")
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := testutil.WriteFile(t, "stats.parquet", "not really")

	_, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
	assert.False(t, IsSupportedFile(path))
	assert.True(t, IsSupportedFile("stats.XLSX"))
	assert.True(t, IsSupportedFile("stats.tsv"))
}

func TestLoadFile_ByteOrderMark(t *testing.T) {
	path := testutil.WriteFile(t, "bom.csv", "\ufeffPlayer,Tm,G,PTS\nA,X,10,100\n")

	table, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	require.NoError(t, err)
	assert.True(t, table.Schema().Has(domain.ColumnPlayer))
	assert.Equal(t, "A", table.Record(0).Player)
}

func TestLoadFile_TSV(t *testing.T) {
	path := testutil.WriteFile(t, "stats.tsv", "Player\tTm\tG\tPTS\nA\tX\t10\t100\nB\tY\t4\t10\n")

	table, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Y", table.Record(1).Team)
	assert.Equal(t, 4, table.Record(1).Games)
}

func TestLoadFile_MalformedNumbersBecomeNull(t *testing.T) {
	path := testutil.WriteFile(t, "bad.csv", "Player,Tm,G,PTS\nA,X,ten,100\nB,Y,12.5,80\n")

	table, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.True(t, table.Cell(0, domain.ColumnGames).IsNull())

	g, ok := table.Number(1, domain.ColumnGames)
	require.True(t, ok)
	assert.Equal(t, 12.5, g)
}

func TestLoadFile_RaggedRowFails(t *testing.T) {
	path := testutil.WriteFile(t, "ragged.csv", "Player,Tm,G,PTS\nA,X,10\n")

	table, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	assert.Nil(t, table)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}

func TestLoadFile_XLSX(t *testing.T) {
	path := testutil.WriteXLSX(t, "stats.xlsx", testutil.CSVRecords(testutil.SampleSeasonCSV))

	fromXLSX, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	require.NoError(t, err)
	fromCSV := loadSample(t)

	require.Equal(t, fromCSV.Len(), fromXLSX.Len())
	assert.Equal(t, fromCSV.Schema().Names(), fromXLSX.Schema().Names())
	assert.Equal(t, fromCSV.Records(), fromXLSX.Records())
}

func TestLoadFile_XLSXMissingColumn(t *testing.T) {
	path := testutil.WriteXLSX(t, "stats.xlsx", [][]string{{"Player", "Tm", "PTS"}, {"A", "X", "10"}})

	table, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	assert.Nil(t, table)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}

func TestLoadReader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil).LoadReader(ctx, strings.NewReader("Player,Tm,G,PTS\n"), "inline", DefaultLoadOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFile_HeaderOnly(t *testing.T) {
	path := testutil.WriteFile(t, "empty.csv", "Player,Tm,G,PTS,Pos\n")

	table, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	require.NoError(t, err)
	assert.Zero(t, table.Len())
	col, ok := table.Schema().Column(domain.ColumnGames)
	require.True(t, ok)
	assert.Equal(t, TypeInt, col.Type)
}

func TestLoadFile_EmptyFile(t *testing.T) {
	path := testutil.WriteFile(t, "blank.csv", "")

	table, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	assert.Nil(t, table)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}
