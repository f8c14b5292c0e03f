// Package testutil holds helpers shared by the package tests: an slog
// capture handler and player-season fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SampleHeader is the column layout of the upstream dataset, trimmed to the
// columns the fixtures use.
const SampleHeader = "Player,Pos,Age,Tm,G,MP,TRB,AST,PTS,Year"

// SampleSeasonCSV is a small dataset covering a traded player, a row with
// zero games and a row with a missing points value.
//
// Team means after cleaning (PTS/G averaged per row, TOT excluded):
// HOU (2000/80, 1100/55) = 22.5, MIA (400/20) = 20.0, LAL (2300/92, 300/30) = 17.5.
const SampleSeasonCSV = `Player,Pos,Age,Tm,G,MP,TRB,AST,PTS,Year
James Harden,SG,28,HOU,80,2900,450,700,2000,2018
LeBron James,SF,33,LAL,92,3000,700,800,2300,2018
Chris Paul,PG,32,HOU,55,1800,300,500,1100,2018
Deep Bench,C,22,MIA,0,0,0,0,0,2018
Traded Guy,SF,27,TOT,50,1200,200,100,700,2018
Traded Guy,SF,27,MIA,20,500,80,40,400,2018
Traded Guy,SF,27,LAL,30,700,120,60,300,2018
No Points,PF,30,MIA,10,100,20,5,,2018
`

// WriteFile writes content to name inside a fresh temp dir and returns the path
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteSampleCSV writes SampleSeasonCSV and returns its path
func WriteSampleCSV(t *testing.T) string {
	t.Helper()
	return WriteFile(t, "NBA_Player_Stats.csv", SampleSeasonCSV)
}

// CSVRecords splits a small CSV literal into rows. Quoting is not supported.
func CSVRecords(content string) [][]string {
	var out [][]string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		out = append(out, strings.Split(strings.TrimRight(line, "\r"), ","))
	}
	return out
}

// WriteXLSX writes rows to the first sheet of a new workbook and returns its path
func WriteXLSX(t *testing.T, name string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}
