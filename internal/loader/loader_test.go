package loader

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nconklindev/xlsxprobe/internal/errors"
	"github.com/nconklindev/xlsxprobe/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thedatashed/xlsxreader"
	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, rows [][]interface{}, extraSheets ...string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	for _, name := range extraSheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(name, "A1", "x"))
		require.NoError(t, f.SetCellValue(name, "C4", "y"))
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadXLSX(t *testing.T) {
	created := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	path := writeXLSX(t, [][]interface{}{
		{"sessionId", "utm_source", "visits", "createdAt", "converted"},
		{"s-1", "google", 3, created, true},
		{"s-2", nil, 4.5, "2024-03-16T08:00:00Z", false},
		{"s-3", "NA"},
	}, "Lookup")

	wb, err := Load(path, Options{})
	require.NoError(t, err)

	table := wb.Table
	assert.Equal(t, "Sheet1", table.Sheet)
	assert.Equal(t, []string{"sessionId", "utm_source", "visits", "createdAt", "converted"}, table.Columns)
	require.Equal(t, 3, table.RowCount())

	row := table.Rows[0]
	assert.Equal(t, types.String("s-1"), row[0])
	assert.Equal(t, types.KindNumber, row[2].Kind)
	assert.Equal(t, 3.0, row[2].Num)
	assert.Equal(t, types.KindDate, row[3].Kind)
	assert.True(t, created.Equal(row[3].Time), "got %v", row[3].Time)
	assert.Equal(t, types.Bool(true), row[4])

	row = table.Rows[1]
	assert.True(t, row[1].IsNull())
	assert.Equal(t, 4.5, row[2].Num)
	// text cells stay text
	assert.Equal(t, types.String("2024-03-16T08:00:00Z"), row[3])
	assert.Equal(t, types.Bool(false), row[4])

	// short row padded, NA read as null
	row = table.Rows[2]
	assert.Len(t, row, 5)
	assert.True(t, row[1].IsNull())
	assert.True(t, row[4].IsNull())

	require.Len(t, wb.Sheets, 2)
	assert.Equal(t, []string{"Sheet1", "Lookup"}, wb.SheetNames())
	assert.Equal(t, types.SheetInfo{Name: "Sheet1", Rows: 4, Columns: 5, Visible: true}, wb.Sheets[0])
	assert.Equal(t, types.SheetInfo{Name: "Lookup", Rows: 4, Columns: 3, Visible: true}, wb.Sheets[1])
}

func TestLoadXLSX_TextCells(t *testing.T) {
	f := excelize.NewFile()
	header := []interface{}{"sessionId", "zip", "label", "flag", "note", "count"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	require.NoError(t, f.SetCellStr("Sheet1", "A2", "00123"))
	require.NoError(t, f.SetCellStr("Sheet1", "B2", "1e3"))
	require.NoError(t, f.SetCellStr("Sheet1", "C2", "2024-01-02"))
	require.NoError(t, f.SetCellStr("Sheet1", "D2", "TRUE"))
	require.NoError(t, f.SetCellStr("Sheet1", "E2", "NA"))
	require.NoError(t, f.SetCellValue("Sheet1", "F2", 123))
	path := filepath.Join(t.TempDir(), "ids.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := Load(path, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, wb.Table.RowCount())

	row := wb.Table.Rows[0]
	assert.Equal(t, types.String("00123"), row[0])
	assert.Equal(t, types.String("1e3"), row[1])
	assert.Equal(t, types.String("2024-01-02"), row[2])
	assert.Equal(t, types.String("TRUE"), row[3])
	assert.True(t, row[4].IsNull())
	assert.Equal(t, types.Number(123), row[5])
}

func TestLoadXLSX_EmptySheet(t *testing.T) {
	path := writeXLSX(t, nil)

	wb, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, wb.Table.RowCount())
	assert.Equal(t, 0, wb.Table.ColumnCount())
	assert.Equal(t, []string{"Sheet1"}, wb.SheetNames())
}

func TestLoadXLSX_DetectHeader(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"Exported 2024"},
		{},
		{"id", "channel", "medium"},
		{1, "email", "newsletter"},
	})

	wb, err := Load(path, Options{DetectHeader: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "channel", "medium"}, wb.Table.Columns)
	assert.Equal(t, 1, wb.Table.RowCount())

	wb, err = Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Exported 2024", wb.Table.Columns[0])
	assert.Equal(t, 3, wb.Table.RowCount())
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "touchpoints.csv",
		"\ufeffsessionId,channel,,channel,score\n"+
			"a,email,x,dup,1.5\n"+
			"b,,y,dup2,TRUE,extra\n")

	wb, err := Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"sessionId", "channel", "Unnamed: 2", "channel.1", "score", "Unnamed: 5"}, wb.Table.Columns)
	require.Equal(t, 2, wb.Table.RowCount())

	assert.Equal(t, types.Number(1.5), wb.Table.Rows[0][4])
	assert.True(t, wb.Table.Rows[0][5].IsNull())
	assert.True(t, wb.Table.Rows[1][1].IsNull())
	assert.Equal(t, types.Bool(true), wb.Table.Rows[1][4])
	assert.Equal(t, types.String("extra"), wb.Table.Rows[1][5])

	assert.Equal(t, []types.SheetInfo{{Name: "touchpoints", Rows: 3, Columns: 6, Visible: true}}, wb.Sheets)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		code string
	}{
		{
			name: "Missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.xlsx") },
			code: errors.CodeFileUnreadable,
		},
		{
			name: "Unsupported extension",
			path: func(t *testing.T) string { return writeFile(t, "data.ods", "whatever") },
			code: errors.CodeUnsupportedFormat,
		},
		{
			name: "Not a zip",
			path: func(t *testing.T) string { return writeFile(t, "broken.xlsx", "this is not a workbook") },
			code: errors.CodeCorruptFormat,
		},
		{
			name: "Bad quoting",
			path: func(t *testing.T) string { return writeFile(t, "broken.csv", "a,b\n\"unterminated,1\n") },
			code: errors.CodeCorruptFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t), Options{})
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "error: %v", err)
		})
	}
}

func TestScanSheets(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{{"a", "b"}, {1, 2}}, "Second", "Hidden")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetVisible("Hidden", false))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	sheets, err := ScanSheets(path)
	require.NoError(t, err)
	require.Len(t, sheets, 3)
	assert.Equal(t, types.SheetInfo{Name: "Sheet1", Rows: 2, Columns: 2, Visible: true}, sheets[0])
	assert.Equal(t, "Second", sheets[1].Name)
	assert.False(t, sheets[2].Visible)
}

func TestSheetExtent(t *testing.T) {
	tests := []struct {
		name    string
		rows    []xlsxreader.Row
		wantRow int
		wantCol int
		wantErr bool
	}{
		{"Empty", nil, 0, 0, false},
		{
			name: "Sparse",
			rows: []xlsxreader.Row{
				{Index: 1, Cells: []xlsxreader.Cell{{Column: "A"}, {Column: "B"}}},
				{Index: 7, Cells: []xlsxreader.Cell{{Column: "D"}}},
			},
			wantRow: 7,
			wantCol: 4,
		},
		{
			name: "Error mid sheet",
			rows: []xlsxreader.Row{
				{Index: 1, Cells: []xlsxreader.Cell{{Column: "A"}}},
				{Error: stderrors.New("bad xml")},
				{Index: 2, Cells: []xlsxreader.Cell{{Column: "B"}}},
				{Index: 3, Cells: []xlsxreader.Cell{{Column: "C"}}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// unbuffered, so the sender blocks unless every row is read
			ch := make(chan xlsxreader.Row)
			done := make(chan struct{})
			go func() {
				defer close(done)
				defer close(ch)
				for _, row := range tt.rows {
					ch <- row
				}
			}()

			lastRow, lastCol, err := sheetExtent(ch)
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("sender still blocked after sheetExtent returned")
			}

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRow, lastRow)
			assert.Equal(t, tt.wantCol, lastCol)
		})
	}
}

func TestColumnNames(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		width    int
		expected []string
	}{
		{"Plain", []string{"a", "b"}, 2, []string{"a", "b"}},
		{"Blank header", []string{"a", " "}, 2, []string{"a", "Unnamed: 1"}},
		{"Wider than header", []string{"a"}, 3, []string{"a", "Unnamed: 1", "Unnamed: 2"}},
		{"Duplicates", []string{"a", "a", "a"}, 3, []string{"a", "a.1", "a.2"}},
		{"Duplicate collides with existing suffix", []string{"a", "a.1", "a"}, 3, []string{"a", "a.1", "a.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, columnNames(tt.header, tt.width))
		})
	}
}

func TestFindHeaderRow(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected int
	}{
		{"First row", [][]string{{"a", "b"}, {"1", "2"}}, 0},
		{"After title", [][]string{{"Report"}, {"", ""}, {"id", "name", "x"}, {"1", "2", "3"}}, 2},
		{"Numbers only", [][]string{{"1", "2"}, {"3", "4"}}, -1},
		{"Empty", nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, findHeaderRow(tt.rows))
		})
	}
}
