package loader

import (
	"encoding/csv"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nconklindev/xlsxprobe/internal/errors"
	"github.com/nconklindev/xlsxprobe/internal/types"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const RowDetectionLimit = 10

type Options struct {
	// DetectHeader picks the header row heuristically instead of using the
	// first row of the sheet.
	DetectHeader bool
}

// Load reads the first sheet of an .xlsx or .csv file into a Table and
// collects the shape of every sheet.
func Load(filePath string, opts Options) (*types.Workbook, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, errors.FileUnreadable(filePath, err)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return readXLSX(filePath, opts)
	case ".csv":
		return readCSV(filePath, opts)
	default:
		return nil, errors.UnsupportedFormat(ext)
	}
}

func readXLSX(filePath string, opts Options) (*types.Workbook, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, openError(filePath, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, errors.CorruptFormat(filePath, stderrors.New("workbook has no sheets"))
	}
	sheetName := sheetList[0]

	formatted, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.CorruptFormat(filePath, err)
	}
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.CorruptFormat(filePath, err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	log.WithFields(log.Fields{"sheet": sheetName, "rows": len(formatted)}).Debug("read first sheet")

	headerRowIdx := headerRow(formatted, opts)
	table := buildTable(sheetName, formatted, headerRowIdx, func(r, c int) types.Value {
		rawValue := ""
		if r < len(raw) && c < len(raw[r]) {
			rawValue = raw[r][c]
		}
		return inferXLSXCell(formatted[r][c], rawValue, cellType(f, sheetName, r, c), date1904)
	})

	sheets, err := scanXLSXSheets(f, filePath)
	if err != nil {
		log.WithError(err).Warn("streaming sheet scan failed, counting with excelize")
		sheets = countXLSXSheets(f)
	}

	return &types.Workbook{
		Path:   filePath,
		Sheets: sheets,
		Table:  table,
	}, nil
}

// cellType looks up the stored type of the cell at zero-based row r and
// column c. Unknown cells report CellTypeUnset.
func cellType(f *excelize.File, sheet string, r, c int) excelize.CellType {
	name, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return excelize.CellTypeUnset
	}
	t, err := f.GetCellType(sheet, name)
	if err != nil {
		return excelize.CellTypeUnset
	}
	return t
}

func readCSV(filePath string, opts Options) (*types.Workbook, error) {
	records, err := readCSVRecords(filePath)
	if err != nil {
		return nil, err
	}

	sheetName := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	headerRowIdx := headerRow(records, opts)
	table := buildTable(sheetName, records, headerRowIdx, func(r, c int) types.Value {
		return inferText(records[r][c])
	})

	return &types.Workbook{
		Path:   filePath,
		Sheets: []types.SheetInfo{csvSheetInfo(sheetName, records)},
		Table:  table,
	}, nil
}

func readCSVRecords(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.FileUnreadable(filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.CorruptFormat(filePath, err)
	}

	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

func csvSheetInfo(name string, records [][]string) types.SheetInfo {
	cols := 0
	for _, rec := range records {
		if len(rec) > cols {
			cols = len(rec)
		}
	}
	return types.SheetInfo{Name: name, Rows: len(records), Columns: cols, Visible: true}
}

// openError separates files we could not read from files that are not a
// valid workbook.
func openError(filePath string, err error) error {
	var pathErr *fs.PathError
	if stderrors.As(err, &pathErr) {
		return errors.FileUnreadable(filePath, err)
	}
	return errors.CorruptFormat(filePath, err)
}

func headerRow(rows [][]string, opts Options) int {
	if !opts.DetectHeader {
		return 0
	}
	if idx := findHeaderRow(rows); idx >= 0 {
		return idx
	}
	return 0
}

// buildTable turns raw rows into a Table whose header is rows[headerIdx].
// The column list is widened to the longest row and short rows are padded
// with nulls.
func buildTable(sheet string, rows [][]string, headerIdx int, cell func(r, c int) types.Value) *types.Table {
	table := &types.Table{Sheet: sheet}
	if headerIdx >= len(rows) {
		return table
	}

	width := 0
	for _, row := range rows[headerIdx:] {
		if len(row) > width {
			width = len(row)
		}
	}
	table.Columns = columnNames(rows[headerIdx], width)

	for r := headerIdx + 1; r < len(rows); r++ {
		values := make([]types.Value, width)
		for c := 0; c < width; c++ {
			if c < len(rows[r]) {
				values[c] = cell(r, c)
			} else {
				values[c] = types.Null()
			}
		}
		table.Rows = append(table.Rows, values)
	}
	return table
}

// columnNames names blank headers "Unnamed: <index>" and suffixes
// duplicates with ".1", ".2", ...
func columnNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		candidate := name
		for n := 1; seen[candidate]; n++ {
			candidate = name + "." + strconv.Itoa(n)
		}
		seen[candidate] = true
		names[i] = candidate
	}
	return names
}

// findHeaderRow locates the first row that appears to be a header
// by finding the row with the most non-empty text cells
func findHeaderRow(rows [][]string) int {
	maxNonEmpty := 0
	headerIdx := -1

	// Look at first 20 rows max
	searchLimit := len(rows)
	if searchLimit > RowDetectionLimit*2 {
		searchLimit = RowDetectionLimit * 2
	}

	for i := 0; i < searchLimit; i++ {
		nonEmptyCount := 0
		hasText := false

		for _, cell := range rows[i] {
			trimmed := strings.TrimSpace(cell)
			if trimmed != "" {
				nonEmptyCount++
				if containsLetters(trimmed) {
					hasText = true
				}
			}
		}

		// Header should have multiple columns AND contain text
		if nonEmptyCount >= 2 && hasText && nonEmptyCount > maxNonEmpty {
			maxNonEmpty = nonEmptyCount
			headerIdx = i
		}
	}

	return headerIdx
}

// containsLetters checks if a string contains any alphabetic characters
func containsLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
