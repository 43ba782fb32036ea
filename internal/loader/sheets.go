package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/xlsxprobe/internal/errors"
	"github.com/nconklindev/xlsxprobe/internal/types"

	"github.com/thedatashed/xlsxreader"
	"github.com/xuri/excelize/v2"
)

// ScanSheets lists every sheet in the file with its row and column extent,
// without building a Table.
func ScanSheets(filePath string) ([]types.SheetInfo, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, errors.FileUnreadable(filePath, err)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		f, err := excelize.OpenFile(filePath)
		if err != nil {
			return nil, openError(filePath, err)
		}
		defer f.Close()
		return scanXLSXSheets(f, filePath)
	case ".csv":
		records, err := readCSVRecords(filePath)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		return []types.SheetInfo{csvSheetInfo(name, records)}, nil
	default:
		return nil, errors.UnsupportedFormat(ext)
	}
}

// scanXLSXSheets streams each sheet with xlsxreader so large sheets are
// counted without holding them in memory. Visibility comes from excelize.
func scanXLSXSheets(f *excelize.File, filePath string) ([]types.SheetInfo, error) {
	xl, err := xlsxreader.OpenFile(filePath)
	if err != nil {
		return nil, errors.CorruptFormat(filePath, err)
	}
	defer xl.Close()

	sheets := make([]types.SheetInfo, 0, len(xl.Sheets))
	for _, name := range f.GetSheetList() {
		info := types.SheetInfo{Name: name, Visible: sheetVisible(f, name)}
		info.Rows, info.Columns, err = sheetExtent(xl.ReadRows(name))
		if err != nil {
			return nil, errors.CorruptFormat(filePath, err)
		}
		sheets = append(sheets, info)
	}
	return sheets, nil
}

// sheetExtent returns the last row index and widest column seen on rows.
// The channel is always read to the end so the reader goroutine can exit.
func sheetExtent(rows <-chan xlsxreader.Row) (lastRow, lastCol int, err error) {
	for row := range rows {
		if err != nil {
			continue
		}
		if row.Error != nil {
			err = row.Error
			continue
		}
		if row.Index > lastRow {
			lastRow = row.Index
		}
		for _, cell := range row.Cells {
			col, colErr := excelize.ColumnNameToNumber(cell.Column)
			if colErr == nil && col > lastCol {
				lastCol = col
			}
		}
	}
	if err != nil {
		return 0, 0, err
	}
	return lastRow, lastCol, nil
}

// countXLSXSheets is the in-memory fallback when streaming fails.
func countXLSXSheets(f *excelize.File) []types.SheetInfo {
	list := f.GetSheetList()
	sheets := make([]types.SheetInfo, 0, len(list))
	for _, name := range list {
		info := types.SheetInfo{Name: name, Visible: sheetVisible(f, name)}
		rows, err := f.GetRows(name)
		if err == nil {
			info.Rows = len(rows)
			for _, row := range rows {
				if len(row) > info.Columns {
					info.Columns = len(row)
				}
			}
		}
		sheets = append(sheets, info)
	}
	return sheets
}

func sheetVisible(f *excelize.File, name string) bool {
	visible, err := f.GetSheetVisible(name)
	return err == nil && visible
}
