// Package xlsx appends result columns to spreadsheet files, one column per
// aggregation output. Concurrent writers to the same path are not supported.
package xlsx

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Writer appends columns to XLSX workbooks, creating them on first use.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// AppendColumn writes header into row 1 of the first free column of the
// active sheet and values from row 2 down. The first free column is column A
// for an untouched sheet, otherwise one past the last used column.
func (w *Writer) AppendColumn(path string, values []string, header string) error {
	f, err := open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cols, err := f.GetCols(sheet)
	if err != nil {
		return fmt.Errorf("xlsx read columns: %w", err)
	}

	col := len(cols) + 1
	if len(cols) <= 1 {
		a1, err := f.GetCellValue(sheet, "A1")
		if err != nil {
			return fmt.Errorf("xlsx read A1: %w", err)
		}
		if a1 == "" {
			col = 1
		}
	}

	cell, err := excelize.CoordinatesToCellName(col, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, header); err != nil {
		return err
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(col, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx save %s: %w", path, err)
	}
	return nil
}

func open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("xlsx open %s: %w", path, err)
		}
		return f, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("xlsx stat %s: %w", path, err)
	}
	return excelize.NewFile(), nil
}
