package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/padangco/seagreen/engine"
)

// TableSheet is the sheet name of exported tables.
const TableSheet = "Startups"

// TableXLSX writes t as a single-sheet workbook: a header row, one row per
// startup and the summary row. Numeric columns are written as numbers.
func TableXLSX(w io.Writer, t *engine.TableData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TableSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, c := range t.Columns {
		if err := setCell(f, i+1, 1, c.Label); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(TableSheet, col, col, 20); err != nil {
			return fmt.Errorf("set width of column %s: %w", col, err)
		}
	}

	for r, row := range t.Rows {
		for i, v := range row {
			if err := setCell(f, i+1, r+2, cellValue(t.Columns[i], v)); err != nil {
				return fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
	}

	if t.Summary != nil {
		row := len(t.Rows) + 2
		if err := setCell(f, 1, row, t.Summary.Label); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		for i, c := range t.Columns {
			v, ok := t.Summary.Values[c.Key]
			if !ok {
				continue
			}
			if err := setCell(f, i+1, row, v); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// setCell writes v at 1-based (col, row) of the table sheet.
func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(TableSheet, cell, v)
}

func cellValue(c engine.Column, v string) any {
	if c.Type != "number" || v == "" {
		return v
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return v
}
