package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ============================================================================
// XLSX SOURCE: one workbook, one sheet per table
// ============================================================================

// Default sheet names inside a dashboard workbook.
const (
	DefaultStartupsSheet = "Startups"
	DefaultFundingSheet  = "Funding"
)

func loadXLSX(src Source) (*Store, error) {
	f, err := excelize.OpenFile(src.WorkbookPath)
	if err != nil {
		return nil, loadError(src.WorkbookPath, fmt.Errorf("open workbook: %w", err))
	}
	defer f.Close()

	startupsSheet := orDefault(src.StartupsTable, DefaultStartupsSheet)
	fundingSheet := orDefault(src.FundingTable, DefaultFundingSheet)

	headers, rows, err := readSheet(f, src.WorkbookPath, startupsSheet)
	if err != nil {
		return nil, err
	}
	startups, err := parseStartups(src.WorkbookPath+"#"+startupsSheet, headers, rows)
	if err != nil {
		return nil, err
	}

	headers, rows, err = readSheet(f, src.WorkbookPath, fundingSheet)
	if err != nil {
		return nil, err
	}
	funding, err := parseFunding(src.WorkbookPath+"#"+fundingSheet, headers, rows)
	if err != nil {
		return nil, err
	}

	return NewStore(startups, funding), nil
}

func readSheet(f *excelize.File, path, sheet string) ([]string, [][]string, error) {
	source := path + "#" + sheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, nil, loadError(source, fmt.Errorf("sheet %q not found", sheet))
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, loadError(source, fmt.Errorf("read sheet: %w", err))
	}
	if len(rows) == 0 {
		return nil, nil, loadError(source, ErrEmptyTable)
	}
	return rows[0], rows[1:], nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
