package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ============================================================================
// CSV SOURCE: one file per table, header row first
// ============================================================================

// ParseStartupsCSV parses the startup table from CSV.
func ParseStartupsCSV(r io.Reader, source string) ([]StartupRecord, error) {
	headers, rows, err := readCSV(r, source)
	if err != nil {
		return nil, err
	}
	return parseStartups(source, headers, rows)
}

// ParseFundingCSV parses the funding table from CSV.
func ParseFundingCSV(r io.Reader, source string) ([]FundingPeriodRecord, error) {
	headers, rows, err := readCSV(r, source)
	if err != nil {
		return nil, err
	}
	return parseFunding(source, headers, rows)
}

func readCSV(r io.Reader, source string) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // short trailing rows are common in exported sheets

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, loadError(source, ErrEmptyTable)
	}
	if err != nil {
		return nil, nil, loadError(source, fmt.Errorf("read CSV headers: %w", err))
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, loadError(source, fmt.Errorf("read CSV rows: %w", err))
	}
	return headers, rows, nil
}

func loadCSV(src Source) (*Store, error) {
	startups, err := withFile(src.StartupsPath, func(f *os.File) ([]StartupRecord, error) {
		return ParseStartupsCSV(f, src.StartupsPath)
	})
	if err != nil {
		return nil, err
	}
	funding, err := withFile(src.FundingPath, func(f *os.File) ([]FundingPeriodRecord, error) {
		return ParseFundingCSV(f, src.FundingPath)
	})
	if err != nil {
		return nil, err
	}
	return NewStore(startups, funding), nil
}

func withFile[T any](path string, fn func(*os.File) (T, error)) (T, error) {
	var zero T
	if path == "" {
		return zero, loadError("csv", errors.New("file path is empty"))
	}
	f, err := os.Open(path)
	if err != nil {
		return zero, loadError(path, err)
	}
	defer f.Close()
	return fn(f)
}
