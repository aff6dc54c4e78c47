package dataset

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// RECORD PARSING: headers + string rows → typed records
// ============================================================================
// Every backend (CSV, XLSX, SQL) reduces its table to a header row and
// string cells; the rules below are shared so all sources validate alike.
// ============================================================================

func parseStartups(source string, headers []string, rows [][]string) ([]StartupRecord, error) {
	idx, err := StartupSchema.resolve(source, headers)
	if err != nil {
		return nil, err
	}

	records := make([]StartupRecord, 0, len(rows))
	for n, row := range rows {
		if blankRow(row) {
			continue
		}
		rowNum := n + 1
		rec := StartupRecord{
			Industry:     idx.get(row, ColIndustry),
			Activity1:    idx.get(row, ColActivity1),
			Activity2:    idx.get(row, ColActivity2),
			Activity3:    idx.get(row, ColActivity3),
			Country:      idx.get(row, ColCountry),
			Company:      idx.get(row, ColCompany),
			Website:      idx.get(row, ColWebsite),
			CompanyStage: idx.get(row, ColCompanyStage),
		}

		if !IsCountry(rec.Country) {
			return nil, &DataLoadError{Source: source, Row: rowNum, Column: "Country",
				Err: fmt.Errorf("%q is not one of %s", rec.Country, strings.Join(Countries, ", "))}
		}
		if !IsStage(rec.CompanyStage) {
			return nil, &DataLoadError{Source: source, Row: rowNum, Column: "Company Stage",
				Err: fmt.Errorf("%q is not a known funding stage", rec.CompanyStage)}
		}

		year, err := parseYear(idx.get(row, ColFoundedYear))
		if err != nil {
			return nil, &DataLoadError{Source: source, Row: rowNum, Column: "Founded Year", Err: err}
		}
		rec.FoundedYear = year

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, loadError(source, ErrEmptyTable)
	}
	return records, nil
}

func parseFunding(source string, headers []string, rows [][]string) ([]FundingPeriodRecord, error) {
	idx, err := FundingSchema.resolve(source, headers)
	if err != nil {
		return nil, err
	}

	records := make([]FundingPeriodRecord, 0, len(rows))
	for n, row := range rows {
		if blankRow(row) {
			continue
		}
		rowNum := n + 1
		rec := FundingPeriodRecord{
			Country: idx.get(row, ColCountry),
			Period:  idx.get(row, ColPeriod),
		}
		if rec.Period == "" {
			return nil, &DataLoadError{Source: source, Row: rowNum, Column: "Period",
				Err: fmt.Errorf("period is empty")}
		}

		amount, err := parseAmount(idx.get(row, ColFundingAmount))
		if err != nil {
			return nil, &DataLoadError{Source: source, Row: rowNum, Column: "Funding Amount (Million USD)", Err: err}
		}
		rec.FundingAmountMillionUSD = amount

		if !knownCountryFold(rec.Country) {
			log.Printf("⚠️ %s row %d: country %q matches no selectable country", source, rowNum, rec.Country)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, loadError(source, ErrEmptyTable)
	}
	return records, nil
}

// parseYear accepts "2019" and spreadsheet-style "2019.0". Empty means unknown.
func parseYear(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a year", s)
	}
	return int(f), nil
}

// parseAmount accepts plain or comma-grouped numbers. Empty means no disclosed amount.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return f, nil
}

func knownCountryFold(c string) bool {
	for _, known := range Countries {
		if strings.EqualFold(c, known) {
			return true
		}
	}
	return false
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
