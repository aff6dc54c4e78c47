package dataset

import (
	"strings"
)

// ============================================================================
// TABLE SCHEMA: Column layout of the two source tables
// ============================================================================
// Headers are matched by key, so "Founded Year", "founded_year" and
// "FOUNDED YEAR" all resolve to the same column. Unknown columns are ignored.
// ============================================================================

// ColumnMeta describes one source column.
type ColumnMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Required    bool   `json:"required"`
}

// TableSchema describes the columns a table must (or may) carry.
type TableSchema struct {
	Name    string       `json:"name"`
	Columns []ColumnMeta `json:"columns"`
}

// Column keys of the startup table.
const (
	ColIndustry     = "industry"
	ColActivity1    = "activity_1"
	ColActivity2    = "activity_2"
	ColActivity3    = "activity_3"
	ColCountry      = "country"
	ColCompany      = "company"
	ColWebsite      = "website"
	ColFoundedYear  = "founded_year"
	ColCompanyStage = "company_stage"
)

// Column keys of the funding table.
const (
	ColPeriod        = "period"
	ColFundingAmount = "funding_amount_(million_usd)"
)

// StartupSchema is the primary table layout.
var StartupSchema = TableSchema{
	Name: "startups",
	Columns: []ColumnMeta{
		{Key: ColIndustry, DisplayName: "Industry", Required: true},
		{Key: ColActivity1, DisplayName: "Activity 1"},
		{Key: ColActivity2, DisplayName: "Activity 2"},
		{Key: ColActivity3, DisplayName: "Activity 3"},
		{Key: ColCountry, DisplayName: "Country", Required: true},
		{Key: ColCompany, DisplayName: "Company", Required: true},
		{Key: ColWebsite, DisplayName: "Website"},
		{Key: ColFoundedYear, DisplayName: "Founded Year"},
		{Key: ColCompanyStage, DisplayName: "Company Stage", Required: true},
	},
}

// FundingSchema is the secondary table layout.
var FundingSchema = TableSchema{
	Name: "funding",
	Columns: []ColumnMeta{
		{Key: ColCountry, DisplayName: "Country", Required: true},
		{Key: ColPeriod, DisplayName: "Period", Required: true},
		{Key: ColFundingAmount, DisplayName: "Funding Amount (Million USD)", Required: true},
	},
}

// DisplayNames returns the display names in column order.
func (s TableSchema) DisplayNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.DisplayName
	}
	return names
}

// columnIndex maps column keys to positions in a source row.
type columnIndex map[string]int

// resolve matches raw headers against the schema.
func (s TableSchema) resolve(source string, headers []string) (columnIndex, error) {
	idx := make(columnIndex, len(s.Columns))
	for i, h := range headers {
		key := ColumnKey(h)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	for _, c := range s.Columns {
		if _, ok := idx[c.Key]; c.Required && !ok {
			return nil, &DataLoadError{Source: source, Column: c.DisplayName, Err: ErrMissingColumn}
		}
	}
	return idx, nil
}

// get returns the trimmed cell for key, or "" when the column or cell is absent.
func (idx columnIndex) get(row []string, key string) string {
	i, ok := idx[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ColumnKey converts "Column Name" → "column_name".
func ColumnKey(header string) string {
	s := strings.TrimPrefix(header, "\ufeff")
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
