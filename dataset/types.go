package dataset

// ============================================================================
// DATASET TYPES: Startup records, funding rows, closed reference sets
// ============================================================================
// Records are plain values. The Store hands out copies, so nothing a
// caller does can reach the loaded rows.
//
// The enumerations below are the reference sets every view is shaped by.
// They are never inferred from data.
// ============================================================================

// StartupRecord is one row of the primary startup table.
type StartupRecord struct {
	Industry     string `json:"industry" yaml:"industry"`
	Activity1    string `json:"activity1,omitempty" yaml:"activity1,omitempty"`
	Activity2    string `json:"activity2,omitempty" yaml:"activity2,omitempty"`
	Activity3    string `json:"activity3,omitempty" yaml:"activity3,omitempty"`
	Country      string `json:"country" yaml:"country"`
	Company      string `json:"company" yaml:"company"`
	Website      string `json:"website,omitempty" yaml:"website,omitempty"`
	FoundedYear  int    `json:"foundedYear,omitempty" yaml:"foundedYear,omitempty"` // 0 = unknown
	CompanyStage string `json:"companyStage" yaml:"companyStage"`
}

// FundingPeriodRecord is one deal in the secondary funding table.
// Country labels in this table vary in case.
type FundingPeriodRecord struct {
	Country                 string  `json:"country" yaml:"country"`
	Period                  string  `json:"period" yaml:"period"`
	FundingAmountMillionUSD float64 `json:"fundingAmountMillionUSD" yaml:"fundingAmountMillionUSD"`
}

// Countries is the ASEAN-6 selection set.
var Countries = []string{
	"Indonesia",
	"Malaysia",
	"Philippines",
	"Singapore",
	"Thailand",
	"Vietnam",
}

// Stages is the funding stage ladder, in display order.
var Stages = []string{
	"Undisclosed",
	"Funding Unknown",
	"Pre-Seed",
	"Seed",
	"Pre Series A",
	"Series A",
	"Series B",
	"Series C",
	"Series D",
	"Acquired",
}

// Industries is the fixed industry taxonomy used by the treemap.
var Industries = []string{
	"Built Environment",
	"Energy",
	"Environmental Services and Finance",
	"Materials & Manufacturing",
	"Nature and Agriculture",
	"Transportation",
	"Waste Management",
}

var (
	countryIndex = indexOf(Countries)
	stageIndex   = indexOf(Stages)
)

// IsCountry reports whether c is one of Countries (exact match).
func IsCountry(c string) bool {
	_, ok := countryIndex[c]
	return ok
}

// IsStage reports whether s is one of Stages (exact match).
func IsStage(s string) bool {
	_, ok := stageIndex[s]
	return ok
}

// CountryOrder returns the position of c in Countries, or -1.
func CountryOrder(c string) int {
	if i, ok := countryIndex[c]; ok {
		return i
	}
	return -1
}

func indexOf(values []string) map[string]int {
	m := make(map[string]int, len(values))
	for i, v := range values {
		m[v] = i
	}
	return m
}
