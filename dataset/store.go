package dataset

import (
	"context"
	"fmt"
	"log"
	"slices"
)

// SourceKind names a dataset backend.
type SourceKind string

const (
	SourceCSV      SourceKind = "csv"
	SourceXLSX     SourceKind = "xlsx"
	SourceSQLite   SourceKind = "sqlite"
	SourcePostgres SourceKind = "postgres"
)

// Source says where the two tables live. Which fields matter depends on Kind:
// csv uses StartupsPath/FundingPath, xlsx uses WorkbookPath and the table
// names as sheet names, sqlite/postgres use DSN and the table names.
type Source struct {
	Kind          SourceKind
	StartupsPath  string
	FundingPath   string
	WorkbookPath  string
	DSN           string
	StartupsTable string
	FundingTable  string
}

// Store holds both tables for the life of the process. It has no mutation
// methods; accessors return copies.
type Store struct {
	startups []StartupRecord
	funding  []FundingPeriodRecord
}

// NewStore builds a Store from already-parsed records. The slices are copied.
func NewStore(startups []StartupRecord, funding []FundingPeriodRecord) *Store {
	return &Store{
		startups: slices.Clone(startups),
		funding:  slices.Clone(funding),
	}
}

// Load reads both tables from src. Any failure is a *DataLoadError.
func Load(ctx context.Context, src Source) (*Store, error) {
	var (
		store *Store
		err   error
	)
	switch src.Kind {
	case SourceCSV, "":
		store, err = loadCSV(src)
	case SourceXLSX:
		store, err = loadXLSX(src)
	case SourceSQLite, SourcePostgres:
		store, err = loadSQL(ctx, src)
	default:
		return nil, loadError(string(src.Kind), fmt.Errorf("unknown data source kind %q", src.Kind))
	}
	if err != nil {
		return nil, err
	}

	log.Printf("📊 Loaded %d startups and %d funding rows from %s source",
		store.NumStartups(), store.NumFunding(), orDefault(string(src.Kind), string(SourceCSV)))
	return store, nil
}

// Startups returns a copy of the startup table in source order.
func (s *Store) Startups() []StartupRecord { return slices.Clone(s.startups) }

// Funding returns a copy of the funding table in source order.
func (s *Store) Funding() []FundingPeriodRecord { return slices.Clone(s.funding) }

// NumStartups returns the startup row count.
func (s *Store) NumStartups() int { return len(s.startups) }

// NumFunding returns the funding row count.
func (s *Store) NumFunding() int { return len(s.funding) }
