package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ============================================================================
// SQL SOURCE: two tables read through database/sql
// ============================================================================
// Drivers: "sqlite" (modernc.org/sqlite) and "postgres" (lib/pq).
// Every column is scanned as text and parsed by the shared record rules.
// ============================================================================

// Default table names in a dashboard database.
const (
	DefaultStartupsTable = "startups"
	DefaultFundingTable  = "funding"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func loadSQL(ctx context.Context, src Source) (*Store, error) {
	driver := string(src.Kind)
	db, err := sql.Open(driver, src.DSN)
	if err != nil {
		return nil, loadError(driver, fmt.Errorf("open database: %w", err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, loadError(driver, fmt.Errorf("ping database: %w", err))
	}

	startupsTable := orDefault(src.StartupsTable, DefaultStartupsTable)
	fundingTable := orDefault(src.FundingTable, DefaultFundingTable)

	headers, rows, err := readTable(ctx, db, driver, startupsTable)
	if err != nil {
		return nil, err
	}
	startups, err := parseStartups(driver+":"+startupsTable, headers, rows)
	if err != nil {
		return nil, err
	}

	headers, rows, err = readTable(ctx, db, driver, fundingTable)
	if err != nil {
		return nil, err
	}
	funding, err := parseFunding(driver+":"+fundingTable, headers, rows)
	if err != nil {
		return nil, err
	}

	return NewStore(startups, funding), nil
}

func readTable(ctx context.Context, db *sql.DB, driver, table string) ([]string, [][]string, error) {
	source := driver + ":" + table
	if !tableNamePattern.MatchString(table) {
		return nil, nil, loadError(source, fmt.Errorf("invalid table name %q", table))
	}

	// Table names cannot be bound as parameters; the pattern above guards the query.
	rs, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s`, table))
	if err != nil {
		return nil, nil, loadError(source, fmt.Errorf("query table: %w", err))
	}
	defer rs.Close()

	headers, err := rs.Columns()
	if err != nil {
		return nil, nil, loadError(source, fmt.Errorf("read columns: %w", err))
	}

	var rows [][]string
	for rs.Next() {
		cells := make([]sql.NullString, len(headers))
		dest := make([]any, len(headers))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rs.Scan(dest...); err != nil {
			return nil, nil, loadError(source, fmt.Errorf("scan row %d: %w", len(rows)+1, err))
		}
		row := make([]string, len(headers))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, nil, loadError(source, fmt.Errorf("iterate rows: %w", err))
	}
	return headers, rows, nil
}
