// Package seagreen is the core of the Southeast Asia green-economy startup
// dashboard. It filters a startup table and a funding table by country and
// funding stage and derives the dashboard views from the result.
//
// Packages:
//
//	dataset    load and validate the two tables (CSV, XLSX, SQLite, Postgres)
//	filter     per-session country/stage selection with change notification
//	engine     base-filter pass and the derived views over RecordView
//	dashboard  recompute dispatcher, pass memo, sessions, metrics
//	render     PNG charts and XLSX export
//	server     HTTP API
//	config     defaults, YAML file, SEAGREEN_* environment
//
// Usage:
//
//	store, err := dataset.Load(ctx, dataset.Source{
//	    Kind:         dataset.SourceCSV,
//	    StartupsPath: "data/startups.csv",
//	    FundingPath:  "data/funding.csv",
//	})
//	sel, err := filter.NewSelection([]string{"Vietnam"}, "Seed")
//	pass := engine.NewPass(engine.Bind(store), sel)
//	pass.Count()
//	pass.StageDistribution()
//
// All computation is local and read-only over the loaded tables.
package seagreen
