package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/padangco/seagreen/render"
)

var exportArgs struct {
	out string
}

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Write the filtered startup table as XLSX",
	Example: `  seagreen export --country Singapore --out singapore.xlsx`,
	RunE:    runExport,
}

func init() {
	addSelectionFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportArgs.out, "out", "", "XLSX file to write (required)")
	exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, _ []string) error {
	sel, err := selectionFromFlags()
	if err != nil {
		return err
	}
	_, d, _, err := setup(cmd.Context(), nil)
	if err != nil {
		return err
	}

	table := d.Pass(sel).Table()
	w, closeOut, err := createOut(exportArgs.out)
	if err != nil {
		return err
	}
	if err := render.TableXLSX(w, table); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	log.Printf("📄 %d startups written to %s", len(table.Rows), exportArgs.out)
	return nil
}
