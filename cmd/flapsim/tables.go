package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/unklstewy/flapsim/pkg/config"
	"github.com/unklstewy/flapsim/pkg/report"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Convert the sweep CSVs into LaTeX tables",
	Long: `Convert every CSV under data/ into a LaTeX table written to
tables/<name>_table.tex. Run sweep first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runTables(cfg)
		return err
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cfg *config.Config) ([]string, error) {
	files, err := report.ConvertDir(cfg.Output.DataDir(), cfg.Output.TablesDir())
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		log.Printf("Wrote %s", f)
	}
	return files, nil
}
