package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openlead/leadgen-cli/internal/source"
)

var sourcesCatalog string

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect the configured source catalog",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := sourcesCatalog
		if path == "" {
			path = cfg.Sources.Catalog
		}
		cat, err := source.LoadCatalog(path)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tKIND\tTARGET")
		for _, e := range cat.Sources {
			target := e.Path
			if e.Type == "api" {
				target = e.URL
			}
			kind := e.Kind
			if kind == "" {
				kind = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Type, kind, target)
		}
		return w.Flush()
	},
}

func init() {
	sourcesCmd.PersistentFlags().StringVar(&sourcesCatalog, "catalog", "", "source catalog path (default from config)")
	sourcesCmd.AddCommand(sourcesListCmd)
	rootCmd.AddCommand(sourcesCmd)
}
