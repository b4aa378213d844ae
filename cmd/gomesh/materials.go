package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMaterialsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List the material catalog",
		Long: `List the materials quotes can be priced in. The built-in catalog is
replaced by GOMESH_MATERIALS_FILE (.yaml, .yml or .toml) when set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), catalog)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDENSITY (g/cm³)\tPRICE/g\tCOLOR\tDESCRIPTION")
			for _, m := range catalog {
				fmt.Fprintf(tw, "%s\t%.2f\t%.4f\t%s\t%s\n", m.Name, m.Density, m.PricePerGram, m.Color, m.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}
