package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/logging"
	"github.com/philipparndt/gomesh/internal/pricing"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

type quoteOptions struct {
	material string
	infill   float64
	asJSON   bool
}

func newQuoteCmd(a *app) *cobra.Command {
	opts := &quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote [file]",
		Short: "Estimate weight and price of a print",
		Long: `Validate the file against the upload limits, calculate its volume and
price it for the chosen material and infill percentage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("infill") {
				opts.infill = a.cfg.Pricing.DefaultInfill
			}
			q, err := a.quote(cmd, args[0], opts)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), q)
			}
			printQuote(cmd.OutOrStdout(), args[0], q)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.material, "material", "m", "PLA", "Material name from the catalog")
	cmd.Flags().Float64VarP(&opts.infill, "infill", "i", 20, "Infill percentage (0-100)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the quote as JSON")
	return cmd
}

// quote runs validation, parsing and pricing for one file
func (a *app) quote(cmd *cobra.Command, file string, opts *quoteOptions) (pricing.Quote, error) {
	ctx := cmd.Context()

	catalog, err := a.catalog()
	if err != nil {
		return pricing.Quote{}, err
	}
	material, err := catalog.Lookup(opts.material)
	if err != nil {
		return pricing.Quote{}, err
	}

	path, cleanup, err := a.meshSource(ctx, file)
	if err != nil {
		return pricing.Quote{}, err
	}
	defer cleanup()

	if err := a.validator().ValidateFile(path); err != nil {
		return pricing.Quote{}, err
	}

	result, err := mesh.ParseFile(path)
	if err != nil {
		return pricing.Quote{}, err
	}

	q := pricing.NewQuote(material, result.VolumeCM3, opts.infill, a.pricingSettings())
	logging.WithFields(ctx, "file", file).Info("quoted",
		"material", q.Material, "infill", q.InfillPercent, "total", q.Total)
	return q, nil
}

func printQuote(w io.Writer, file string, q pricing.Quote) {
	fmt.Fprintf(w, "File: %s\n", file)
	fmt.Fprintf(w, "Material: %s\n", q.Material)
	fmt.Fprintf(w, "Infill: %.0f%%\n", q.InfillPercent)
	fmt.Fprintf(w, "Volume: %.4f cm³\n", q.VolumeCM3)
	fmt.Fprintf(w, "Weight: %.2f g\n", q.WeightGrams)
	fmt.Fprintf(w, "Material price: %.2f\n", q.MaterialPrice)
	if q.SetupFee > 0 {
		fmt.Fprintf(w, "Setup fee: %.2f\n", q.SetupFee)
	}
	if q.InfillSurcharge > 0 {
		fmt.Fprintf(w, "Infill surcharge: %.2f\n", q.InfillSurcharge)
	}
	if q.MinimumApplied {
		fmt.Fprintln(w, "Minimum price applied")
	}
	fmt.Fprintf(w, "Total: %.2f\n", q.Total)
}
