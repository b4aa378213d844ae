package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/batch"
	"github.com/philipparndt/gomesh/internal/logging"
)

// errBatchFailed marks a batch in which at least one file failed
var errBatchFailed = errors.New("one or more files failed")

func newBatchCmd(a *app) *cobra.Command {
	var (
		workers  int
		validate bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "Calculate the volume of many files in parallel",
		Long: `Parse many STL, OBJ or OpenSCAD files in parallel and print one line
per file. Exits non-zero if any file failed.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Batch.Workers
			}

			var gate batch.Gate
			if validate {
				gate = a.validator()
			}

			ctx := cmd.Context()
			log := logging.FromContext(ctx)
			log.Info("batch started", "files", len(args), "workers", workers)

			runner := batch.NewRunner(workers, gate)
			runner.Source = a.meshSource
			outcomes := runner.Run(ctx, args)
			summary := batch.Summarize(outcomes)
			log.Info("batch finished", "files", summary.Files, "failed", summary.Failed)

			if asJSON {
				err := writeJSON(cmd.OutOrStdout(), struct {
					Files   []batch.Outcome `json:"files"`
					Summary batch.Summary   `json:"summary"`
				}{outcomes, summary})
				if err != nil {
					return err
				}
			} else {
				printBatch(cmd.OutOrStdout(), outcomes, summary)
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%w: %d of %d", errBatchFailed, summary.Failed, summary.Files)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of files parsed in parallel")
	cmd.Flags().BoolVar(&validate, "validate", false, "Apply the upload limits before parsing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the results as JSON")
	return cmd
}

func printBatch(w io.Writer, outcomes []batch.Outcome, summary batch.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tFORMAT\tTRIANGLES\tVOLUME (mm³)\tVOLUME (cm³)\tSTATUS")
	for _, o := range outcomes {
		if !o.OK() {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s\n", o.Path, o.Error)
			continue
		}
		status := "ok"
		if o.Result.Truncated {
			status = "truncated"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.3f\t%.6f\t%s\n",
			o.Path, o.Result.Format, o.Result.TriangleCount, o.Result.VolumeMM3, o.Result.VolumeCM3, status)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d files, %d failed, total volume %.6f cm³\n", summary.Files, summary.Failed, summary.VolumeCM3)
}
