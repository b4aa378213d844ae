package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/logging"
	"github.com/philipparndt/gomesh/pkg/upload"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a file against the upload limits",
		Long: `Run the upload pre-flight checks (size, extension and content type)
using the configured limits, without parsing the mesh.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := a.validator()
			if err := v.ValidateFile(args[0]); err != nil {
				if rejection, ok := upload.IsRejection(err); ok {
					logging.WithFields(cmd.Context(), "file", args[0]).Info("upload rejected",
						"reason", rejection.Reason, "mime", rejection.MIME)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", args[0])
			return nil
		},
	}
}
