package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/logging"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

func newVolumeCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "volume [file]",
		Short: "Calculate the enclosed volume of a mesh",
		Long: `Parse an STL (ASCII or binary), OBJ or OpenSCAD file and print its volume
in mm³ and cm³. Coordinates are taken to be millimetres.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path, cleanup, err := a.meshSource(ctx, args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := mesh.ParseFile(path)
			if err != nil {
				return err
			}
			logging.WithFields(ctx, "file", args[0]).Debug("parsed",
				"format", result.Format, "triangles", result.TriangleCount, "truncated", result.Truncated)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printVolume(cmd.OutOrStdout(), args[0], result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printVolume(w io.Writer, file string, result mesh.ParseResult) {
	fmt.Fprintf(w, "File: %s\n", file)
	fmt.Fprintf(w, "Format: %s\n", result.Format)
	fmt.Fprintf(w, "Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(w, "Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(w, "Volume: %.6f mm³\n", result.VolumeMM3)
	fmt.Fprintf(w, "Volume: %.6f cm³\n", result.VolumeCM3)
	if result.Truncated {
		fmt.Fprintln(w, "Warning: file is truncated, volume covers the triangles present")
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
