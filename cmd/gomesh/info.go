package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/pkg/analysis"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

func newInfoCmd(a *app) *cobra.Command {
	var (
		edgeCount int
		longest   bool
		shortest  bool
	)

	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Display general information about a mesh",
		Long:  "Show dimensions, triangle count, surface area, volume and edge statistics.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, cleanup, err := a.meshSource(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			decoded, err := mesh.LoadFile(path)
			if err != nil {
				return err
			}

			result := analysis.AnalyzeMesh(decoded.Mesh)
			w := cmd.OutOrStdout()
			printInfo(w, args[0], decoded, result)

			if longest {
				printEdges(w, fmt.Sprintf("Top %d Longest Edges", edgeCount), analysis.FindLongestEdges(result, edgeCount))
			}
			if shortest {
				printEdges(w, fmt.Sprintf("Top %d Shortest Edges", edgeCount), analysis.FindShortestEdges(result, edgeCount))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&edgeCount, "count", "n", 10, "Number of edges to display")
	cmd.Flags().BoolVarP(&longest, "longest", "l", false, "Show longest edges")
	cmd.Flags().BoolVarP(&shortest, "shortest", "s", false, "Show shortest edges")
	return cmd
}

func printInfo(w io.Writer, file string, decoded *mesh.Decoded, result *analysis.MeasurementResult) {
	fmt.Fprintln(w, "Mesh Information")
	fmt.Fprintln(w, "================")
	fmt.Fprintf(w, "File: %s\n", file)
	fmt.Fprintf(w, "Format: %s\n\n", decoded.Format)

	fmt.Fprintln(w, "Model Statistics:")
	fmt.Fprintf(w, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(w, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(w, "  Edges: %d\n", result.EdgeCount)
	if result.SkippedTriangles > 0 {
		fmt.Fprintf(w, "  Skipped Triangles: %d\n", result.SkippedTriangles)
	}
	fmt.Fprintf(w, "  Surface Area: %.6f mm²\n\n", result.SurfaceArea)

	if result.TriangleCount > 0 {
		fmt.Fprintln(w, "Bounding Box:")
		fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
		fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
		fmt.Fprintf(w, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

		fmt.Fprintln(w, "Dimensions:")
		fmt.Fprintf(w, "  Width (X): %.6f mm\n", result.Dimensions.X)
		fmt.Fprintf(w, "  Depth (Y): %.6f mm\n", result.Dimensions.Y)
		fmt.Fprintf(w, "  Height (Z): %.6f mm\n", result.Dimensions.Z)
		fmt.Fprintf(w, "  Diagonal: %.6f mm\n\n", result.BoundingBox.Diagonal())
	}

	fmt.Fprintln(w, "Volume:")
	fmt.Fprintf(w, "  Enclosed: %.6f mm³\n", result.Volume)
	fmt.Fprintf(w, "  Bounding Box: %.6f mm³\n", result.BoundingBoxVolume)
	fmt.Fprintf(w, "  Fill Ratio: %.2f%%\n", result.FillRatio()*100)
	if decoded.Truncated {
		fmt.Fprintln(w, "  Warning: file is truncated")
	}

	if result.EdgeCount > 0 {
		fmt.Fprintln(w, "\nEdge Lengths:")
		fmt.Fprintf(w, "  Minimum: %.6f mm\n", result.MinEdgeLength)
		fmt.Fprintf(w, "  Maximum: %.6f mm\n", result.MaxEdgeLength)
		fmt.Fprintf(w, "  Average: %.6f mm\n", result.AvgEdgeLength)
	}
}

func printEdges(w io.Writer, title string, edges []analysis.EdgeInfo) {
	fmt.Fprintf(w, "\n%s\n", title)
	for i, edge := range edges {
		fmt.Fprintf(w, "  %d. %.6f mm  %s -> %s  (triangle %d)\n",
			i+1, edge.Length, analysis.FormatVector(edge.Start), analysis.FormatVector(edge.End), edge.TriangleID)
	}
}
