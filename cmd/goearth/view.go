package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/earthsci/goearth/internal/app"
	"github.com/earthsci/goearth/pkg/geo"
)

var (
	viewLat  float64
	viewLon  float64
	viewZoom float64
)

var viewCmd = &cobra.Command{
	Use:   "view [catalog]",
	Short: "Open the interactive globe viewer",
	Long: `Open the interactive 3D globe viewer, optionally loading a layer
catalog file. The catalog is watched for changes and reloaded while the
viewer is running.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().Float64Var(&viewLat, "lat", 0, "Initial center latitude in degrees")
	viewCmd.Flags().Float64Var(&viewLon, "lon", 0, "Initial center longitude in degrees")
	viewCmd.Flags().Float64Var(&viewZoom, "zoom", 2.5e7, "Initial zoom distance in meters")
}

func runView(cmd *cobra.Command, args []string) {
	opts := app.DefaultOptions()
	opts.Center = geo.NewPosition(viewLat, viewLon, 0)
	opts.Zoom = viewZoom
	if len(args) > 0 {
		opts.CatalogPath = args[0]
	}

	if err := app.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
