package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/earthsci/goearth/pkg/geo"
	"github.com/earthsci/goearth/pkg/globe"
	"github.com/earthsci/goearth/pkg/layer"
	"github.com/earthsci/goearth/pkg/view"
	"github.com/earthsci/goearth/pkg/viewer"
)

var (
	renderOut     string
	renderWidth   int
	renderHeight  int
	renderLat     float64
	renderLon     float64
	renderHeading float64
	renderPitch   float64
	renderZoom    float64
)

var renderCmd = &cobra.Command{
	Use:   "render [catalog]",
	Short: "Render a globe snapshot to a PNG file",
	Long: `Render a snapshot of the globe from the given view parameters
without opening a window. When a catalog is given, located layers are
drawn as markers.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "globe.png", "Output PNG file")
	renderCmd.Flags().IntVar(&renderWidth, "width", 1200, "Image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 900, "Image height in pixels")
	renderCmd.Flags().Float64Var(&renderLat, "lat", 0, "Center latitude in degrees")
	renderCmd.Flags().Float64Var(&renderLon, "lon", 0, "Center longitude in degrees")
	renderCmd.Flags().Float64Var(&renderHeading, "heading", 0, "View heading in degrees")
	renderCmd.Flags().Float64Var(&renderPitch, "pitch", 0, "View pitch in degrees")
	renderCmd.Flags().Float64Var(&renderZoom, "zoom", 2.5e7, "Zoom distance in meters")
}

func runRender(cmd *cobra.Command, args []string) {
	var root *layer.Node
	if len(args) > 0 {
		catalog, err := layer.LoadCatalog(args[0], layer.NewRetriever())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
			os.Exit(1)
		}
		root = catalog.Root
	}

	v := view.NewOrbitView()
	v.SetCenter(geo.NewPosition(renderLat, renderLon, 0))
	v.SetHeading(geo.Angle(renderHeading))
	v.SetPitch(geo.Angle(renderPitch))
	v.SetZoom(renderZoom)

	renderer := viewer.NewGlobeRenderer(globe.NewEarth(), v, renderWidth, renderHeight)
	img := renderer.Render(root)

	f, err := os.Create(renderOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %dx%d snapshot to %s\n", renderWidth, renderHeight, renderOut)
}
