package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/earthsci/goearth/version"
)

var rootCmd = &cobra.Command{
	Use:   "goearth",
	Short: "An interactive virtual globe viewer with layer catalogs",
	Long: `goearth is a virtual globe viewer built around an orbit camera.
It renders a WGS84 ellipsoid with a graticule overlay, loads layer
catalogs with lazily retrieved remote entries, and can render snapshot
images without opening a window.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
