package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/earthsci/goearth/pkg/layer"
)

var infoTree bool

var infoCmd = &cobra.Command{
	Use:   "info [catalog]",
	Short: "Display information about a layer catalog",
	Long:  "Show catalog statistics including layer counts, located layers, lazy entries and tree depth.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVarP(&infoTree, "tree", "t", false, "Print the full layer tree")
}

func runInfo(cmd *cobra.Command, args []string) {
	catalog, err := layer.LoadCatalog(args[0], layer.NewRetriever())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	stats := catalog.Stats()

	fmt.Printf("Catalog: %s\n", catalog.Name)
	fmt.Println("====================")
	fmt.Printf("Layers:  %d\n", stats.Nodes)
	fmt.Printf("Located: %d\n", stats.Located)
	fmt.Printf("Lazy:    %d\n", stats.Lazy)
	fmt.Printf("Depth:   %d\n", stats.Depth)

	if infoTree {
		fmt.Println()
		printTree(catalog.Root, 0)
	}
}

func printTree(n *layer.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	line := indent + n.Name()
	if loc, ok := n.Location(); ok {
		line += fmt.Sprintf(" (%.4f°, %.4f°)", loc.Lat.Degrees(), loc.Lon.Degrees())
	}
	if lazy := n.Lazy(); lazy != nil {
		line += fmt.Sprintf(" [lazy: %s]", lazy.URL())
	}
	fmt.Println(line)

	for _, c := range n.Children() {
		printTree(c, depth+1)
	}
}
