package layer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/earthsci/goearth/pkg/geo"
)

// catalogEntry is the JSON form of a catalog tree node. An entry with a
// url loads its children lazily from the remote document at that address.
type catalogEntry struct {
	Name   string         `json:"name"`
	URL    string         `json:"url,omitempty"`
	Lat    *float64       `json:"lat,omitempty"`
	Lon    *float64       `json:"lon,omitempty"`
	Layers []catalogEntry `json:"layers,omitempty"`
}

// Catalog is a tree of layers, loaded from a catalog document
type Catalog struct {
	Name string
	Root *Node
}

// LoadCatalog reads and parses a catalog file
func LoadCatalog(path string, retriever *Retriever) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	c, err := ParseCatalog(data, retriever)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog parses a catalog document. Entries with a url get a lazy
// loader attached that retrieves their children on demand.
func ParseCatalog(data []byte, retriever *Retriever) (*Catalog, error) {
	var root catalogEntry
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if root.Name == "" {
		root.Name = "Layers"
	}
	return &Catalog{Name: root.Name, Root: buildNode(root, retriever)}, nil
}

func buildNode(e catalogEntry, retriever *Retriever) *Node {
	n := NewNode(e.Name)
	if e.Lat != nil && e.Lon != nil {
		n.SetLocation(geo.NewLatLon(*e.Lat, *e.Lon))
	}
	if e.URL != "" {
		AttachLazy(n, e.URL, retriever, catalogHandler(retriever))
	}
	for _, child := range e.Layers {
		n.Add(buildNode(child, retriever))
	}
	return n
}

// catalogHandler parses a remote catalog document and returns its layers
// as child nodes. Remote documents use the same format as catalog files;
// nested urls keep loading lazily.
func catalogHandler(retriever *Retriever) HandlerFunc {
	return func(data []byte, url string) ([]*Node, error) {
		var doc catalogEntry
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing catalog document: %w", err)
		}
		children := make([]*Node, 0, len(doc.Layers))
		for _, child := range doc.Layers {
			children = append(children, buildNode(child, retriever))
		}
		return children, nil
	}
}

// Stats summarizes a catalog tree
type Stats struct {
	Nodes   int // total nodes in the tree
	Lazy    int // nodes that load children remotely
	Located int // nodes with a geographic location
	Depth   int // maximum tree depth
}

// Stats walks the currently loaded tree and summarizes it
func (c *Catalog) Stats() Stats {
	var s Stats
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		s.Nodes++
		if n.Lazy() != nil {
			s.Lazy++
		}
		if _, ok := n.Location(); ok {
			s.Located++
		}
		if depth > s.Depth {
			s.Depth = depth
		}
		for _, child := range n.Children() {
			walk(child, depth+1)
		}
	}
	walk(c.Root, 1)
	return s
}
