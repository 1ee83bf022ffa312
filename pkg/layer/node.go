package layer

import (
	"sync"

	"github.com/earthsci/goearth/pkg/geo"
)

// Node is a named node in the layer catalog tree. Children may be mutated
// from a background load, so access is guarded.
type Node struct {
	name     string
	location *geo.LatLon

	mu       sync.Mutex
	parent   *Node
	children []*Node
	lazy     *LazyNode
}

// NewNode creates a tree node with the given display name
func NewNode(name string) *Node {
	return &Node{name: name}
}

// Name returns the display name
func (n *Node) Name() string {
	return n.name
}

// Location returns the geographic location of the layer, if it has one
func (n *Node) Location() (geo.LatLon, bool) {
	if n.location == nil {
		return geo.LatLon{}, false
	}
	return *n.location, true
}

// SetLocation sets the geographic location of the layer
func (n *Node) SetLocation(loc geo.LatLon) {
	n.location = &loc
}

// Parent returns the parent node, or nil for the root
func (n *Node) Parent() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.parent
}

// Add appends a child node
func (n *Node) Add(child *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	child.mu.Lock()
	child.parent = n
	child.mu.Unlock()
	n.children = append(n.children, child)
}

// Remove removes a child node and reports whether it was present
func (n *Node) Remove(child *Node) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.mu.Lock()
			child.parent = nil
			child.mu.Unlock()
			return true
		}
	}
	return false
}

// Children returns a copy of the child list
func (n *Node) Children() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Lazy returns the lazy loader attached to this node, or nil when the
// children are static
func (n *Node) Lazy() *LazyNode {
	return n.lazy
}

// Walk visits the node and every descendant in depth-first order
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children() {
		c.Walk(visit)
	}
}
