package layer

import (
	"testing"
)

const catalogDocument = `{
	"name": "Australia",
	"layers": [
		{
			"name": "Base",
			"layers": [
				{"name": "Blue Marble", "lat": 0.0, "lon": 0.0},
				{"name": "Borders"}
			]
		},
		{"name": "Geoscience", "url": "http://example.invalid/geoscience.json"},
		{"name": "Canberra", "lat": -35.28, "lon": 149.13}
	]
}`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogDocument), NewRetriever())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if c.Name != "Australia" {
		t.Errorf("catalog name failed: %s", c.Name)
	}

	children := c.Root.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 top-level layers, got %d", len(children))
	}

	base := children[0]
	if base.Name() != "Base" || len(base.Children()) != 2 {
		t.Errorf("base folder failed: %s with %d children", base.Name(), len(base.Children()))
	}
	if base.Children()[0].Parent() != base {
		t.Error("parent link missing")
	}

	lazy := children[1].Lazy()
	if lazy == nil {
		t.Fatal("url entry has no lazy loader")
	}
	if lazy.URL() != "http://example.invalid/geoscience.json" {
		t.Errorf("lazy url failed: %s", lazy.URL())
	}

	if loc, ok := children[2].Location(); !ok || loc.Lat != -35.28 {
		t.Errorf("location failed: %v %v", loc, ok)
	}
}

func TestParseCatalogInvalid(t *testing.T) {
	if _, err := ParseCatalog([]byte("not json"), NewRetriever()); err == nil {
		t.Error("expected parse error")
	}
}

func TestParseCatalogDefaultName(t *testing.T) {
	c, err := ParseCatalog([]byte(`{"layers": []}`), NewRetriever())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if c.Name != "Layers" {
		t.Errorf("default name failed: %s", c.Name)
	}
}

func TestCatalogStats(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogDocument), NewRetriever())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	s := c.Stats()
	if s.Nodes != 6 {
		t.Errorf("nodes failed: expected 6, got %d", s.Nodes)
	}
	if s.Lazy != 1 {
		t.Errorf("lazy failed: expected 1, got %d", s.Lazy)
	}
	if s.Located != 2 {
		t.Errorf("located failed: expected 2, got %d", s.Located)
	}
	if s.Depth != 3 {
		t.Errorf("depth failed: expected 3, got %d", s.Depth)
	}
}

func TestNodeRemove(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	root.Add(a)
	root.Add(b)

	if !root.Remove(a) {
		t.Error("remove failed for present child")
	}
	if root.Remove(a) {
		t.Error("remove succeeded for absent child")
	}
	if len(root.Children()) != 1 || root.Children()[0] != b {
		t.Errorf("children wrong after remove: %v", root.Children())
	}
	if a.Parent() != nil {
		t.Error("removed child kept its parent")
	}
}
