package viewer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/earthsci/goearth/pkg/geo"
	"github.com/earthsci/goearth/pkg/globe"
	"github.com/earthsci/goearth/pkg/layer"
	"github.com/earthsci/goearth/pkg/view"
)

const testRadius = 6371000.0

func testRenderer(width, height int) (*GlobeRenderer, globe.Globe, *view.OrbitView) {
	g := globe.NewSphere(testRadius)
	v := view.NewOrbitView()
	v.SetCenter(geo.NewPosition(0, 0, 0))
	v.SetZoom(2.5e7)
	return NewGlobeRenderer(g, v, width, height), g, v
}

func TestProjectCenterOfView(t *testing.T) {
	r, g, v := testRenderer(400, 300)
	r.Render(nil)

	mvp := v.Projection().Mul4(v.ModelView())
	center := g.PointFromPosition(v.State().Center())

	x, y, ok := r.project(mvp, center)
	if !ok {
		t.Fatal("center of view should be projectable")
	}
	if math.Abs(x-200) > 1e-6 {
		t.Errorf("expected x = 200, got %v", x)
	}
	if math.Abs(y-150) > 1e-6 {
		t.Errorf("expected y = 150, got %v", y)
	}
}

func TestProjectBehindEye(t *testing.T) {
	r, g, v := testRenderer(400, 300)
	r.Render(nil)

	mvp := v.Projection().Mul4(v.ModelView())
	eye := v.State().EyePoint(g)
	behind := eye.Add(eye.Sub(g.PointFromPosition(v.State().Center())))

	if _, _, ok := r.project(mvp, behind); ok {
		t.Error("point behind the eye should not be projectable")
	}
}

func TestFacesEye(t *testing.T) {
	r, g, v := testRenderer(400, 300)
	r.Render(nil)
	eye := v.State().EyePoint(g)

	near := geo.NewLatLon(0, 0)
	if !r.facesEye(eye, g.PointFromPosition(geo.Position{LatLon: near}), near.Lat, near.Lon) {
		t.Error("near side surface point should face the eye")
	}

	far := geo.NewLatLon(0, 180)
	if r.facesEye(eye, g.PointFromPosition(geo.Position{LatLon: far}), far.Lat, far.Lon) {
		t.Error("far side surface point should not face the eye")
	}
}

func TestRenderDrawsGraticule(t *testing.T) {
	r, _, _ := testRenderer(400, 300)
	img := r.Render(nil)

	background := r.style.Background
	drawn := 0
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			if img.RGBAAt(x, y) != background {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Fatal("expected a rendered frame to contain graticule pixels")
	}

	// the globe does not fill the frame at this zoom
	if img.RGBAAt(0, 0) != background {
		t.Error("expected background in the image corner")
	}
}

func TestRenderDrawsLayerMarkers(t *testing.T) {
	r, _, _ := testRenderer(400, 300)

	root := layer.NewNode("Layers")
	site := layer.NewNode("Site")
	site.SetLocation(geo.NewLatLon(0, 0))
	root.Add(site)

	hidden := layer.NewNode("Far side")
	hidden.SetLocation(geo.NewLatLon(0, 180))
	root.Add(hidden)

	img := r.Render(root)

	if !containsColor(img, 195, 145, 205, 155, r.style.Marker) {
		t.Error("expected a marker near the image center")
	}
}

func TestRenderMarkerCulledOnFarSide(t *testing.T) {
	r, _, _ := testRenderer(400, 300)

	root := layer.NewNode("Layers")
	hidden := layer.NewNode("Far side")
	hidden.SetLocation(geo.NewLatLon(0, 180))
	root.Add(hidden)

	plain := r.Render(nil)
	withLayer := r.Render(root)

	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			if plain.RGBAAt(x, y) != withLayer.RGBAAt(x, y) {
				t.Fatalf("far side marker changed pixel (%d, %d)", x, y)
			}
		}
	}
}

func containsColor(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) bool {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if img.RGBAAt(x, y) == col {
				return true
			}
		}
	}
	return false
}
