package viewer

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/earthsci/goearth/pkg/geo"
	"github.com/earthsci/goearth/pkg/globe"
	"github.com/earthsci/goearth/pkg/layer"
	"github.com/earthsci/goearth/pkg/view"
)

// Style holds the colors used by the globe renderer
type Style struct {
	Background color.RGBA
	Graticule  color.RGBA
	Equator    color.RGBA
	Meridian   color.RGBA
	Marker     color.RGBA
}

// DefaultStyle returns the default dark color scheme
func DefaultStyle() Style {
	return Style{
		Background: color.RGBA{16, 16, 24, 255},
		Graticule:  color.RGBA{80, 110, 140, 255},
		Equator:    color.RGBA{200, 120, 60, 255},
		Meridian:   color.RGBA{90, 160, 90, 255},
		Marker:     color.RGBA{240, 220, 80, 255},
	}
}

// GlobeRenderer draws a wireframe globe with an optional layer overlay
// into an RGBA image. It shares the view transforms of the interactive
// viewer, so a rendered frame matches what the 3D window would show for
// the same orbit view.
type GlobeRenderer struct {
	globe globe.Globe
	view  *view.OrbitView

	width  int
	height int
	style  Style

	// GraticuleStep is the spacing of graticule lines in degrees
	GraticuleStep float64

	// FovY is the vertical field of view in degrees
	FovY float64
}

// NewGlobeRenderer creates a software renderer for the given globe and view
func NewGlobeRenderer(g globe.Globe, v *view.OrbitView, width, height int) *GlobeRenderer {
	return &GlobeRenderer{
		globe:         g,
		view:          v,
		width:         width,
		height:        height,
		style:         DefaultStyle(),
		GraticuleStep: 15,
		FovY:          45,
	}
}

// SetStyle replaces the color scheme
func (r *GlobeRenderer) SetStyle(style Style) {
	r.style = style
}

// Render applies the view and draws one frame. Layers with a location are
// drawn as markers; pass a nil root to render the globe alone.
func (r *GlobeRenderer) Render(root *layer.Node) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), &image.Uniform{r.style.Background}, image.Point{}, draw.Src)

	r.view.SetViewport(view.Viewport{Width: r.width, Height: r.height})
	r.view.Apply(r.globe)

	eye := r.view.State().EyePoint(r.globe)
	distance := eye.Len()
	projection := mgl64.Perspective(
		mgl64.DegToRad(r.FovY),
		float64(r.width)/float64(r.height),
		distance*0.001, distance*10,
	)
	r.view.SetProjection(projection)
	mvp := projection.Mul4(r.view.ModelView())

	r.drawGraticule(img, mvp, eye)
	if root != nil {
		r.drawLayers(img, mvp, eye, root)
	}

	return img
}

// project transforms a world point into pixel coordinates. Points behind
// the eye are reported as not projectable.
func (r *GlobeRenderer) project(mvp mgl64.Mat4, p mgl64.Vec3) (float64, float64, bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	x := (ndcX + 1) / 2 * float64(r.width)
	y := (1 - ndcY) / 2 * float64(r.height)
	return x, y, true
}

// facesEye reports whether the surface at the given location is on the
// near side of the globe as seen from the eye point
func (r *GlobeRenderer) facesEye(eye, point mgl64.Vec3, lat, lon geo.Angle) bool {
	normal := r.globe.SurfaceNormal(lat, lon)
	return normal.Dot(eye.Sub(point)) > 0
}

// drawGraticule draws parallels and meridians as short segments, culling
// the segments on the far side of the globe
func (r *GlobeRenderer) drawGraticule(img *image.RGBA, mvp mgl64.Mat4, eye mgl64.Vec3) {
	const sampleStep = 3.0

	// parallels, skipping the poles
	for lat := -90.0 + r.GraticuleStep; lat < 90.0; lat += r.GraticuleStep {
		col := r.style.Graticule
		if lat == 0 {
			col = r.style.Equator
		}
		for lon := -180.0; lon < 180.0; lon += sampleStep {
			r.drawSurfaceSegment(img, mvp, eye,
				geo.NewLatLon(lat, lon), geo.NewLatLon(lat, lon+sampleStep), col)
		}
	}

	// meridians
	for lon := -180.0; lon < 180.0; lon += r.GraticuleStep {
		col := r.style.Graticule
		if lon == 0 {
			col = r.style.Meridian
		}
		for lat := -90.0; lat < 90.0; lat += sampleStep {
			r.drawSurfaceSegment(img, mvp, eye,
				geo.NewLatLon(lat, lon), geo.NewLatLon(lat+sampleStep, lon), col)
		}
	}
}

// drawSurfaceSegment draws one graticule segment between two surface
// locations if both endpoints face the eye and project onto the image
func (r *GlobeRenderer) drawSurfaceSegment(img *image.RGBA, mvp mgl64.Mat4, eye mgl64.Vec3, a, b geo.LatLon, col color.RGBA) {
	pa := r.globe.PointFromPosition(geo.Position{LatLon: a})
	pb := r.globe.PointFromPosition(geo.Position{LatLon: b})

	if !r.facesEye(eye, pa, a.Lat, a.Lon) || !r.facesEye(eye, pb, b.Lat, b.Lon) {
		return
	}

	x1, y1, ok1 := r.project(mvp, pa)
	x2, y2, ok2 := r.project(mvp, pb)
	if !ok1 || !ok2 {
		return
	}
	drawLine(img, int(x1), int(y1), int(x2), int(y2), col)
}

// drawLayers walks the layer tree and draws a marker for every node on
// the near side of the globe that carries a location
func (r *GlobeRenderer) drawLayers(img *image.RGBA, mvp mgl64.Mat4, eye mgl64.Vec3, root *layer.Node) {
	root.Walk(func(n *layer.Node) {
		loc, ok := n.Location()
		if !ok {
			return
		}
		pt := r.globe.PointFromPosition(geo.Position{LatLon: loc})
		if !r.facesEye(eye, pt, loc.Lat, loc.Lon) {
			return
		}
		x, y, ok := r.project(mvp, pt)
		if !ok {
			return
		}
		drawMarker(img, int(x), int(y), 4, r.style.Marker)
	})
}
