package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/earthsci/goearth/pkg/geo"
	"github.com/earthsci/goearth/pkg/layer"
)

// drawGlobe draws the opaque globe body. It doubles as the occluder that
// hides graticule lines and markers on the far side.
func (app *App) drawGlobe() {
	radius := float32(app.Scene.globe.PolarRadius() * worldScale * 0.9995)
	rl.DrawSphere(rl.Vector3{}, radius, rl.NewColor(28, 36, 48, 255))
}

// drawGraticule draws parallels and meridians on the globe surface
func (app *App) drawGraticule() {
	const step = 15.0
	const sampleStep = 3.0

	gridColor := rl.NewColor(80, 110, 140, 255)
	equatorColor := rl.NewColor(200, 120, 60, 255)
	meridianColor := rl.NewColor(90, 160, 90, 255)

	for lat := -90.0 + step; lat < 90.0; lat += step {
		col := gridColor
		if lat == 0 {
			col = equatorColor
		}
		for lon := -180.0; lon < 180.0; lon += sampleStep {
			app.drawSurfaceSegment(
				geo.NewPosition(lat, lon, 0),
				geo.NewPosition(lat, lon+sampleStep, 0), col)
		}
	}

	for lon := -180.0; lon < 180.0; lon += step {
		col := gridColor
		if lon == 0 {
			col = meridianColor
		}
		for lat := -90.0; lat < 90.0; lat += sampleStep {
			app.drawSurfaceSegment(
				geo.NewPosition(lat, lon, 0),
				geo.NewPosition(lat+sampleStep, lon, 0), col)
		}
	}
}

func (app *App) drawSurfaceSegment(a, b geo.Position, col rl.Color) {
	pa := app.Scene.globe.PointFromPosition(a)
	pb := app.Scene.globe.PointFromPosition(b)
	rl.DrawLine3D(toRender(pa), toRender(pb), col)
}

// drawLayerMarkers draws a sphere for every catalog layer with a location
func (app *App) drawLayerMarkers() {
	if app.Scene.catalog == nil {
		return
	}

	// markers stay readable at any zoom
	radius := float32(app.Camera.view.State().Zoom() * 0.01 * worldScale)
	if radius < 5 {
		radius = 5
	}

	app.Scene.catalog.Root.Walk(func(n *layer.Node) {
		loc, ok := n.Location()
		if !ok {
			return
		}
		pt := app.Scene.globe.PointFromPosition(geo.Position{LatLon: loc})
		rl.DrawSphere(toRender(pt), radius, rl.NewColor(240, 220, 80, 255))
	})
}

// drawAxisMarker draws fading coordinate axes at the center of rotation
// while the marker is active
func (app *App) drawAxisMarker() {
	v := app.Camera.view
	if !v.DrawAxisMarker() || !v.AxisMarker().Active() {
		return
	}

	opacity := float32(v.AxisMarker().Opacity())
	center := v.State().CenterPoint(app.Scene.globe)
	length := v.State().Zoom() * 0.1

	axes := []struct {
		dir mgl64.Vec3
		col rl.Color
	}{
		{mgl64.Vec3{1, 0, 0}, rl.Red},
		{mgl64.Vec3{0, 1, 0}, rl.Green},
		{mgl64.Vec3{0, 0, 1}, rl.Blue},
	}
	for _, axis := range axes {
		offset := axis.dir.Mul(length)
		rl.DrawLine3D(
			toRender(center.Sub(offset)),
			toRender(center.Add(offset)),
			rl.Fade(axis.col, opacity),
		)
	}
}
