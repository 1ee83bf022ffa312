package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/earthsci/goearth/pkg/geo"
	"github.com/earthsci/goearth/pkg/view"
)

// handleInput processes user input
func (app *App) handleInput() {
	v := app.Camera.view
	mouse := rl.GetMousePosition()

	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		v.SetTargetMode(!v.TargetMode())
	}
	if rl.IsKeyPressed(rl.KeyM) {
		v.SetDrawAxisMarker(!v.DrawAxisMarker())
	}
	if rl.IsKeyPressed(rl.KeyG) {
		app.View.showGraticule = !app.View.showGraticule
	}
	if rl.IsKeyPressed(rl.KeyL) {
		app.View.showMarkers = !app.View.showMarkers
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.View.showHelp = !app.View.showHelp
	}

	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	if rl.IsMouseButtonDown(rl.MouseLeftButton) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Interaction.isDragging = true
			if shiftPressed || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
				app.doPan(delta)
			} else {
				app.doRotate(delta)
			}
		}
	} else {
		app.Interaction.isDragging = false
	}

	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		v.SetZoom(v.State().Zoom() * (1.0 - float64(wheel)*0.1))
	}

	// Center elevation is only adjustable in target mode
	if v.TargetMode() {
		step := v.State().Zoom() * 0.01
		center := v.State().Center()
		if rl.IsKeyDown(rl.KeyPageUp) {
			v.SetCenter(center.AtElevation(center.Elevation + step))
		}
		if rl.IsKeyDown(rl.KeyPageDown) {
			v.SetCenter(center.AtElevation(center.Elevation - step))
		}
	}

	app.Interaction.lastMousePos = mouse
}

// doRotate adjusts heading and pitch from a mouse drag
func (app *App) doRotate(delta rl.Vector2) {
	v := app.Camera.view
	v.SetHeading(v.State().Heading() + geo.Angle(delta.X)*0.25)
	v.SetPitch(v.State().Pitch() + geo.Angle(delta.Y)*0.25)
}

// doPan moves the center of rotation across the globe surface. The drag
// is rotated by the view heading so the globe follows the mouse.
func (app *App) doPan(delta rl.Vector2) {
	v := app.Camera.view
	center := v.State().Center()

	degPerPixel := v.State().Zoom() / app.Scene.globe.EquatorialRadius() * (180.0 / math.Pi) / 500.0
	sinH, cosH := math.Sincos(v.State().Heading().Radians())
	dx := float64(delta.X)
	dy := float64(delta.Y)

	lat := center.Lat + geo.Angle((dy*cosH+dx*sinH)*degPerPixel)
	lon := center.Lon + geo.Angle((-dx*cosH+dy*sinH)*degPerPixel)

	v.SetCenter(geo.Position{
		LatLon:    geo.LatLon{Lat: lat.ClampedLatitude(), Lon: lon.NormalizedLongitude()},
		Elevation: center.Elevation,
	})
}

// updateMousePosition tracks the geographic position under the mouse by
// casting a ray at the globe and feeding the resulting depth sample back
// through the view
func (app *App) updateMousePosition() {
	v := app.Camera.view
	g := app.Scene.globe
	mouse := rl.GetMousePosition()

	dir, ok := app.mouseRay(mouse)
	if !ok {
		v.ClearMousePoint()
		return
	}
	hit, ok := g.Intersect(v.State().EyePoint(g), dir)
	if !ok {
		v.ClearMousePoint()
		return
	}

	v.SetMousePoint(view.ScreenPoint{X: int(mouse.X), Y: int(mouse.Y)})
	v.UpdateMousePosition(app.depthAt(hit), g)
}

// mouseRay returns the model space ray direction from the eye through a
// window coordinate
func (app *App) mouseRay(mouse rl.Vector2) (mgl64.Vec3, bool) {
	v := app.Camera.view
	width := float64(rl.GetScreenWidth())
	height := float64(rl.GetScreenHeight())
	if width == 0 || height == 0 {
		return mgl64.Vec3{}, false
	}

	winY := height - float64(mouse.Y) - 1
	ndc := mgl64.Vec4{
		2.0*float64(mouse.X)/width - 1.0,
		2.0*winY/height - 1.0,
		1.0,
		1.0,
	}
	far := v.Projection().Mul4(v.ModelView()).Inv().Mul4x1(ndc)
	if far.W() == 0 {
		return mgl64.Vec3{}, false
	}
	farPoint := far.Vec3().Mul(1.0 / far.W())
	return farPoint.Sub(v.State().EyePoint(app.Scene.globe)), true
}

// depthAt returns the depth buffer value a model point would produce
func (app *App) depthAt(p mgl64.Vec3) float64 {
	v := app.Camera.view
	clip := v.Projection().Mul4(v.ModelView()).Mul4x1(p.Vec4(1))
	return (clip.Z()/clip.W() + 1.0) / 2.0
}
