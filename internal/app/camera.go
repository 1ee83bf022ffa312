package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/earthsci/goearth/pkg/view"
)

// minEyeElevation is the lowest eye elevation in meters allowed when
// collision detection is enabled
const minEyeElevation = 10.0

// updateView recomputes the view transform and projection for the frame
func (app *App) updateView() {
	v := app.Camera.view
	width := rl.GetScreenWidth()
	height := rl.GetScreenHeight()

	v.SetViewport(view.Viewport{Width: width, Height: height})
	v.Apply(app.Scene.globe)

	eye := v.State().EyePoint(app.Scene.globe)
	distance := eye.Len()
	v.SetProjection(mgl64.Perspective(
		mgl64.DegToRad(float64(app.Camera.camera.Fovy)),
		float64(width)/float64(height),
		distance*0.001, distance*10,
	))
}

// updateCamera derives the raylib camera from the orbit view
func (app *App) updateCamera() {
	v := app.Camera.view
	g := app.Scene.globe

	eye := v.State().EyePoint(g)
	if v.DetectCollisions() {
		eye = app.clampEyeAboveSurface(eye)
	}

	center := v.State().CenterPoint(g)
	up := v.State().Up(g)

	app.Camera.camera.Position = toRender(eye)
	app.Camera.camera.Target = toRender(center)
	app.Camera.camera.Up = rl.Vector3{X: float32(up.X()), Y: float32(up.Y()), Z: float32(up.Z())}
}

// clampEyeAboveSurface keeps the rendered eye point from sinking below
// the globe surface
func (app *App) clampEyeAboveSurface(eye mgl64.Vec3) mgl64.Vec3 {
	pos := app.Scene.globe.PositionFromPoint(eye)
	if pos.Elevation >= minEyeElevation {
		return eye
	}
	pos.Elevation = minEyeElevation
	return app.Scene.globe.PointFromPosition(pos)
}

// resetView restores the default view parameters
func (app *App) resetView() {
	v := app.Camera.view
	v.SetCenter(app.Camera.defaultCenter)
	v.SetHeading(app.Camera.defaultHeading)
	v.SetPitch(app.Camera.defaultPitch)
	v.SetZoom(app.Camera.defaultZoom)
}

// toRender converts a model coordinate in meters to a raylib vector in
// render units
func toRender(p mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{
		X: float32(p.X() * worldScale),
		Y: float32(p.Y() * worldScale),
		Z: float32(p.Z() * worldScale),
	}
}
