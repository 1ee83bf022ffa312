package view

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/earthsci/goearth/pkg/geo"
	"github.com/earthsci/goearth/pkg/globe"
)

// Default orbit view policy values
const (
	// DefaultMinPitch and DefaultMaxPitch are the pitch limits outside of
	// target mode
	DefaultMinPitch = geo.Angle(0)
	DefaultMaxPitch = geo.Angle(90)

	// DefaultTargetMaxPitch is the upper pitch limit installed when target
	// mode is enabled
	DefaultTargetMaxPitch = geo.Angle(170)

	// AxisMarkerTriggerDistanceSq is the squared distance, in transformed
	// unit-vector space, that the view reference point must move between
	// frames for the axis marker to trigger
	AxisMarkerTriggerDistanceSq = 10.0
)

// Limits bounds the orbit view pitch
type Limits struct {
	MinPitch geo.Angle
	MaxPitch geo.Angle
}

// ScreenPoint is a window coordinate with the origin at the top left
type ScreenPoint struct {
	X, Y int
}

// Viewport is the window rectangle the view renders into, in pixels
type Viewport struct {
	X, Y, Width, Height int
}

// OrbitView combines a view State with pitch limits, a collision detection
// policy and the target mode toggle. In the default surface-locked mode
// the center of rotation stays fixed to the globe surface; in target mode
// the user may move the center point freely, the upper pitch limit is
// relaxed and collision detection is disabled.
//
// It also owns the axis marker, a transient visual cue triggered whenever
// the view transform changes significantly between frames.
type OrbitView struct {
	state *State

	limits           Limits
	detectCollisions bool

	targetMode                bool
	nonTargetMaxPitch         geo.Angle
	targetMaxPitch            geo.Angle
	nonTargetDetectCollisions bool
	targetDetectCollisions    bool

	drawAxisMarker bool
	axisMarker     *AxisMarker

	modelview  mgl64.Mat4
	projection mgl64.Mat4
	viewport   Viewport

	mousePoint    *ScreenPoint
	mousePosition *geo.Position
}

// NewOrbitView creates an orbit view in surface-locked mode with default
// pitch limits, collision detection enabled and the axis marker enabled
func NewOrbitView() *OrbitView {
	return &OrbitView{
		state:                     NewState(),
		limits:                    Limits{MinPitch: DefaultMinPitch, MaxPitch: DefaultMaxPitch},
		detectCollisions:          true,
		nonTargetMaxPitch:         DefaultMaxPitch,
		targetMaxPitch:            DefaultTargetMaxPitch,
		nonTargetDetectCollisions: true,
		targetDetectCollisions:    false,
		drawAxisMarker:            true,
		axisMarker:                NewAxisMarker(),
		modelview:                 mgl64.Ident4(),
		projection:                mgl64.Ident4(),
	}
}

// State returns the wrapped view state
func (v *OrbitView) State() *State {
	return v.state
}

// Limits returns the current pitch limits
func (v *OrbitView) Limits() Limits {
	return v.limits
}

// SetLimits sets the pitch limits
func (v *OrbitView) SetLimits(limits Limits) {
	v.limits = limits
}

// DetectCollisions reports whether eye collision detection with the globe
// surface is enabled
func (v *OrbitView) DetectCollisions() bool {
	return v.detectCollisions
}

// SetDetectCollisions enables or disables eye collision detection
func (v *OrbitView) SetDetectCollisions(detect bool) {
	v.detectCollisions = detect
}

// TargetMode reports whether target mode is enabled
func (v *OrbitView) TargetMode() bool {
	return v.targetMode
}

// SetTargetMode enables or disables target mode. When enabled, the user
// can modify the center point instead of fixing it to the globe surface:
// the upper pitch limit is raised to the target limit and collision
// detection is disabled. Disabling restores the previous values. The lower
// pitch limit is never touched.
func (v *OrbitView) SetTargetMode(targetMode bool) {
	if v.targetMode == targetMode {
		return
	}
	v.targetMode = targetMode

	if targetMode {
		v.nonTargetMaxPitch = v.limits.MaxPitch
		v.limits.MaxPitch = v.targetMaxPitch
		v.nonTargetDetectCollisions = v.detectCollisions
		v.detectCollisions = v.targetDetectCollisions
	} else {
		v.targetMaxPitch = v.limits.MaxPitch
		v.limits.MaxPitch = v.nonTargetMaxPitch
		v.targetDetectCollisions = v.detectCollisions
		v.detectCollisions = v.nonTargetDetectCollisions
	}
}

// DrawAxisMarker reports whether the axis marker cue is enabled
func (v *OrbitView) DrawAxisMarker() bool {
	return v.drawAxisMarker
}

// SetDrawAxisMarker enables or disables the axis marker cue
func (v *OrbitView) SetDrawAxisMarker(draw bool) {
	v.drawAxisMarker = draw
}

// AxisMarker returns the marker triggered when the view changes
func (v *OrbitView) AxisMarker() *AxisMarker {
	return v.axisMarker
}

// SetPitch sets the view pitch clamped to the current limits
func (v *OrbitView) SetPitch(pitch geo.Angle) {
	v.state.SetPitch(pitch.Clamped(v.limits.MinPitch, v.limits.MaxPitch))
}

// SetHeading sets the view heading
func (v *OrbitView) SetHeading(heading geo.Angle) {
	v.state.SetHeading(heading)
}

// SetZoom sets the view zoom distance in meters
func (v *OrbitView) SetZoom(zoom float64) {
	v.state.SetZoom(zoom)
}

// SetCenter sets the center of rotation. Outside of target mode the
// center is locked back onto the globe surface.
func (v *OrbitView) SetCenter(center geo.Position) {
	if !v.targetMode {
		center = center.AtElevation(0)
	}
	v.state.SetCenter(center)
}

// LockCenterToSurface drops the center of rotation back onto the globe
// surface. In target mode the center point is under user control, so this
// does nothing.
func (v *OrbitView) LockCenterToSurface() {
	if v.targetMode {
		return
	}
	v.state.SetCenter(v.state.Center().AtElevation(0))
}

// Apply recomputes the view transform for the current frame. The world
// up reference point, transformed by the modelview matrix before and after
// the recomputation, decides whether the view changed enough to trigger
// the axis marker.
func (v *OrbitView) Apply(g globe.Globe) {
	before := v.modelview.Mul4x1(mgl64.Vec4{0, 0, 0, 1})

	v.modelview = v.state.Transform(g)

	if v.drawAxisMarker {
		after := v.modelview.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
		if exceedsMarkerThreshold(before, after) {
			// view has changed, so show the axis marker
			v.axisMarker.Trigger()
		}
	}
}

// exceedsMarkerThreshold reports whether the squared distance between the
// xyz parts of two transformed reference points exceeds the trigger
// threshold. The boundary value itself does not trigger.
func exceedsMarkerThreshold(before, after mgl64.Vec4) bool {
	d := after.Vec3().Sub(before.Vec3())
	return d.Dot(d) > AxisMarkerTriggerDistanceSq
}

// ModelView returns the view transform computed by the last Apply
func (v *OrbitView) ModelView() mgl64.Mat4 {
	return v.modelview
}

// Projection returns the projection matrix
func (v *OrbitView) Projection() mgl64.Mat4 {
	return v.projection
}

// SetProjection sets the projection matrix used for unprojection
func (v *OrbitView) SetProjection(projection mgl64.Mat4) {
	v.projection = projection
}

// SetViewport sets the window rectangle used for unprojection
func (v *OrbitView) SetViewport(viewport Viewport) {
	v.viewport = viewport
}

// SetMousePoint sets the tracked screen coordinate used to compute the
// mouse geographic position
func (v *OrbitView) SetMousePoint(p ScreenPoint) {
	v.mousePoint = &p
}

// ClearMousePoint stops tracking a screen coordinate
func (v *OrbitView) ClearMousePoint() {
	v.mousePoint = nil
	v.mousePosition = nil
}

// UpdateMousePosition recomputes the geographic position under the tracked
// screen point from a depth buffer sample at that pixel, by unprojecting
// through the inverse of projection times modelview. Without a tracked
// point the mouse position becomes unavailable.
func (v *OrbitView) UpdateMousePosition(depth float64, g globe.Globe) {
	if v.mousePoint == nil {
		v.mousePosition = nil
		return
	}

	winX := float64(v.mousePoint.X)
	winY := float64(v.viewport.Height - v.mousePoint.Y - 1)

	// see gluUnProject
	mvpi := v.projection.Mul4(v.modelview).Inv()
	screen := mgl64.Vec4{
		2.0*(winX-float64(v.viewport.X))/float64(v.viewport.Width) - 1.0,
		2.0*(winY-float64(v.viewport.Y))/float64(v.viewport.Height) - 1.0,
		2.0*depth - 1.0,
		1.0,
	}
	model := mvpi.Mul4x1(screen)
	if model.W() != 0 {
		model = mgl64.Vec4{model.X() / model.W(), model.Y() / model.W(), model.Z() / model.W(), model.W()}
	}

	position := g.PositionFromPoint(model.Vec3())
	v.mousePosition = &position
}

// MousePosition returns the geographic position under the tracked screen
// point, or ok=false when none is available
func (v *OrbitView) MousePosition() (geo.Position, bool) {
	if v.mousePosition == nil {
		return geo.Position{}, false
	}
	return *v.mousePosition, true
}
