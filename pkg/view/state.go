package view

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/earthsci/goearth/pkg/geo"
	"github.com/earthsci/goearth/pkg/globe"
)

// State holds the orbit camera parameters (center position, heading,
// pitch, roll, zoom) and lazily computes the derived view quantities:
// rotation matrix, forward/up/side basis vectors, the full view transform,
// and the center/eye points.
//
// Derived values are memoized against the globe they were computed with.
// Mutating any parameter invalidates every cached value; passing a
// different globe to any getter does the same. The state is not safe for
// concurrent use; the render loop is expected to own it.
type State struct {
	center  geo.Position
	heading geo.Angle
	pitch   geo.Angle
	roll    geo.Angle
	zoom    float64

	// cached derived values, nil when invalid
	lastGlobe       globe.Globe
	lastRotation    *mgl64.Mat4
	lastTransform   *mgl64.Mat4
	lastForward     *mgl64.Vec3
	lastUp          *mgl64.Vec3
	lastSide        *mgl64.Vec3
	lastCenterPoint *mgl64.Vec3
	lastEyePoint    *mgl64.Vec3
	lastEye         *geo.Position
}

// NewState creates a view state centered on latitude 0 / longitude 0 with
// zero orientation offsets and a zoom of 1 meter
func NewState() *State {
	return &State{center: geo.ZeroPosition, zoom: 1.0}
}

func (s *State) clearCachedValues() {
	s.lastRotation = nil
	s.lastTransform = nil
	s.lastForward = nil
	s.lastUp = nil
	s.lastSide = nil
	s.lastCenterPoint = nil
	s.lastEyePoint = nil
	s.lastEye = nil
}

func (s *State) clearCachedValuesIfGlobeChanged(g globe.Globe) {
	if s.lastGlobe != g {
		s.clearCachedValues()
		s.lastGlobe = g
	}
}

// Center returns the center position the camera orbits around
func (s *State) Center() geo.Position {
	return s.center
}

// SetCenter sets the center position the camera orbits around
func (s *State) SetCenter(center geo.Position) {
	s.center = center
	s.clearCachedValues()
}

// Heading returns the rotation around the local vertical axis
func (s *State) Heading() geo.Angle {
	return s.heading
}

// SetHeading sets the rotation around the local vertical axis
func (s *State) SetHeading(heading geo.Angle) {
	s.heading = heading
	s.clearCachedValues()
}

// Pitch returns the tilt away from the local vertical axis
func (s *State) Pitch() geo.Angle {
	return s.pitch
}

// SetPitch sets the tilt away from the local vertical axis
func (s *State) SetPitch(pitch geo.Angle) {
	s.pitch = pitch
	s.clearCachedValues()
}

// Roll returns the rotation around the view direction
func (s *State) Roll() geo.Angle {
	return s.roll
}

// SetRoll sets the rotation around the view direction
func (s *State) SetRoll(roll geo.Angle) {
	s.roll = roll
	s.clearCachedValues()
}

// Zoom returns the distance in meters between the eye and the center
func (s *State) Zoom() float64 {
	return s.zoom
}

// SetZoom sets the distance in meters between the eye and the center.
// The value is not validated; a non-positive zoom places the eye at or
// beyond the center point.
func (s *State) SetZoom(zoom float64) {
	s.zoom = zoom
	s.clearCachedValues()
}

// Rotation returns the rotation matrix that maps eye coordinates to model
// coordinates for the current center, heading, pitch and roll
func (s *State) Rotation(g globe.Globe) mgl64.Mat4 {
	s.clearCachedValuesIfGlobeChanged(g)

	if s.lastRotation == nil {
		transform := mgl64.Ident4()
		transform = transform.Mul4(mgl64.HomogRotate3D(s.roll.Radians(), mgl64.Vec3{0, 0, 1}))
		transform = transform.Mul4(mgl64.HomogRotate3D(s.pitch.Radians(), mgl64.Vec3{-1, 0, 0}))
		transform = transform.Mul4(mgl64.HomogRotate3D(s.heading.Radians(), mgl64.Vec3{0, 0, -1}))

		centerPoint := g.PointFromPosition(s.center)
		normal := g.SurfaceNormal(s.center.Lat, s.center.Lon)
		north := g.NorthTangent(s.center.Lat, s.center.Lon)
		lookat := mgl64.LookAtV(centerPoint, centerPoint.Add(normal), north)

		rotation := transform.Mul4(lookat).Inv()
		s.lastRotation = &rotation
	}
	return *s.lastRotation
}

// Forward returns the unit view direction in model coordinates.
// When the side and up vectors are already cached it is derived from them
// by cross product, otherwise from the rotation matrix.
func (s *State) Forward(g globe.Globe) mgl64.Vec3 {
	s.clearCachedValuesIfGlobeChanged(g)

	if s.lastForward == nil {
		var forward mgl64.Vec3
		if s.lastSide != nil && s.lastUp != nil {
			forward = s.lastSide.Cross(*s.lastUp)
		} else {
			rotation := s.Rotation(g)
			forward = rotation.Mul4x1(mgl64.Vec4{0, 0, 1, 0}).Vec3()
		}
		s.lastForward = &forward
	}
	return *s.lastForward
}

// Up returns the unit up direction in model coordinates.
// When the forward and side vectors are already cached it is derived from
// them by cross product, otherwise from the rotation matrix.
func (s *State) Up(g globe.Globe) mgl64.Vec3 {
	s.clearCachedValuesIfGlobeChanged(g)

	if s.lastUp == nil {
		var up mgl64.Vec3
		if s.lastForward != nil && s.lastSide != nil {
			up = s.lastForward.Cross(*s.lastSide)
		} else {
			rotation := s.Rotation(g)
			up = rotation.Mul4x1(mgl64.Vec4{0, 1, 0, 0}).Vec3()
		}
		s.lastUp = &up
	}
	return *s.lastUp
}

// Side returns the unit side direction in model coordinates, with
// side = up x forward.
// When the up and forward vectors are already cached it is derived from
// them by cross product, otherwise from the rotation matrix.
func (s *State) Side(g globe.Globe) mgl64.Vec3 {
	s.clearCachedValuesIfGlobeChanged(g)

	if s.lastSide == nil {
		var side mgl64.Vec3
		if s.lastUp != nil && s.lastForward != nil {
			side = s.lastUp.Cross(*s.lastForward)
		} else {
			rotation := s.Rotation(g)
			side = rotation.Mul4x1(mgl64.Vec4{1, 0, 0, 0}).Vec3()
		}
		s.lastSide = &side
	}
	return *s.lastSide
}

// Transform returns the view matrix that maps model coordinates to eye
// coordinates
func (s *State) Transform(g globe.Globe) mgl64.Mat4 {
	s.clearCachedValuesIfGlobeChanged(g)

	if s.lastTransform == nil {
		// gluLookAt defines s as (f x u), but Side returns (u x f), so
		// negate it during matrix creation
		side := s.Side(g)
		up := s.Up(g)
		forward := s.Forward(g)
		eye := s.EyePoint(g)

		// rows (-side, up, -forward, unit w), stored column-major
		mAxes := mgl64.Mat4{
			-side.X(), up.X(), -forward.X(), 0,
			-side.Y(), up.Y(), -forward.Y(), 0,
			-side.Z(), up.Z(), -forward.Z(), 0,
			0, 0, 0, 1,
		}
		mEye := mgl64.Translate3D(-eye.X(), -eye.Y(), -eye.Z())
		transform := mAxes.Mul4(mEye)
		s.lastTransform = &transform
	}
	return *s.lastTransform
}

// CenterPoint returns the model coordinate point of the center position
func (s *State) CenterPoint(g globe.Globe) mgl64.Vec3 {
	s.clearCachedValuesIfGlobeChanged(g)

	if s.lastCenterPoint == nil {
		centerPoint := g.PointFromPosition(s.center)
		s.lastCenterPoint = &centerPoint
	}
	return *s.lastCenterPoint
}

// EyePoint returns the model coordinate point of the eye, placed zoom
// meters behind the center point along the view direction
func (s *State) EyePoint(g globe.Globe) mgl64.Vec3 {
	s.clearCachedValuesIfGlobeChanged(g)

	if s.lastEyePoint == nil {
		centerPoint := s.CenterPoint(g)
		forward := s.Forward(g)
		eyePoint := centerPoint.Add(forward.Mul(-s.zoom))
		s.lastEyePoint = &eyePoint
	}
	return *s.lastEyePoint
}

// Eye returns the geographic position of the eye point
func (s *State) Eye(g globe.Globe) geo.Position {
	s.clearCachedValuesIfGlobeChanged(g)

	if s.lastEye == nil {
		eye := g.PositionFromPoint(s.EyePoint(g))
		s.lastEye = &eye
	}
	return *s.lastEye
}

// SetEye moves the eye to the given position. The prior orientation is
// discarded: heading, pitch and roll are reset to zero, the zoom becomes
// the distance from the current center point to the new eye point, and the
// center is moved to the eye location at elevation zero. This is a known
// simplification; it does not preserve the center point.
func (s *State) SetEye(eye geo.Position, g globe.Globe) {
	centerPoint := s.CenterPoint(g)
	eyePoint := g.PointFromPosition(eye)
	s.SetRoll(0)
	s.SetPitch(0)
	s.SetHeading(0)
	s.SetZoom(eyePoint.Sub(centerPoint).Len())
	s.SetCenter(eye.AtElevation(0))
}
