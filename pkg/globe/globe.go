package globe

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/earthsci/goearth/pkg/geo"
)

// Globe maps geographic positions to model coordinates and back, and
// exposes the surface frame (normal and north tangent) at a location.
//
// The model coordinate system has its origin at the globe center, the
// positive Y axis through the north pole, the positive Z axis through
// latitude 0 / longitude 0, and the positive X axis through latitude 0 /
// longitude 90 east.
type Globe interface {
	// PointFromPosition returns the model coordinate point for a
	// geographic position.
	PointFromPosition(p geo.Position) mgl64.Vec3

	// PositionFromPoint returns the geographic position for a model
	// coordinate point.
	PositionFromPoint(pt mgl64.Vec3) geo.Position

	// SurfaceNormal returns the outward unit normal of the surface at a
	// location.
	SurfaceNormal(lat, lon geo.Angle) mgl64.Vec3

	// NorthTangent returns the unit vector tangent to the surface at a
	// location, pointing toward the north pole.
	NorthTangent(lat, lon geo.Angle) mgl64.Vec3
}
