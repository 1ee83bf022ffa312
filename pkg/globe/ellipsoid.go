package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/earthsci/goearth/pkg/geo"
)

// WGS84 ellipsoid radii in meters
const (
	WGS84EquatorialRadius = 6378137.0
	WGS84PolarRadius      = 6356752.3142
)

// Ellipsoid is a globe modeled as an ellipsoid of revolution around the
// polar (Y) axis. A sphere is the special case of equal radii.
type Ellipsoid struct {
	equatorialRadius float64
	polarRadius      float64
	es               float64 // first eccentricity squared
}

// NewEllipsoid creates a globe with the given equatorial and polar radii
// in meters
func NewEllipsoid(equatorialRadius, polarRadius float64) *Ellipsoid {
	return &Ellipsoid{
		equatorialRadius: equatorialRadius,
		polarRadius:      polarRadius,
		es:               1.0 - (polarRadius*polarRadius)/(equatorialRadius*equatorialRadius),
	}
}

// NewSphere creates a spherical globe with the given radius in meters
func NewSphere(radius float64) *Ellipsoid {
	return NewEllipsoid(radius, radius)
}

// NewEarth creates a globe with the WGS84 ellipsoid radii
func NewEarth() *Ellipsoid {
	return NewEllipsoid(WGS84EquatorialRadius, WGS84PolarRadius)
}

// EquatorialRadius returns the semi-major axis in meters
func (e *Ellipsoid) EquatorialRadius() float64 {
	return e.equatorialRadius
}

// PolarRadius returns the semi-minor axis in meters
func (e *Ellipsoid) PolarRadius() float64 {
	return e.polarRadius
}

// PointFromPosition returns the model coordinate point for a geographic
// position, using the geodetic latitude convention
func (e *Ellipsoid) PointFromPosition(p geo.Position) mgl64.Vec3 {
	sinLat, cosLat := math.Sincos(p.Lat.Radians())
	sinLon, cosLon := math.Sincos(p.Lon.Radians())

	// prime vertical radius of curvature
	rpv := e.equatorialRadius / math.Sqrt(1.0-e.es*sinLat*sinLat)

	x := (rpv + p.Elevation) * cosLat * sinLon
	y := (rpv*(1.0-e.es) + p.Elevation) * sinLat
	z := (rpv + p.Elevation) * cosLat * cosLon
	return mgl64.Vec3{x, y, z}
}

// PositionFromPoint returns the geographic position for a model coordinate
// point. Latitude is recovered with Bowring's single-iteration method,
// accurate to well under a millimeter for points near the surface.
func (e *Ellipsoid) PositionFromPoint(pt mgl64.Vec3) geo.Position {
	x, y, z := pt.X(), pt.Y(), pt.Z()

	lon := math.Atan2(x, z)
	p := math.Hypot(x, z)

	a := e.equatorialRadius
	b := e.polarRadius

	if p == 0 {
		// on the polar axis
		lat := math.Pi / 2
		if y < 0 {
			lat = -lat
		}
		return geo.Position{
			LatLon:    geo.LatLon{Lat: geo.FromRadians(lat), Lon: geo.FromRadians(lon)},
			Elevation: math.Abs(y) - b,
		}
	}

	eps2 := (a*a - b*b) / (b * b) // second eccentricity squared
	beta := math.Atan2(y*a, p*b)
	sinBeta, cosBeta := math.Sincos(beta)
	lat := math.Atan2(
		y+eps2*b*sinBeta*sinBeta*sinBeta,
		p-e.es*a*cosBeta*cosBeta*cosBeta,
	)

	sinLat, cosLat := math.Sincos(lat)
	rpv := a / math.Sqrt(1.0-e.es*sinLat*sinLat)
	elevation := p*cosLat + y*sinLat - rpv*(1.0-e.es*sinLat*sinLat)

	return geo.Position{
		LatLon:    geo.LatLon{Lat: geo.FromRadians(lat), Lon: geo.FromRadians(lon)},
		Elevation: elevation,
	}
}

// SurfaceNormal returns the outward unit normal of the ellipsoid surface
// at a location
func (e *Ellipsoid) SurfaceNormal(lat, lon geo.Angle) mgl64.Vec3 {
	sinLat, cosLat := math.Sincos(lat.Radians())
	sinLon, cosLon := math.Sincos(lon.Radians())

	eqSq := e.equatorialRadius * e.equatorialRadius
	polSq := e.polarRadius * e.polarRadius

	return mgl64.Vec3{
		cosLat * sinLon / eqSq,
		sinLat / polSq,
		cosLat * cosLon / eqSq,
	}.Normalize()
}

// NorthTangent returns the unit surface tangent pointing toward the north
// pole at a location
func (e *Ellipsoid) NorthTangent(lat, lon geo.Angle) mgl64.Vec3 {
	sinLat, cosLat := math.Sincos(lat.Radians())
	sinLon, cosLon := math.Sincos(lon.Radians())

	return mgl64.Vec3{
		-sinLat * sinLon,
		cosLat,
		-sinLat * cosLon,
	}.Normalize()
}

// Intersect returns the nearest intersection of a ray with the ellipsoid
// surface, or ok=false when the ray misses. The ray origin and direction
// are in model coordinates; the direction need not be normalized.
func (e *Ellipsoid) Intersect(origin, dir mgl64.Vec3) (mgl64.Vec3, bool) {
	// Scale to the unit sphere, intersect, scale back.
	sx := 1.0 / e.equatorialRadius
	sy := 1.0 / e.polarRadius
	o := mgl64.Vec3{origin.X() * sx, origin.Y() * sy, origin.Z() * sx}
	d := mgl64.Vec3{dir.X() * sx, dir.Y() * sy, dir.Z() * sx}

	a := d.Dot(d)
	if a == 0 {
		return mgl64.Vec3{}, false
	}
	bq := 2.0 * o.Dot(d)
	c := o.Dot(o) - 1.0
	disc := bq*bq - 4.0*a*c
	if disc < 0 {
		return mgl64.Vec3{}, false
	}
	sqrtDisc := math.Sqrt(disc)
	t := (-bq - sqrtDisc) / (2.0 * a)
	if t < 0 {
		t = (-bq + sqrtDisc) / (2.0 * a)
	}
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}
