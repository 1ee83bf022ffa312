package geo

// LatLon represents a geographic location on the globe surface
type LatLon struct {
	Lat, Lon Angle
}

// NewLatLon creates a location from latitude and longitude in degrees
func NewLatLon(lat, lon float64) LatLon {
	return LatLon{Lat: Angle(lat), Lon: Angle(lon)}
}

// Position represents a geographic location with an elevation in meters
// above the globe surface
type Position struct {
	LatLon
	Elevation float64
}

// NewPosition creates a position from latitude and longitude in degrees
// and an elevation in meters
func NewPosition(lat, lon, elevation float64) Position {
	return Position{LatLon: NewLatLon(lat, lon), Elevation: elevation}
}

// AtElevation returns the same location at a different elevation
func (p Position) AtElevation(elevation float64) Position {
	return Position{LatLon: p.LatLon, Elevation: elevation}
}

// ZeroPosition is the origin position: latitude 0, longitude 0, elevation 0
var ZeroPosition = Position{}
