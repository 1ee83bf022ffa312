package view

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/earthsci/goearth/pkg/geo"
	"github.com/earthsci/goearth/pkg/globe"
)

const earthRadius = 6371000.0

// countingGlobe wraps an ellipsoid and counts geometry queries, so tests
// can verify that cached values are not recomputed
type countingGlobe struct {
	*globe.Ellipsoid
	pointCalls    int
	positionCalls int
	normalCalls   int
	tangentCalls  int
}

func newCountingGlobe() *countingGlobe {
	return &countingGlobe{Ellipsoid: globe.NewSphere(earthRadius)}
}

func (g *countingGlobe) PointFromPosition(p geo.Position) mgl64.Vec3 {
	g.pointCalls++
	return g.Ellipsoid.PointFromPosition(p)
}

func (g *countingGlobe) PositionFromPoint(pt mgl64.Vec3) geo.Position {
	g.positionCalls++
	return g.Ellipsoid.PositionFromPoint(pt)
}

func (g *countingGlobe) SurfaceNormal(lat, lon geo.Angle) mgl64.Vec3 {
	g.normalCalls++
	return g.Ellipsoid.SurfaceNormal(lat, lon)
}

func (g *countingGlobe) NorthTangent(lat, lon geo.Angle) mgl64.Vec3 {
	g.tangentCalls++
	return g.Ellipsoid.NorthTangent(lat, lon)
}

func (g *countingGlobe) totalCalls() int {
	return g.pointCalls + g.positionCalls + g.normalCalls + g.tangentCalls
}

func testState() *State {
	s := NewState()
	s.SetCenter(geo.NewPosition(-27.5, 133.0, 0))
	s.SetHeading(35)
	s.SetPitch(40)
	s.SetRoll(10)
	s.SetZoom(500000)
	return s
}

func TestBasisOrthonormal(t *testing.T) {
	g := globe.NewSphere(earthRadius)
	s := testState()

	forward := s.Forward(g)
	up := s.Up(g)
	side := s.Side(g)

	for name, v := range map[string]mgl64.Vec3{"forward": forward, "up": up, "side": side} {
		if math.Abs(v.Len()-1) > 1e-9 {
			t.Errorf("%s not unit length: %v", name, v.Len())
		}
	}
	if d := forward.Dot(up); math.Abs(d) > 1e-9 {
		t.Errorf("forward/up not orthogonal: dot = %v", d)
	}
	if d := forward.Dot(side); math.Abs(d) > 1e-9 {
		t.Errorf("forward/side not orthogonal: dot = %v", d)
	}
	if d := up.Dot(side); math.Abs(d) > 1e-9 {
		t.Errorf("up/side not orthogonal: dot = %v", d)
	}

	// right-handed with the convention side = up x forward
	if diff := up.Cross(forward).Sub(side).Len(); diff > 1e-9 {
		t.Errorf("side != up x forward: diff = %v", diff)
	}
	if diff := side.Cross(up).Sub(forward).Len(); diff > 1e-9 {
		t.Errorf("forward != side x up: diff = %v", diff)
	}
	if diff := forward.Cross(side).Sub(up).Len(); diff > 1e-9 {
		t.Errorf("up != forward x side: diff = %v", diff)
	}
}

func TestSiblingCrossShortcut(t *testing.T) {
	g := globe.NewSphere(earthRadius)
	s := testState()

	// side and up get computed from the rotation matrix; forward must then
	// be exactly their cross product
	side := s.Side(g)
	up := s.Up(g)
	if s.Forward(g) != side.Cross(up) {
		t.Error("forward was not derived from cached side and up")
	}
}

func TestTransformEquatorialReference(t *testing.T) {
	g := globe.NewSphere(earthRadius)
	s := NewState()
	s.SetZoom(1000000)

	// center on the equator at lon 0 with no orientation offsets: the eye
	// sits zoom meters radially above the center, looking straight down
	// with north up
	got := s.Transform(g)
	expected := mgl64.LookAtV(
		mgl64.Vec3{0, 0, earthRadius + 1000000},
		mgl64.Vec3{0, 0, earthRadius},
		mgl64.Vec3{0, 1, 0},
	)
	for i := range expected {
		if math.Abs(got[i]-expected[i]) > 1e-6 {
			t.Fatalf("transform mismatch at element %d: expected %v, got %v\nexpected %v\ngot %v",
				i, expected[i], got[i], expected, got)
		}
	}
}

func TestSetterInvalidation(t *testing.T) {
	g := globe.NewSphere(earthRadius)

	mutations := map[string]func(*State){
		"SetCenter":  func(s *State) { s.SetCenter(geo.NewPosition(10, 20, 0)) },
		"SetHeading": func(s *State) { s.SetHeading(80) },
		"SetPitch":   func(s *State) { s.SetPitch(15) },
		"SetRoll":    func(s *State) { s.SetRoll(-25) },
		"SetZoom":    func(s *State) { s.SetZoom(2000000) },
	}
	for name, mutate := range mutations {
		s := testState()
		// populate every cache
		s.Transform(g)
		s.Eye(g)

		mutate(s)

		fresh := NewState()
		fresh.SetCenter(s.Center())
		fresh.SetHeading(s.Heading())
		fresh.SetPitch(s.Pitch())
		fresh.SetRoll(s.Roll())
		fresh.SetZoom(s.Zoom())

		if diff := s.EyePoint(g).Sub(fresh.EyePoint(g)).Len(); diff > 1e-9 {
			t.Errorf("%s left a stale eye point: diff = %v", name, diff)
		}
		gotT, freshT := s.Transform(g), fresh.Transform(g)
		for i := range gotT {
			if math.Abs(gotT[i]-freshT[i]) > 1e-9 {
				t.Errorf("%s left a stale transform at element %d", name, i)
				break
			}
		}
	}
}

func TestDerivedValuesMemoized(t *testing.T) {
	g := newCountingGlobe()
	s := testState()

	first := s.Transform(g)
	eye := s.Eye(g)
	calls := g.totalCalls()
	if calls == 0 {
		t.Fatal("expected globe queries during first computation")
	}

	second := s.Transform(g)
	eyeAgain := s.Eye(g)
	if g.totalCalls() != calls {
		t.Errorf("cached getters queried the globe again: %d -> %d calls", calls, g.totalCalls())
	}
	if first != second {
		t.Error("cached transform differs from first computation")
	}
	if eye != eyeAgain {
		t.Error("cached eye differs from first computation")
	}
}

func TestGlobeSwitchInvalidates(t *testing.T) {
	g1 := newCountingGlobe()
	g2 := globe.NewSphere(2 * earthRadius)
	s := testState()

	p1 := s.CenterPoint(g1)
	p2 := s.CenterPoint(g2)
	if math.Abs(p2.Len()-2*p1.Len()) > 1e-6 {
		t.Errorf("center point not recomputed for new globe: %v vs %v", p1.Len(), p2.Len())
	}

	// switching back must recompute even though no parameter changed
	calls := g1.totalCalls()
	s.Transform(g1)
	if g1.totalCalls() == calls {
		t.Error("switching globes did not invalidate cached values")
	}
}

func TestSetEye(t *testing.T) {
	g := globe.NewSphere(earthRadius)
	s := testState()

	centerPoint := s.CenterPoint(g)
	eye := geo.NewPosition(45, 60, 1500000)
	eyePoint := g.PointFromPosition(eye)

	s.SetEye(eye, g)

	if s.Heading() != 0 || s.Pitch() != 0 || s.Roll() != 0 {
		t.Errorf("SetEye did not reset orientation: heading=%v pitch=%v roll=%v",
			s.Heading(), s.Pitch(), s.Roll())
	}
	wantZoom := eyePoint.Sub(centerPoint).Len()
	if math.Abs(s.Zoom()-wantZoom) > 1e-6 {
		t.Errorf("SetEye zoom failed: expected %v, got %v", wantZoom, s.Zoom())
	}
	if s.Center() != eye.AtElevation(0) {
		t.Errorf("SetEye center failed: expected %v, got %v", eye.AtElevation(0), s.Center())
	}
}

func TestSetEyeRoundTrip(t *testing.T) {
	g := globe.NewSphere(earthRadius)
	s := NewState()
	s.SetCenter(geo.NewPosition(45, 60, 0))

	// with the center already at the eye location the distance equals the
	// eye elevation, so the round trip is exact
	eye := geo.NewPosition(45, 60, 1500000)
	s.SetEye(eye, g)

	got := s.Eye(g)
	if math.Abs(got.Lat.Degrees()-45) > 1e-9 || math.Abs(got.Lon.Degrees()-60) > 1e-9 {
		t.Errorf("SetEye round trip location failed: got %v", got.LatLon)
	}
	if math.Abs(got.Elevation-1500000) > 1e-5 {
		t.Errorf("SetEye round trip elevation failed: got %v", got.Elevation)
	}
}

func TestNonPositiveZoom(t *testing.T) {
	g := globe.NewSphere(earthRadius)
	s := testState()

	// zoom is not validated; zero puts the eye on the center point
	s.SetZoom(0)
	if diff := s.EyePoint(g).Sub(s.CenterPoint(g)).Len(); diff > 1e-9 {
		t.Errorf("zero zoom eye point off center: diff = %v", diff)
	}

	// negative zoom places the eye on the far side of the center
	s.SetZoom(-1000)
	expected := s.CenterPoint(g).Add(s.Forward(g).Mul(1000))
	if diff := s.EyePoint(g).Sub(expected).Len(); diff > 1e-9 {
		t.Errorf("negative zoom eye point failed: diff = %v", diff)
	}
	for _, c := range s.EyePoint(g) {
		if math.IsNaN(c) {
			t.Error("negative zoom produced NaN")
		}
	}
}
