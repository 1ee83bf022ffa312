package view

import "time"

// DefaultAxisMarkerFade is how long the axis marker stays visible after a
// trigger before it has fully faded out
const DefaultAxisMarkerFade = 2 * time.Second

// AxisMarker is a transient visual cue shown at the center of rotation
// whenever the view changes significantly. Triggering restarts the fade;
// renderers poll Opacity each frame and draw nothing once it reaches zero.
type AxisMarker struct {
	fade        time.Duration
	triggeredAt time.Time
	now         func() time.Time
}

// NewAxisMarker creates a marker with the default fade duration
func NewAxisMarker() *AxisMarker {
	return &AxisMarker{fade: DefaultAxisMarkerFade, now: time.Now}
}

// Trigger makes the marker visible and restarts the fade
func (m *AxisMarker) Trigger() {
	m.triggeredAt = m.now()
}

// Active reports whether the marker is currently visible
func (m *AxisMarker) Active() bool {
	return m.Opacity() > 0
}

// Opacity returns the current marker opacity in [0, 1], 1 immediately
// after a trigger and 0 once the fade duration has elapsed
func (m *AxisMarker) Opacity() float64 {
	if m.triggeredAt.IsZero() {
		return 0
	}
	elapsed := m.now().Sub(m.triggeredAt)
	if elapsed >= m.fade {
		return 0
	}
	return 1.0 - float64(elapsed)/float64(m.fade)
}
