package globepins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEffect struct {
	calls int
	last  bool
}

func (re *recordingEffect) SetVisible(visible bool) {
	re.calls++
	re.last = visible
}

var miss = PointerSample{NDCX: 0.95, NDCY: 0.95}

func TestEvaluateTransitionsWithoutHysteresis(t *testing.T) {
	cam := testCamera()
	m := NewMarker("equator", "", GeoCoordinate{0, 0}, 0.681, 0.02)
	require.InDelta(t, 0.681, m.Position.X, tolerance)
	assert.Equal(t, Hidden, m.State())

	over := cam.ProjectToNDC(m.Position.Vec3())

	assert.True(t, Evaluate(m, over, cam))
	assert.Equal(t, Visible, m.State())

	assert.False(t, Evaluate(m, miss, cam))
	assert.Equal(t, Hidden, m.State())

	assert.True(t, Evaluate(m, over, cam))
}

func TestEvaluateIsIdempotent(t *testing.T) {
	cam := testCamera()
	m := NewMarker("equator", "", GeoCoordinate{0, 0}, 0.681, 0.02)
	over := cam.ProjectToNDC(m.Position.Vec3())

	for i := 0; i < 5; i++ {
		assert.True(t, Evaluate(m, over, cam))
	}
	for i := 0; i < 5; i++ {
		assert.False(t, Evaluate(m, miss, cam))
	}
}

func TestEvaluateDoesNotTouchOtherMarkers(t *testing.T) {
	cam := testCamera()
	cat := DefaultCatalog()
	a := NewMarker(cat[0].Label, "", cat[0].Coord, 0.681, 0.02)
	b := NewMarker(cat[1].Label, "", cat[1].Coord, 0.681, 0.02)

	overB := cam.ProjectToNDC(b.Position.Vec3())
	require.True(t, Evaluate(b, overB, cam))

	overA := cam.ProjectToNDC(a.Position.Vec3())
	assert.True(t, Evaluate(a, overA, cam))
	assert.True(t, b.Hovered())

	assert.False(t, Evaluate(a, miss, cam))
	assert.True(t, b.Hovered())
}

func TestEvaluateLeavesPointerAndCameraAlone(t *testing.T) {
	cam := testCamera()
	before := *cam
	m := NewMarker("equator", "", GeoCoordinate{0, 0}, 0.681, 0.02)
	s := cam.ProjectToNDC(m.Position.Vec3())
	sCopy := s

	Evaluate(m, s, cam)
	assert.Equal(t, before, *cam)
	assert.Equal(t, sCopy, s)
}

func TestHoverSystemPollsEveryFrame(t *testing.T) {
	cam := testCamera()
	var pc PointerCell
	pc.Store(miss)

	var msgs []HoverChangedMessage
	hs := HoverSystem{Pointer: &pc, Camera: cam, Notify: func(msg HoverChangedMessage) {
		msgs = append(msgs, msg)
	}}

	m := NewMarker("equator", "", GeoCoordinate{0, 0}, 0.681, 0.02)
	effect := &recordingEffect{}
	hs.Add(m, effect)
	require.Equal(t, 1, effect.calls)
	require.False(t, effect.last)

	// Pointer never moves, the effect is still driven on each frame.
	for i := 0; i < 3; i++ {
		hs.Update(1.0 / 60)
	}
	assert.Equal(t, 4, effect.calls)
	assert.False(t, effect.last)
	assert.Empty(t, msgs)

	pc.Store(cam.ProjectToNDC(m.Position.Vec3()))
	hs.Update(1.0 / 60)
	hs.Update(1.0 / 60)
	assert.Equal(t, 6, effect.calls)
	assert.True(t, effect.last)
	require.Len(t, msgs, 1)
	assert.Equal(t, Visible, msgs[0].State)
	assert.Same(t, m, msgs[0].Marker)

	pc.Store(miss)
	hs.Update(1.0 / 60)
	assert.False(t, effect.last)
	require.Len(t, msgs, 2)
	assert.Equal(t, Hidden, msgs[1].State)
	assert.Equal(t, "HoverChangedMessage", msgs[1].Type())
}

func TestHoverSystemMarkersAreIndependent(t *testing.T) {
	cam := testCamera()
	var pc PointerCell
	hs := HoverSystem{Pointer: &pc, Camera: cam}

	cat := DefaultCatalog()
	a := NewMarker(cat[0].Label, "", cat[0].Coord, 0.681, 0.02)
	b := NewMarker(cat[1].Label, "", cat[1].Coord, 0.681, 0.02)
	ea, eb := &recordingEffect{}, &recordingEffect{}
	hs.Add(a, ea)
	hs.Add(b, eb)

	pc.Store(cam.ProjectToNDC(a.Position.Vec3()))
	hs.Update(1.0 / 60)
	assert.True(t, ea.last)
	assert.False(t, eb.last)

	pc.Store(cam.ProjectToNDC(b.Position.Vec3()))
	hs.Update(1.0 / 60)
	assert.False(t, ea.last)
	assert.True(t, eb.last)
}

func TestHoverSystemRemove(t *testing.T) {
	var pc PointerCell
	hs := HoverSystem{Pointer: &pc, Camera: testCamera()}

	a := NewMarker("a", "", GeoCoordinate{0, 0}, 0.681, 0.02)
	b := NewMarker("b", "", GeoCoordinate{10, 10}, 0.681, 0.02)
	hs.Add(a, nil)
	hs.Add(b, nil)
	require.Len(t, hs.Markers(), 2)

	hs.Remove(a.BasicEntity)
	markers := hs.Markers()
	require.Len(t, markers, 1)
	assert.Same(t, b, markers[0])
}

func TestHoverSystemReAddStartsHidden(t *testing.T) {
	cam := testCamera()
	var pc PointerCell
	var msgs []HoverChangedMessage
	hs := HoverSystem{Pointer: &pc, Camera: cam, Notify: func(msg HoverChangedMessage) {
		msgs = append(msgs, msg)
	}}

	m := NewMarker("equator", "", GeoCoordinate{0, 0}, 0.681, 0.02)
	hs.Add(m, nil)
	pc.Store(cam.ProjectToNDC(m.Position.Vec3()))
	hs.Update(1.0 / 60)
	require.True(t, m.Hovered())
	require.Len(t, msgs, 1)

	hs.Remove(m.BasicEntity)
	effect := &recordingEffect{}
	hs.Add(m, effect)
	assert.Equal(t, Hidden, m.State())
	assert.False(t, effect.last)

	pc.Store(miss)
	hs.Update(1.0 / 60)
	assert.Len(t, msgs, 1)
}

func TestMarkerRelocate(t *testing.T) {
	m := NewMarker("m", "", GeoCoordinate{0, 0}, 0.681, 0.02)
	m.Relocate(GeoCoordinate{90, 0})

	assert.InDelta(t, 0.681, m.Position.Z, tolerance)
	assert.True(t, m.Collider.Center.ApproxEqualThreshold(m.Position.Vec3(), tolerance))
	assert.Equal(t, 0.02, m.Collider.Radius)
}
