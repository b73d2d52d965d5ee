package globepins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	var cfg Config
	cfg.LogLevel = "info"
	cfg.Globe = GlobeConfig{Radius: 0.681, SurfaceRadius: 0.7}
	cfg.Marker = MarkerConfig{PinRadius: 0.02, MinSeparation: 0.01}
	cfg.Camera = CameraConfig{
		Position:    []float64{1, 1, 2},
		Fov:         75,
		Near:        0.1,
		Far:         10,
		MinDistance: 1.2,
		MaxDistance: 6.5,
	}
	cfg.Window = WindowConfig{Width: 1024, Height: 768}
	cfg.Loop.Hz = 60
	return cfg
}

func newTestSession(t *testing.T) (*Session, map[string]*recordingEffect) {
	t.Helper()
	effects := map[string]*recordingEffect{}
	s, err := NewSession(testConfig(), DefaultCatalog(), func(m *Marker) Visibility {
		e := &recordingEffect{}
		effects[m.Label] = e
		return e
	})
	require.NoError(t, err)
	return s, effects
}

func TestNewSession(t *testing.T) {
	s, effects := newTestSession(t)

	markers := s.Markers()
	require.Len(t, markers, 2)
	for _, m := range markers {
		assert.Equal(t, Hidden, m.State())
		assert.InDelta(t, 0.681, m.Position.Vec3().Len(), tolerance)
		require.Contains(t, effects, m.Label)
	}
}

func TestNewSessionRejectsBadCatalogs(t *testing.T) {
	_, err := NewSession(testConfig(), nil, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	bad := testConfig()
	bad.Camera.Position = nil
	_, err = NewSession(bad, DefaultCatalog(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera.position")

	dup := append(DefaultCatalog(), DefaultCatalog()[1])
	_, err = NewSession(testConfig(), dup, nil)
	assert.ErrorIs(t, err, ErrMarkersTooClose)
}

func TestSessionTick(t *testing.T) {
	s, effects := newTestSession(t)
	calgary := s.Markers()[1]

	s.Pointer.Store(s.Camera.ProjectToNDC(calgary.Position.Vec3()))
	s.Tick(1.0 / 60)
	assert.Equal(t, uint64(1), s.Frames)
	assert.True(t, calgary.Hovered())
	assert.True(t, effects["calgary"].last)
	assert.False(t, effects["novaScotia"].last)

	// Same sample, next frame: still recomputed, still hovered.
	s.Tick(1.0 / 60)
	assert.Equal(t, 3, effects["calgary"].calls)
	assert.True(t, effects["calgary"].last)
}

func TestRunHeadlessTickBudget(t *testing.T) {
	s, effects := newTestSession(t)
	nova := s.Markers()[0]
	over := s.Camera.ProjectToNDC(nova.Position.Vec3())

	var seen []bool
	err := RunHeadless(context.Background(), s, HeadlessConfig{
		Hz:    1000,
		Ticks: 5,
		Script: func(tick uint64) (PointerSample, bool) {
			seen = append(seen, nova.Hovered())
			if tick == 2 {
				return over, true
			}
			return PointerSample{}, false
		},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), s.Frames)
	assert.Equal(t, []bool{false, false, false, true, true}, seen)
	assert.True(t, effects["novaScotia"].last)
}

func TestRunHeadlessCancel(t *testing.T) {
	s, _ := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := RunHeadless(ctx, s, HeadlessConfig{
		Hz: 1000,
		Script: func(tick uint64) (PointerSample, bool) {
			if tick == 3 {
				cancel()
			}
			return PointerSample{}, false
		},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, s.Frames, uint64(4))
}
