package globepins

import (
	"context"
	"fmt"
	"time"

	"github.com/EngoEngine/ecs"
)

// EffectFactory builds the visibility effect bound to a marker, e.g. its description panel.
type EffectFactory func(m *Marker) Visibility

// Session owns everything that lives for one globe view: the pointer cell, the camera, the
// markers and the world that ticks them. Nothing here is global.
type Session struct {
	Pointer *PointerCell
	Camera  *PerspectiveCamera
	Hover   *HoverSystem
	World   *ecs.World

	Config Config
	Frames uint64
}

func NewSession(cfg Config, entries []CatalogEntry, effects EffectFactory) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := CheckSeparation(entries, cfg.Globe.Radius, cfg.Marker.MinSeparation); err != nil {
		return nil, fmt.Errorf("check catalog: %w", err)
	}

	s := &Session{
		Pointer: &PointerCell{},
		Camera:  cfg.NewCamera(),
		World:   &ecs.World{},
		Config:  cfg,
	}
	s.Hover = &HoverSystem{Pointer: s.Pointer, Camera: s.Camera}

	for _, e := range entries {
		m := NewMarker(e.Label, e.Description, e.Coord, cfg.Globe.Radius, cfg.Marker.PinRadius)
		var effect Visibility
		if effects != nil {
			effect = effects(m)
		}
		s.Hover.Add(m, effect)
		log.WithField("marker", m.Label).Debugf("placed at %+v", m.Position)
	}
	s.World.AddSystem(s.Hover)

	log.Infof("Session ready with %d markers", len(entries))
	return s, nil
}

func (s *Session) Markers() []*Marker {
	return s.Hover.Markers()
}

// Tick runs one frame to completion.
func (s *Session) Tick(dt float32) {
	s.World.Update(dt)
	s.Frames++
	framesTicked.Inc()
}

// PointerScript feeds pointer samples between ticks, standing in for pointer-move events.
// It returns false when it has nothing to report for that tick.
type PointerScript func(tick uint64) (PointerSample, bool)

type HeadlessConfig struct {
	Hz     int
	Ticks  uint64
	Script PointerScript
}

// RunHeadless ticks the session on a timer until ctx ends or the tick budget is spent.
func RunHeadless(ctx context.Context, s *Session, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	dt := float32(d.Seconds())
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if cfg.Script != nil {
				if sample, ok := cfg.Script(tick); ok {
					s.Pointer.Store(sample)
				}
			}
			s.Tick(dt)
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
