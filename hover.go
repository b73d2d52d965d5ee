package globepins

import (
	"github.com/EngoEngine/ecs"
)

// Evaluate casts a fresh ray from the camera through the pointer sample and tests it against the
// marker's collider. The result is stored on the marker and returned. Pointer and camera are
// only read.
func Evaluate(m *Marker, s PointerSample, cam Camera) bool {
	r := cam.Ray(s)
	_, hit := m.Collider.Intersects(r)
	m.hovered = hit
	return hit
}

// HoverChangedMessage reports a marker moving between Hidden and Visible. It satisfies
// engo.Message so it can be sent over engo.Mailbox.
type HoverChangedMessage struct {
	Marker *Marker
	State  HoverState
}

func (HoverChangedMessage) Type() string {
	return "HoverChangedMessage"
}

type hoverable struct {
	*Marker
	effect Visibility
}

// HoverSystem re-runs the hit test for every marker on every frame and pushes the result into
// each marker's visibility effect. It polls rather than reacting to pointer events, so a missed
// frame corrects itself on the next one.
type HoverSystem struct {
	Pointer *PointerCell
	Camera  Camera

	// Notify, if set, is called when a marker changes state. Effects are still driven every frame.
	Notify func(HoverChangedMessage)

	entities []hoverable
}

func (hs *HoverSystem) Add(m *Marker, effect Visibility) {
	if effect == nil {
		effect = VisibilityFunc(func(bool) {})
	}
	hs.entities = append(hs.entities, hoverable{m, effect})
	// Start Hidden.
	m.hovered = false
	effect.SetVisible(false)
}

func (hs *HoverSystem) Remove(ent ecs.BasicEntity) {
	idx := -1
	for i, e := range hs.entities {
		if ent.ID() == e.ID() {
			idx = i
		}
	}
	if idx != -1 {
		hs.entities = append(hs.entities[:idx], hs.entities[idx+1:]...)
	}
}

func (hs *HoverSystem) Markers() []*Marker {
	out := make([]*Marker, 0, len(hs.entities))
	for _, e := range hs.entities {
		out = append(out, e.Marker)
	}
	return out
}

func (hs *HoverSystem) Update(dt float32) {
	if hs.Pointer == nil || hs.Camera == nil {
		return
	}
	sample := hs.Pointer.Load()

	for _, e := range hs.entities {
		before := e.State()
		hovered := Evaluate(e.Marker, sample, hs.Camera)
		e.effect.SetVisible(hovered)

		hoverEvaluations.WithLabelValues(e.Label).Inc()
		if hovered {
			hoveredMarkers.WithLabelValues(e.Label).Set(1)
		} else {
			hoveredMarkers.WithLabelValues(e.Label).Set(0)
		}

		after := e.State()
		if after == before {
			continue
		}
		hoverTransitions.WithLabelValues(e.Label, after.String()).Inc()
		log.WithField("marker", e.Label).Debugf("%s -> %s at %+v", before, after, sample)
		if hs.Notify != nil {
			hs.Notify(HoverChangedMessage{Marker: e.Marker, State: after})
		}
	}
}
