package globepins

import (
	"github.com/EngoEngine/ecs"
)

// HoverState is the per-marker visibility state. Markers start Hidden.
type HoverState int

const (
	Hidden HoverState = iota
	Visible
)

func (hs HoverState) String() string {
	if hs == Visible {
		return "visible"
	}
	return "hidden"
}

// Visibility is the externally owned effect bound to a marker, such as a description panel.
type Visibility interface {
	SetVisible(visible bool)
}

// VisibilityFunc adapts a plain function to Visibility.
type VisibilityFunc func(visible bool)

func (f VisibilityFunc) SetVisible(visible bool) { f(visible) }

type Marker struct {
	ecs.BasicEntity

	Label       string
	Description string
	Coord       GeoCoordinate
	Position    SpherePosition
	Collider    BoundingSphere

	radius    float64
	pinRadius float64
	hovered   bool
}

// NewMarker places a marker on the sphere of the given radius. pinRadius sizes its collision sphere.
func NewMarker(label, description string, coord GeoCoordinate, radius, pinRadius float64) *Marker {
	m := &Marker{
		BasicEntity: ecs.NewBasic(),
		Label:       label,
		Description: description,
		radius:      radius,
		pinRadius:   pinRadius,
	}
	m.Relocate(coord)
	return m
}

// Relocate moves the marker to a new coordinate on the same sphere.
func (m *Marker) Relocate(coord GeoCoordinate) {
	m.Coord = coord
	m.Position = Project(coord, m.radius)
	m.Collider = BoundingSphere{Center: m.Position.Vec3(), Radius: m.pinRadius}
}

func (m *Marker) Hovered() bool { return m.hovered }

func (m *Marker) State() HoverState {
	if m.hovered {
		return Visible
	}
	return Hidden
}
