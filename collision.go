package globepins

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// HitDistance is the distance along a ray to an intersection.
type HitDistance float64

// Intersectable is anything with a world-space collision volume a ray can be tested against.
type Intersectable interface {
	Intersects(r Ray) (HitDistance, bool)
}

type BoundingSphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Intersects returns the closest hit in front of the ray origin. A ray starting inside the
// sphere reports the exit point.
func (bs BoundingSphere) Intersects(r Ray) (HitDistance, bool) {
	l := bs.Center.Sub(r.Origin)
	tca := l.Dot(r.Direction)
	d2 := l.Dot(l) - tca*tca
	r2 := bs.Radius * bs.Radius
	if d2 > r2 {
		return 0, false
	}
	thc := math.Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc
	if t1 < 0 {
		return 0, false
	}
	if t0 < 0 {
		return HitDistance(t1), true
	}
	return HitDistance(t0), true
}
