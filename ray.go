package globepins

import "github.com/go-gl/mathgl/mgl64"

// Ray is a half-line used for picking. Direction is expected to be normalized.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
