package globepins

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is what the hit tester needs from the scene camera.
type Camera interface {
	// Ray returns a world-space ray from the camera through the given NDC point.
	Ray(s PointerSample) Ray
	// ProjectToNDC maps a world-space point to normalized device coordinates.
	ProjectToNDC(p mgl64.Vec3) PointerSample
}

const polarEpsilon = 1e-6

type PerspectiveCamera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	// FovY is the vertical field of view in degrees.
	FovY   float64
	Aspect float64
	Near   float64
	Far    float64

	// Orbit distance limits; zero MaxDistance disables clamping.
	MinDistance float64
	MaxDistance float64
}

func NewPerspectiveCamera(pos mgl64.Vec3, fovY, aspect, near, far float64) *PerspectiveCamera {
	return &PerspectiveCamera{
		Position: pos,
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     fovY,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
}

func (pc *PerspectiveCamera) View() mgl64.Mat4 {
	return mgl64.LookAtV(pc.Position, pc.Target, pc.Up)
}

func (pc *PerspectiveCamera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(pc.FovY), pc.Aspect, pc.Near, pc.Far)
}

func (pc *PerspectiveCamera) ViewProjection() mgl64.Mat4 {
	return pc.Projection().Mul4(pc.View())
}

func (pc *PerspectiveCamera) Ray(s PointerSample) Ray {
	inv := pc.ViewProjection().Inv()
	through := mgl64.TransformCoordinate(mgl64.Vec3{s.NDCX, s.NDCY, 0.5}, inv)
	return Ray{
		Origin:    pc.Position,
		Direction: through.Sub(pc.Position).Normalize(),
	}
}

func (pc *PerspectiveCamera) ProjectToNDC(p mgl64.Vec3) PointerSample {
	ndc := mgl64.TransformCoordinate(p, pc.ViewProjection())
	return PointerSample{NDCX: ndc[0], NDCY: ndc[1]}
}

// SetViewport keeps the aspect ratio in step with the window size.
func (pc *PerspectiveCamera) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	pc.Aspect = width / height
}

func (pc *PerspectiveCamera) Distance() float64 {
	return pc.Position.Sub(pc.Target).Len()
}

// Orbit rotates the camera around its target by the given azimuth and polar deltas in radians.
// The polar angle stays clear of the poles so the up vector never lines up with the view.
func (pc *PerspectiveCamera) Orbit(dAzimuth, dPolar float64) {
	r, azimuth, polar := pc.spherical()
	azimuth += dAzimuth
	polar = clamp(polar+dPolar, polarEpsilon, math.Pi-polarEpsilon)
	pc.setSpherical(r, azimuth, polar)
}

// Zoom scales the distance to the target, clamped to the orbit limits.
func (pc *PerspectiveCamera) Zoom(factor float64) {
	r, azimuth, polar := pc.spherical()
	pc.setSpherical(r*factor, azimuth, polar)
}

func (pc *PerspectiveCamera) spherical() (r, azimuth, polar float64) {
	offset := pc.Position.Sub(pc.Target)
	r = offset.Len()
	if r == 0 {
		return 0, 0, math.Pi / 2
	}
	azimuth = math.Atan2(offset[0], offset[2])
	polar = math.Acos(clamp(offset[1]/r, -1, 1))
	return r, azimuth, polar
}

func (pc *PerspectiveCamera) setSpherical(r, azimuth, polar float64) {
	if pc.MaxDistance > 0 {
		r = clamp(r, pc.MinDistance, pc.MaxDistance)
	}
	offset := mgl64.Vec3{
		r * math.Sin(polar) * math.Sin(azimuth),
		r * math.Cos(polar),
		r * math.Sin(polar) * math.Cos(azimuth),
	}
	pc.Position = pc.Target.Add(offset)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
