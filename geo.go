package globepins

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// GeoCoordinate is a latitude/longitude pair in degrees.
type GeoCoordinate struct {
	Latitude  float64
	Longitude float64
}

// InRange reports whether the coordinate lies in the canonical lat/long ranges.
// Project accepts coordinates outside these ranges.
func (c GeoCoordinate) InRange() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Mercator returns the coordinate as an EPSG:3857 point.
func (c GeoCoordinate) Mercator() (geom.Point, error) {
	f := wgs84.EPSG().Transform(4326, 3857)
	x, y, _ := f(c.Longitude, c.Latitude, 0)
	point, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: x, Y: y}})
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXY), fmt.Errorf("mercator %+v: %w", c, err)
	}
	return point, nil
}

type SpherePosition struct {
	X float64
	Y float64
	Z float64
}

func (p SpherePosition) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

func (p SpherePosition) Distance(o SpherePosition) float64 {
	return p.Vec3().Sub(o.Vec3()).Len()
}

// Project maps a coordinate onto a sphere of the given radius centered at the origin.
// Latitude drives z, so the poles sit on the z axis.
func Project(coord GeoCoordinate, radius float64) SpherePosition {
	lat := mgl64.DegToRad(coord.Latitude)
	long := mgl64.DegToRad(coord.Longitude)

	return SpherePosition{
		X: radius * math.Cos(lat) * math.Cos(long),
		Y: radius * math.Cos(lat) * math.Sin(long),
		Z: radius * math.Sin(lat),
	}
}
