package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// earthRadiusKm is the mean Earth radius used to convert angles to kilometres.
const earthRadiusKm = 6371.01

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// IsZero reports whether the point is the uninitialized (0,0) coordinate.
// A real photo at the Gulf of Guinea null island is treated as unset too;
// PhotoPrism stores missing GPS as exact zeros.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lon == 0
}

// DistanceKm returns the great-circle distance between two points in kilometres.
func DistanceKm(a, b Point) float64 {
	la := s2.LatLngFromDegrees(a.Lat, a.Lon)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return la.Distance(lb).Radians() * earthRadiusKm
}

// Centroid returns the spherical centroid of the given points.
// Returns the zero point for an empty input.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sum s2.Point
	for _, p := range points {
		sum = s2.Point{Vector: sum.Add(s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon)).Vector)}
	}
	ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	return Point{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}

// SpreadKm returns the largest distance from the centroid to any of the points.
func SpreadKm(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	c := Centroid(points)
	spread := 0.0
	for _, p := range points {
		spread = math.Max(spread, DistanceKm(c, p))
	}
	return spread
}
