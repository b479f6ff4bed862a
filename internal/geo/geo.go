// Package geo provides planar distance metrics over district positions.
// Latitude and longitude are treated as plain XY coordinates; there is no
// projection or great-circle correction.
package geo

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// ErrInsufficientDistricts is returned when a pairwise average is requested
// over fewer than two positions.
var ErrInsufficientDistricts = eris.New("insufficient districts: need at least 2")

// NewPosition returns a planar point with latitude on X and longitude on Y.
func NewPosition(lat, lon float64) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{lat, lon})
}

// Distance returns the straight-line distance between two positions.
func Distance(a, b *geom.Point) float64 {
	return xy.Distance(a.Coords(), b.Coords())
}

// AverageDistance returns the mean Distance over all unordered pairs of
// distinct positions.
func AverageDistance(points []*geom.Point) (float64, error) {
	n := len(points)
	if n < 2 {
		return 0, eris.Wrapf(ErrInsufficientDistricts, "geo: average distance over %d positions", n)
	}

	sum := 0.0
	pairs := 0
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			sum += Distance(points[i], points[j])
			pairs++
		}
	}
	return sum / float64(pairs), nil
}

// Bounds returns the bounding box of the given positions.
func Bounds(points []*geom.Point) *geom.Bounds {
	b := geom.NewBounds(geom.XY)
	for _, p := range points {
		b.Extend(p)
	}
	return b
}
