// Package districts provides the district registry: reference data for each
// administrative district, its mutable population counter, and loaders for
// delimited files and synthetic maps.
package districts

import (
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/talgya/floodsim/internal/geo"
)

// Key uniquely identifies a district within a registry. It is the district name.
type Key string

// District is a single administrative district. Only Population changes
// during a simulation.
type District struct {
	Name       string      `json:"name"`
	Elevation  int         `json:"elevation"` // Meters
	Population int         `json:"population"`
	Position   *geom.Point `json:"-"` // X = latitude, Y = longitude

	// Adjacency to each river, indexed by River.
	Rivers [NumRivers]bool `json:"rivers"`
}

// New creates a district at the given latitude and longitude.
func New(name string, elevation, population int, lat, lon float64, jamuna, ganges, meghna bool) *District {
	return &District{
		Name:       name,
		Elevation:  elevation,
		Population: population,
		Position:   geo.NewPosition(lat, lon),
		Rivers:     [NumRivers]bool{jamuna, ganges, meghna},
	}
}

// Key returns the registry key for the district.
func (d *District) Key() Key {
	return Key(d.Name)
}

// Lat returns the district latitude.
func (d *District) Lat() float64 { return d.Position.X() }

// Lon returns the district longitude.
func (d *District) Lon() float64 { return d.Position.Y() }

// OnRiver reports whether the district is adjacent to river r.
func (d *District) OnRiver(r River) bool {
	if int(r) >= NumRivers {
		return false
	}
	return d.Rivers[r]
}

// DistanceTo returns the planar distance between two districts.
func (d *District) DistanceTo(other *District) float64 {
	return geo.Distance(d.Position, other.Position)
}

// Clone returns an independent copy of the district.
func (d *District) Clone() *District {
	c := *d
	c.Position = geo.NewPosition(d.Lat(), d.Lon())
	return &c
}

// String returns a summary of the district.
func (d *District) String() string {
	return fmt.Sprintf("District(%s, pop=%d, elev=%d)", d.Name, d.Population, d.Elevation)
}
