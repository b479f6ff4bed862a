package engine

import (
	"log/slog"

	"github.com/talgya/floodsim/internal/districts"
)

const (
	// SecondaryElevationLimit is the elevation (exclusive) below which a
	// district near a flooded one is itself affected.
	SecondaryElevationLimit = 33

	// SecondaryReachDivisor divides the average inter-district distance to
	// give the reach of a flood beyond the riverbank.
	SecondaryReachDivisor = 6.0
)

// Impact classifies districts for one flood event. Districts are either
// unaffected, directly affected (on the flooding river) or secondarily
// affected (low-lying and near a directly affected district).
type Impact struct {
	River districts.River

	// Direct and Secondary list district keys in registry order.
	Direct    []districts.Key
	Secondary []districts.Key

	direct    map[districts.Key]bool
	secondary map[districts.Key]bool
}

// ResolveImpact classifies every district in the registry for a flood on
// river. avgDist is the registry's average pairwise distance. It has no
// side effects.
func ResolveImpact(reg *districts.Registry, river districts.River, avgDist float64) *Impact {
	im := &Impact{
		River:     river,
		direct:    make(map[districts.Key]bool),
		secondary: make(map[districts.Key]bool),
	}

	var flooded []*districts.District
	for _, d := range reg.All() {
		if d.OnRiver(river) {
			flooded = append(flooded, d)
			im.direct[d.Key()] = true
			im.Direct = append(im.Direct, d.Key())
			slog.Debug("district directly affected", "district", d.Name, "river", river.String())
		}
	}

	reach := avgDist / SecondaryReachDivisor
	for _, d := range reg.All() {
		if im.direct[d.Key()] || d.Elevation >= SecondaryElevationLimit {
			continue
		}
		for _, f := range flooded {
			if d.DistanceTo(f) < reach {
				im.secondary[d.Key()] = true
				im.Secondary = append(im.Secondary, d.Key())
				slog.Debug("district secondarily affected", "district", d.Name, "near", f.Name)
				break
			}
		}
	}

	return im
}

// IsAffected reports whether a district is directly or secondarily affected.
func (im *Impact) IsAffected(k districts.Key) bool {
	return im.direct[k] || im.secondary[k]
}

// IsDirect reports whether a district lies on the flooding river.
func (im *Impact) IsDirect(k districts.Key) bool {
	return im.direct[k]
}

// IsSecondary reports whether a district is only secondarily affected.
func (im *Impact) IsSecondary(k districts.Key) bool {
	return im.secondary[k]
}

// AffectedCount returns the number of affected districts.
func (im *Impact) AffectedCount() int {
	return len(im.Direct) + len(im.Secondary)
}
