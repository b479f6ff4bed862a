package districts

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/talgya/floodsim/internal/geo"
)

// ErrDuplicateDistrict is returned when two districts share a name.
var ErrDuplicateDistrict = eris.New("duplicate district")

// Registry holds the district set in a fixed iteration order together with
// a key index for constant-time lookups.
type Registry struct {
	list  []*District
	index map[Key]*District
	scale int // Residents represented by one unit of Population
}

// NewRegistry builds a registry. Iteration order follows the input order.
func NewRegistry(list []*District) (*Registry, error) {
	r := &Registry{
		list:  make([]*District, 0, len(list)),
		index: make(map[Key]*District, len(list)),
		scale: 1,
	}
	for _, d := range list {
		if d == nil {
			continue
		}
		if d.Population < 0 {
			return nil, eris.Errorf("district %q has negative population %d", d.Name, d.Population)
		}
		k := d.Key()
		if _, ok := r.index[k]; ok {
			return nil, eris.Wrapf(ErrDuplicateDistrict, "district %q", d.Name)
		}
		r.index[k] = d
		r.list = append(r.list, d)
	}
	return r, nil
}

// All returns the districts in iteration order. The slice must not be modified.
func (r *Registry) All() []*District {
	return r.list
}

// Len returns the number of districts.
func (r *Registry) Len() int {
	return len(r.list)
}

// Get returns the district with the given key.
func (r *Registry) Get(k Key) (*District, bool) {
	d, ok := r.index[k]
	return d, ok
}

// Contains reports whether the key names a registered district.
func (r *Registry) Contains(k Key) bool {
	_, ok := r.index[k]
	return ok
}

// PopulationScale returns how many residents one unit of a district's
// Population stands for. It is 1 unless populations were scaled down to
// agent counts.
func (r *Registry) PopulationScale() int {
	return r.scale
}

// SetPopulationScale records that populations now count units of n
// residents. Values below 1 are treated as 1.
func (r *Registry) SetPopulationScale(n int) {
	if n < 1 {
		n = 1
	}
	r.scale = n
}

// Residents returns the number of residents a district represents.
func (r *Registry) Residents(d *District) int {
	return d.Population * r.scale
}

// TotalPopulation sums all district populations.
func (r *Registry) TotalPopulation() int {
	total := 0
	for _, d := range r.list {
		total += d.Population
	}
	return total
}

// Positions returns district positions in iteration order.
func (r *Registry) Positions() []*geom.Point {
	pts := make([]*geom.Point, len(r.list))
	for i, d := range r.list {
		pts[i] = d.Position
	}
	return pts
}

// Bounds returns the lat/lon extent of the district set.
func (r *Registry) Bounds() *geom.Bounds {
	return geo.Bounds(r.Positions())
}

// AverageDistance returns the mean pairwise distance between districts.
func (r *Registry) AverageDistance() (float64, error) {
	return geo.AverageDistance(r.Positions())
}

// Clone returns a deep copy of the registry.
func (r *Registry) Clone() *Registry {
	list := make([]*District, len(r.list))
	for i, d := range r.list {
		list[i] = d.Clone()
	}
	c, _ := NewRegistry(list)
	c.scale = r.scale
	return c
}
