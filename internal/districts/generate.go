// Synthetic district generation using simplex noise.
// Produces a deterministic district map when no reference file is available:
// elevation comes from a noise field, river adjacency from noise-perturbed
// river courses, and populations from a log-uniform draw.
package districts

import (
	"fmt"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/floodsim/internal/geo"
)

// GenConfig holds synthetic district generation parameters.
type GenConfig struct {
	Count  int   // Number of districts
	Seed   int64 // Random seed (0 = random)
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64

	MinPopulation int
	MaxPopulation int
	MaxElevation  int     // Meters
	RiverWidth    float64 // Degrees either side of a river course counted as adjacent
}

// DefaultGenConfig returns a 64-district map over the Bengal delta.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Count:         64,
		Seed:          0,
		MinLat:        20.6,
		MaxLat:        26.5,
		MinLon:        88.0,
		MaxLon:        92.6,
		MinPopulation: 300_000,
		MaxPopulation: 12_000_000,
		MaxElevation:  100,
		RiverWidth:    0.3,
	}
}

// SmallTestConfig returns a tiny map for tests.
func SmallTestConfig() GenConfig {
	cfg := DefaultGenConfig()
	cfg.Count = 9
	cfg.Seed = 42
	cfg.MinPopulation = 20
	cfg.MaxPopulation = 200
	return cfg
}

// riverCourse describes a river as a line perturbed by noise. For a
// north-south course the position is a longitude evaluated along latitude;
// otherwise it is a latitude evaluated along longitude.
type riverCourse struct {
	northSouth bool
	base       float64 // Position at the start of the course
	slope      float64 // Change in position per degree travelled
	start      float64 // Course extent along the travel axis
	end        float64
	amplitude  float64 // Maximum noise displacement in degrees
}

var courses = [NumRivers]riverCourse{
	Jamuna: {northSouth: true, base: 89.7, slope: 0.05, start: 23.5, end: 26.5, amplitude: 0.25},
	Ganges: {northSouth: false, base: 24.6, slope: -0.35, start: 88.0, end: 90.6, amplitude: 0.2},
	Meghna: {northSouth: true, base: 90.6, slope: -0.15, start: 22.0, end: 24.9, amplitude: 0.3},
}

// Generate creates a district list. The same config always produces the
// same districts.
func Generate(cfg GenConfig) []*District {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	if cfg.Count <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed + 100))
	elevNoise := opensimplex.NewNormalized(seed)
	riverNoise := opensimplex.NewNormalized(seed + 1)

	cols := int(math.Ceil(math.Sqrt(float64(cfg.Count))))
	rows := int(math.Ceil(float64(cfg.Count) / float64(cols)))
	cellLat := (cfg.MaxLat - cfg.MinLat) / float64(rows)
	cellLon := (cfg.MaxLon - cfg.MinLon) / float64(cols)

	out := make([]*District, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		row, col := i/cols, i%cols

		// Jitter within the middle of the cell so neighbours never coincide.
		lat := cfg.MinLat + (float64(row)+0.2+0.6*rng.Float64())*cellLat
		lon := cfg.MinLon + (float64(col)+0.2+0.6*rng.Float64())*cellLon

		e := octaveNoise(elevNoise, lat, lon, 3, 0.6, 0.5)
		elevation := int(math.Round(float64(cfg.MaxElevation) * e * e))

		var rivers [NumRivers]bool
		for r := range courses {
			gap, ok := courses[r].gap(riverNoise, float64(r), lat, lon)
			rivers[r] = ok && gap <= cfg.RiverWidth
		}

		out = append(out, &District{
			Name:       districtName(i),
			Elevation:  elevation,
			Population: logUniform(rng, cfg.MinPopulation, cfg.MaxPopulation),
			Position:   geo.NewPosition(lat, lon),
			Rivers:     rivers,
		})
	}
	ensureRiverBanks(out, riverNoise)
	return out
}

// ensureRiverBanks marks the district closest to each river course as
// adjacent when the course passes between districts without touching any.
func ensureRiverBanks(list []*District, noise opensimplex.Noise) {
	for r := range courses {
		closest := -1
		best := math.Inf(1)
		for i, d := range list {
			if d.Rivers[r] {
				closest = -1
				break
			}
			gap, ok := courses[r].gap(noise, float64(r), d.Lat(), d.Lon())
			if ok && gap < best {
				best = gap
				closest = i
			}
		}
		if closest >= 0 {
			list[closest].Rivers[r] = true
		}
	}
}

// gap returns how far a position lies from the river course, measured
// across the direction of flow. ok is false outside the course extent.
func (c riverCourse) gap(noise opensimplex.Noise, layer, lat, lon float64) (float64, bool) {
	along, across := lon, lat
	if c.northSouth {
		along, across = lat, lon
	}
	if along < c.start || along > c.end {
		return 0, false
	}
	offset := (noise.Eval2(along*0.8, layer*10) - 0.5) * 2 * c.amplitude
	pos := c.base + c.slope*(along-c.start) + offset
	return math.Abs(across - pos), true
}

// octaveNoise samples layered noise, normalised to [0, 1].
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	total := 0.0
	amp := 1.0
	maxAmp := 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amp
		maxAmp += amp
		amp *= persistence
		freq *= 2
	}
	return total / maxAmp
}

func logUniform(rng *rand.Rand, lo, hi int) int {
	if lo <= 0 {
		lo = 1
	}
	if hi <= lo {
		return lo
	}
	v := int(math.Exp(math.Log(float64(lo)) + rng.Float64()*(math.Log(float64(hi))-math.Log(float64(lo)))))
	return min(max(v, lo), hi)
}

func districtName(i int) string {
	if i < len(districtNames) {
		return districtNames[i]
	}
	return fmt.Sprintf("District %03d", i+1)
}

var districtNames = []string{
	"Panchagarh", "Thakurgaon", "Nilphamari", "Lalmonirhat", "Kurigram", "Dinajpur", "Rangpur", "Gaibandha",
	"Joypurhat", "Naogaon", "Bogura", "Jamalpur", "Sherpur", "Mymensingh", "Netrokona", "Sunamganj",
	"Chapai Nawabganj", "Rajshahi", "Natore", "Sirajganj", "Tangail", "Kishoreganj", "Habiganj", "Sylhet",
	"Moulvibazar", "Pabna", "Kushtia", "Meherpur", "Chuadanga", "Rajbari", "Manikganj", "Gazipur",
	"Narsingdi", "Brahmanbaria", "Jhenaidah", "Magura", "Faridpur", "Dhaka", "Narayanganj", "Munshiganj",
	"Cumilla", "Khagrachhari", "Jashore", "Narail", "Gopalganj", "Madaripur", "Shariatpur", "Chandpur",
	"Feni", "Rangamati", "Satkhira", "Khulna", "Bagerhat", "Pirojpur", "Jhalokati", "Barishal",
	"Lakshmipur", "Noakhali", "Chattogram", "Bandarban", "Barguna", "Patuakhali", "Bhola", "Cox's Bazar",
}
