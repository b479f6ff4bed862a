// Agent spawning: creates the initial population from census-like
// distributions of age, marital, employment and property status, and
// wealth quintiles.
package agents

import (
	"math/rand"

	"github.com/talgya/floodsim/internal/districts"
)

// NumQuintiles is the number of wealth buckets.
const NumQuintiles = 5

// CensusConfig controls the distributions used for generated agents.
type CensusConfig struct {
	MinAge int
	MaxAge int

	// Below these ages the status is always false.
	MinAgeEmployment int
	MinAgeMarriage   int
	MinAgeProperty   int

	ProbEmployed float64
	ProbMarried  float64
	ProbProperty float64

	// Income distribution: each quintile receives IncomeShares[q] of total
	// income, so mean quintile income is GDPPerCapita * share * 5.
	GDPPerCapita   float64
	IncomeShares   [NumQuintiles]float64
	WealthVariance int // Uniform ± variance within a quintile
}

// DefaultCensusConfig returns distributions based on national census and
// World Bank figures.
func DefaultCensusConfig() CensusConfig {
	return CensusConfig{
		MinAge:           0,
		MaxAge:           60,
		MinAgeEmployment: 10,
		MinAgeMarriage:   10,
		MinAgeProperty:   10,
		ProbEmployed:     0.5,
		ProbMarried:      0.5,
		ProbProperty:     0.5,
		GDPPerCapita:     957.82,
		IncomeShares:     [NumQuintiles]float64{0.0522, 0.0910, 0.1333, 0.2056, 0.5179},
		WealthVariance:   100,
	}
}

// QuintileIncomes returns the mean wealth of each quintile.
func (c CensusConfig) QuintileIncomes() [NumQuintiles]float64 {
	var out [NumQuintiles]float64
	for i, share := range c.IncomeShares {
		out[i] = c.GDPPerCapita * share * NumQuintiles
	}
	return out
}

// Spawner creates agents for the simulation.
type Spawner struct {
	rng     *rand.Rand
	cfg     CensusConfig
	incomes [NumQuintiles]float64
	nextID  AgentID
}

// NewSpawner creates an agent spawner with the given seed.
func NewSpawner(seed int64, cfg CensusConfig) *Spawner {
	return &Spawner{
		rng:     rand.New(rand.NewSource(seed + 300)),
		cfg:     cfg,
		incomes: cfg.QuintileIncomes(),
		nextID:  1,
	}
}

// SpawnPopulation creates agents for every district in the registry: one
// agent per scale residents. Each district's population is then set to the
// number of agents spawned for it so that agent locations and population
// counters agree from the start, and the registry records the scale so
// resident counts can still be recovered.
func (s *Spawner) SpawnPopulation(reg *districts.Registry, scale int) *Store {
	if scale < 1 {
		scale = 1
	}

	total := 0
	for _, d := range reg.All() {
		total += d.Population / scale
	}

	store := newStore(total)
	for _, d := range reg.All() {
		count := d.Population / scale
		for _, a := range s.SpawnDistrict(d.Key(), count) {
			store.add(a)
		}
		d.Population = count
	}
	reg.SetPopulationScale(scale)
	return store
}

// SpawnDistrict creates count agents residing in district k.
func (s *Spawner) SpawnDistrict(k districts.Key, count int) []*Agent {
	out := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.spawnOne(k))
	}
	return out
}

func (s *Spawner) spawnOne(k districts.Key) *Agent {
	id := s.nextID
	s.nextID++

	age := s.randomWithRange(s.cfg.MinAge, s.cfg.MaxAge)

	quintile := s.randomWithRange(0, NumQuintiles-1)
	wealth := s.incomes[quintile] + float64(s.randomWithRange(-s.cfg.WealthVariance, s.cfg.WealthVariance))
	if wealth < 0 {
		wealth = 0
	}

	// Every indicator is drawn regardless of age so that the random stream
	// consumed per agent is constant.
	property := s.chance(s.cfg.ProbProperty) && age >= s.cfg.MinAgeProperty
	married := s.chance(s.cfg.ProbMarried) && age >= s.cfg.MinAgeMarriage
	employed := s.chance(s.cfg.ProbEmployed) && age >= s.cfg.MinAgeEmployment

	return &Agent{
		ID:           id,
		District:     k,
		Age:          age,
		Married:      married,
		Wealth:       wealth,
		OwnsProperty: property,
		Employed:     employed,
	}
}

// chance draws an indicator in [0, 100] and compares it with p*100.
func (s *Spawner) chance(p float64) bool {
	return float64(s.randomWithRange(0, 100)) <= p*100.0
}

// randomWithRange returns a uniform integer in [lo, hi], inclusive.
func (s *Spawner) randomWithRange(lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}
