package engine

import (
	"github.com/rotisserie/eris"

	"github.com/talgya/floodsim/internal/agents"
	"github.com/talgya/floodsim/internal/districts"
)

const (
	// MoveThreshold is the propensity (inclusive) at which an agent moves.
	MoveThreshold = 19

	// LowSeverityCm is the severity below which floods discourage moving.
	LowSeverityCm = 300

	basePropensity = 10

	// Perturbation range added to each agent's propensity.
	propensityNoiseMin = -20
	propensityNoiseMax = 10
)

// Mover is an agent that decided to leave its district.
type Mover struct {
	Agent  *agents.Agent
	Origin districts.Key // District the agent lived in when it decided
}

// MovePropensity returns the deterministic part of an agent's move score:
// everything except the random perturbation.
func MovePropensity(a *agents.Agent, home *districts.District, river districts.River, severityCm float64) int {
	score := basePropensity

	if a.Married {
		score -= 3
	} else {
		score++
	}

	// Moving costs the job and the property, so holders are reluctant.
	if a.Employed {
		score -= 6
	} else {
		score += 2
	}
	if a.OwnsProperty {
		score -= 6
	} else {
		score += 2
	}

	switch {
	case a.Age > 40 && a.Age < 50:
		score -= 3
	case a.Age > 50 || a.Age < 10:
		score -= 5
	default:
		score += 2
	}

	// Order matters: wealth in [1000, 2000] falls through to the last case.
	switch {
	case a.Wealth < 200:
		score -= 10
	case a.Wealth < 400:
		score -= 5
	case a.Wealth < 600:
		score--
	case a.Wealth > 2000:
		score -= 2
	case a.Wealth < 1000:
		score += 5
	default:
		score++
	}

	if !home.OnRiver(river) {
		score -= 5
	}
	if severityCm < LowSeverityCm {
		score -= 5
	}

	return score
}

// DecideMoves evaluates every agent living in an affected district, in store
// order, drawing one perturbation per evaluated agent. Agents whose score
// reaches MoveThreshold are displaced (see agents.Agent.Displace) and
// returned in the order they were identified. Their district is unchanged.
//
// If any district would lose more movers than its population counter holds,
// ErrPopulationMismatch is returned and nobody is displaced.
func DecideMoves(s *State, im *Impact, severityCm float64, rng IntSource) ([]Mover, error) {
	var movers []Mover
	leaving := make(map[districts.Key]int)
	for _, a := range s.Agents.All() {
		home, ok := s.Districts.Get(a.District)
		if !ok {
			return nil, eris.Wrapf(ErrUnknownDistrictReference, "agent %d references %q", a.ID, a.District)
		}
		if !im.IsAffected(home.Key()) {
			continue
		}

		score := MovePropensity(a, home, im.River, severityCm) + randomWithRange(rng, propensityNoiseMin, propensityNoiseMax)
		if score >= MoveThreshold {
			movers = append(movers, Mover{Agent: a, Origin: a.District})
			leaving[a.District]++
		}
	}

	// Arrivals only raise counters, so an origin that covers its own
	// leavers here cannot run dry during relocation.
	for _, d := range s.Districts.All() {
		if n := leaving[d.Key()]; n > d.Population {
			return nil, eris.Wrapf(ErrPopulationMismatch, "district %q: %d movers, population %d", d.Name, n, d.Population)
		}
	}

	for _, m := range movers {
		m.Agent.Displace()
	}
	return movers, nil
}
