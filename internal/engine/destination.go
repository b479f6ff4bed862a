package engine

import (
	"github.com/rotisserie/eris"

	"github.com/talgya/floodsim/internal/agents"
	"github.com/talgya/floodsim/internal/districts"
)

const (
	floodedPenalty     = -18
	highGroundBonus    = 5
	highGroundMinElev  = 20 // Exclusive
	cityBonus          = 5
	cityMinPopulation  = 1_000_000 // Exclusive
	megaBonus          = 10
	megaMinPopulation  = 10_000_000 // Exclusive
	nearbyBonus        = 15
	regionalBonus      = 7
	nearbyDivisor      = 4.0
	regionalDivisor    = 2.0
	destinationNoiseLo = -15
	destinationNoiseHi = 15
)

// Relocation records one completed move.
type Relocation struct {
	Agent agents.AgentID `json:"agent_id"`
	From  districts.Key  `json:"from"`
	To    districts.Key  `json:"to"`
}

// DestinationScore returns the deterministic part of a candidate's score for
// an agent leaving origin. Directly flooded candidates are penalised,
// secondarily affected ones are not. The urbanisation thresholds apply to
// residents, so the candidate's population is multiplied by scale (see
// districts.Registry.PopulationScale).
func DestinationScore(candidate, origin *districts.District, im *Impact, avgDist float64, scale int) int {
	score := 0
	if im.IsDirect(candidate.Key()) {
		score += floodedPenalty
	}
	if candidate.Elevation > highGroundMinElev {
		score += highGroundBonus
	}

	// Urbanisation: large districts attract, the largest accumulate both bonuses.
	residents := candidate.Population * scale
	if residents > cityMinPopulation {
		score += cityBonus
	}
	if residents > megaMinPopulation {
		score += megaBonus
	}

	dist := candidate.DistanceTo(origin)
	if dist < avgDist/nearbyDivisor {
		score += nearbyBonus
	} else if dist < avgDist/regionalDivisor {
		score += regionalBonus
	}
	return score
}

// pickDestination returns the index of the highest score. Among equal
// maxima the last one wins.
func pickDestination(scores []int) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] >= scores[best] {
			best = i
		}
	}
	return best
}

// SelectDestinations moves each mover, strictly in order, to its
// best-scoring district. Every district in the registry is a candidate,
// including the origin, and receives one perturbation draw per mover.
// Population counters are updated before the next mover is scored, so later
// movers see earlier arrivals. Returns the arrivals per district and the
// relocations in processing order.
func SelectDestinations(s *State, im *Impact, movers []Mover, avgDist float64, rng IntSource) (map[districts.Key]int, []Relocation, error) {
	all := s.Districts.All()
	arrivals := make(map[districts.Key]int, len(all))
	relocations := make([]Relocation, 0, len(movers))
	if len(all) == 0 {
		if len(movers) > 0 {
			return nil, nil, eris.Wrap(ErrInsufficientDistricts, "engine: no destination candidates")
		}
		return arrivals, relocations, nil
	}

	scale := s.Districts.PopulationScale()
	scores := make([]int, len(all))
	for _, m := range movers {
		origin, ok := s.Districts.Get(m.Origin)
		if !ok {
			return nil, nil, eris.Wrapf(ErrUnknownDistrictReference, "mover %d origin %q", m.Agent.ID, m.Origin)
		}

		for i, candidate := range all {
			scores[i] = DestinationScore(candidate, origin, im, avgDist, scale) + randomWithRange(rng, destinationNoiseLo, destinationNoiseHi)
		}
		dest := all[pickDestination(scores)]

		if err := relocate(m.Agent, origin, dest); err != nil {
			return nil, nil, err
		}
		arrivals[dest.Key()]++
		relocations = append(relocations, Relocation{Agent: m.Agent.ID, From: origin.Key(), To: dest.Key()})
	}
	return arrivals, relocations, nil
}

// relocate moves one agent and adjusts both population counters together.
func relocate(a *agents.Agent, origin, dest *districts.District) error {
	if origin.Population <= 0 {
		return eris.Wrapf(ErrPopulationMismatch, "district %q has no residents to lose (agent %d)", origin.Name, a.ID)
	}
	origin.Population--
	dest.Population++
	a.District = dest.Key()
	return nil
}
