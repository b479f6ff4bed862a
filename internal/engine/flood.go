package engine

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/talgya/floodsim/internal/districts"
)

// DefaultMaxFloodDepthCm is the deepest flood the model accepts.
const DefaultMaxFloodDepthCm = 500

// FloodParams describes one flood event.
type FloodParams struct {
	River           string  // jamuna, ganges or meghna
	SeverityCm      float64 // Flood depth
	MaxFloodDepthCm float64 // Inclusive upper bound on SeverityCm
}

// Result summarises an applied flood.
type Result struct {
	ID              uuid.UUID
	River           districts.River
	SeverityCm      float64
	AverageDistance float64
	Impact          *Impact

	// Evaluated counts agents living in affected districts.
	Evaluated   int
	Relocations []Relocation
	Arrivals    map[districts.Key]int
}

// Movers returns the number of agents that relocated.
func (r *Result) Movers() int {
	return len(r.Relocations)
}

// Validate checks the flood parameters and returns the parsed river.
func (p FloodParams) Validate() (districts.River, error) {
	river, err := districts.ParseRiver(p.River)
	if err != nil {
		return 0, err
	}
	// NaN fails the comparison and is rejected.
	if !(p.SeverityCm <= p.MaxFloodDepthCm) {
		return 0, eris.Wrapf(ErrSeverityTooHigh, "severity %.1fcm, max %.1fcm", p.SeverityCm, p.MaxFloodDepthCm)
	}
	return river, nil
}

// ApplyFlood runs one flood event against the state: districts are
// classified, affected agents decide whether to move, and movers are
// relocated one at a time. Input is validated before anything is mutated;
// a rejected call leaves the state untouched. Once relocation starts there
// is no rollback, and a failure mid-event leaves the state unspecified.
func ApplyFlood(s *State, p FloodParams, rng IntSource) (*Result, error) {
	river, err := p.Validate()
	if err != nil {
		return nil, err
	}
	avgDist, err := s.Districts.AverageDistance()
	if err != nil {
		return nil, err
	}
	if err := s.CheckReferences(); err != nil {
		return nil, err
	}

	slog.Info("flood", "river", river.String(), "severity_cm", p.SeverityCm)

	im := ResolveImpact(s.Districts, river, avgDist)
	slog.Info("districts affected",
		"direct", len(im.Direct),
		"secondary", len(im.Secondary),
	)

	evaluated := 0
	for _, a := range s.Agents.All() {
		if im.IsAffected(a.District) {
			evaluated++
		}
	}

	movers, err := DecideMoves(s, im, p.SeverityCm, rng)
	if err != nil {
		return nil, err
	}
	slog.Info("movers identified", "evaluated", evaluated, "moving", len(movers))

	arrivals, relocations, err := SelectDestinations(s, im, movers, avgDist, rng)
	if err != nil {
		return nil, eris.Wrap(err, "engine: select destinations")
	}

	res := &Result{
		ID:              uuid.New(),
		River:           river,
		SeverityCm:      p.SeverityCm,
		AverageDistance: avgDist,
		Impact:          im,
		Evaluated:       evaluated,
		Relocations:     relocations,
		Arrivals:        arrivals,
	}
	slog.Info("flood applied", "run_id", res.ID.String(), "moved", res.Movers())
	return res, nil
}
