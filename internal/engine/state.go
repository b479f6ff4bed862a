// Package engine implements the flood-response engine: impact resolution,
// per-agent move decisions, destination selection and the population
// bookkeeping that keeps district counters consistent with agent locations.
package engine

import (
	"github.com/rotisserie/eris"

	"github.com/talgya/floodsim/internal/agents"
	"github.com/talgya/floodsim/internal/districts"
)

// State is the complete simulation state a flood operates on. A State must
// not be shared between concurrent flood events.
type State struct {
	Districts *districts.Registry
	Agents    *agents.Store
}

// NewState bundles a registry and an agent store.
func NewState(reg *districts.Registry, store *agents.Store) *State {
	return &State{Districts: reg, Agents: store}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	return &State{
		Districts: s.Districts.Clone(),
		Agents:    s.Agents.Clone(),
	}
}

// CheckReferences returns ErrUnknownDistrictReference if any agent refers to
// a district missing from the registry.
func (s *State) CheckReferences() error {
	for _, a := range s.Agents.All() {
		if !s.Districts.Contains(a.District) {
			return eris.Wrapf(ErrUnknownDistrictReference, "agent %d references %q", a.ID, a.District)
		}
	}
	return nil
}

// CheckConsistency verifies that every agent references a registered
// district and that each district's population equals its resident count.
func (s *State) CheckConsistency() error {
	if err := s.CheckReferences(); err != nil {
		return err
	}

	counts := s.Agents.CountByDistrict()
	var mismatched []string
	for _, d := range s.Districts.All() {
		if counts[d.Key()] != d.Population {
			mismatched = append(mismatched, d.Name)
		}
	}
	if len(mismatched) > 0 {
		return eris.Wrapf(ErrPopulationMismatch, "%d districts: %v", len(mismatched), mismatched)
	}
	return nil
}
