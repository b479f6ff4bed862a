// Package agents provides the agent data model, the agent store, and the
// census-based population spawner.
package agents

import (
	"github.com/talgya/floodsim/internal/districts"
)

// AgentID is a unique identifier for an agent.
type AgentID uint64

// RelocationCost is the wealth an agent loses when displaced.
const RelocationCost = 500.0

// Agent is one resident. District is a lookup key into the district
// registry; the agent does not own the district.
type Agent struct {
	ID       AgentID       `json:"id"`
	District districts.Key `json:"district"`

	// Demographics
	Age     int  `json:"age"` // Years, fixed at generation
	Married bool `json:"married"`

	// Economic
	Wealth       float64 `json:"wealth"` // Never negative
	OwnsProperty bool    `json:"owns_property"`
	Employed     bool    `json:"employed"`
}

// Displace applies the cost of deciding to leave: RelocationCost is deducted
// from wealth (floored at zero) and employment and property are lost. The
// agent's district is not changed.
func (a *Agent) Displace() {
	a.Wealth -= RelocationCost
	if a.Wealth < 0 {
		a.Wealth = 0
	}
	a.Employed = false
	a.OwnsProperty = false
}
