package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/floodsim/internal/agents"
	"github.com/talgya/floodsim/internal/districts"
)

// maxSource always returns the top of the requested range.
type maxSource struct{}

func (maxSource) Intn(n int) int { return n - 1 }

// minSource always returns the bottom of the requested range.
type minSource struct{}

func (minSource) Intn(int) int { return 0 }

// countingSource wraps a source and counts draws.
type countingSource struct {
	inner IntSource
	draws int
}

func (c *countingSource) Intn(n int) int {
	c.draws++
	return c.inner.Intn(n)
}

func newState(t *testing.T, list []*districts.District, people []*agents.Agent) *State {
	t.Helper()
	reg, err := districts.NewRegistry(list)
	require.NoError(t, err)
	store, err := agents.NewStore(people)
	require.NoError(t, err)
	return NewState(reg, store)
}

// twoDistrictState is a flooded district A on the Ganges and a dry, higher
// district B five units away.
func twoDistrictState(t *testing.T, people ...*agents.Agent) *State {
	t.Helper()
	return newState(t, []*districts.District{
		districts.New("A", 10, 100, 0, 0, false, true, false),
		districts.New("B", 40, 5, 3, 4, false, false, false),
	}, people)
}

func population(s *State, k districts.Key) int {
	d, _ := s.Districts.Get(k)
	return d.Population
}
