package agents

import (
	"github.com/rotisserie/eris"

	"github.com/talgya/floodsim/internal/districts"
)

// ErrDuplicateAgent is returned when an agent ID is already in the store.
var ErrDuplicateAgent = eris.New("duplicate agent id")

// Store holds all agents in a fixed iteration order with an ID index.
type Store struct {
	list  []*Agent
	index map[AgentID]*Agent
}

// NewStore creates a store over the given agents. Nil entries are skipped.
func NewStore(list []*Agent) (*Store, error) {
	s := newStore(len(list))
	for _, a := range list {
		if err := s.Add(a); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newStore(capacity int) *Store {
	return &Store{
		list:  make([]*Agent, 0, capacity),
		index: make(map[AgentID]*Agent, capacity),
	}
}

// Add appends an agent to the store. IDs must be unique.
func (s *Store) Add(a *Agent) error {
	if a == nil {
		return nil
	}
	if _, ok := s.index[a.ID]; ok {
		return eris.Wrapf(ErrDuplicateAgent, "agent %d", a.ID)
	}
	s.add(a)
	return nil
}

func (s *Store) add(a *Agent) {
	s.list = append(s.list, a)
	s.index[a.ID] = a
}

// All returns agents in iteration order. The slice must not be modified.
func (s *Store) All() []*Agent {
	return s.list
}

// Len returns the number of agents.
func (s *Store) Len() int {
	return len(s.list)
}

// Get returns the agent with the given ID.
func (s *Store) Get(id AgentID) (*Agent, bool) {
	a, ok := s.index[id]
	return a, ok
}

// CountByDistrict returns the number of agents referencing each district.
func (s *Store) CountByDistrict() map[districts.Key]int {
	counts := make(map[districts.Key]int)
	for _, a := range s.list {
		counts[a.District]++
	}
	return counts
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := newStore(len(s.list))
	for _, a := range s.list {
		cp := *a
		c.add(&cp)
	}
	return c
}
