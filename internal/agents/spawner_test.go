package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/floodsim/internal/districts"
)

func testRegistry(t *testing.T) *districts.Registry {
	t.Helper()
	reg, err := districts.NewRegistry([]*districts.District{
		districts.New("Dhaka", 4, 5000, 23.81, 90.41, false, false, true),
		districts.New("Rajshahi", 20, 2599, 24.37, 88.60, false, true, false),
		districts.New("Bandarban", 90, 0, 22.19, 92.21, false, false, false),
	})
	require.NoError(t, err)
	return reg
}

func TestQuintileIncomes(t *testing.T) {
	incomes := DefaultCensusConfig().QuintileIncomes()
	assert.InDelta(t, 250.0, incomes[0], 0.1)
	assert.InDelta(t, 2480.3, incomes[4], 0.1)
	for i := 1; i < NumQuintiles; i++ {
		assert.Greater(t, incomes[i], incomes[i-1])
	}
}

func TestSpawnPopulation_MatchesDistrictCounts(t *testing.T) {
	reg := testRegistry(t)
	store := NewSpawner(1, DefaultCensusConfig()).SpawnPopulation(reg, 10)

	dhaka, _ := reg.Get("Dhaka")
	raj, _ := reg.Get("Rajshahi")
	band, _ := reg.Get("Bandarban")
	assert.Equal(t, 500, dhaka.Population)
	assert.Equal(t, 259, raj.Population)
	assert.Equal(t, 0, band.Population)

	counts := store.CountByDistrict()
	for _, d := range reg.All() {
		assert.Equal(t, d.Population, counts[d.Key()], d.Name)
	}
	assert.Equal(t, reg.TotalPopulation(), store.Len())

	assert.Equal(t, 10, reg.PopulationScale())
	assert.Equal(t, 5000, reg.Residents(dhaka))
	for _, a := range store.All() {
		got, ok := store.Get(a.ID)
		require.True(t, ok)
		assert.Same(t, a, got, "agent %d", a.ID)
	}
}

func TestSpawnPopulation_Distributions(t *testing.T) {
	reg := testRegistry(t)
	cfg := DefaultCensusConfig()
	store := NewSpawner(5, cfg).SpawnPopulation(reg, 1)

	seen := make(map[AgentID]bool)
	for _, a := range store.All() {
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true

		assert.GreaterOrEqual(t, a.Age, cfg.MinAge)
		assert.LessOrEqual(t, a.Age, cfg.MaxAge)
		assert.GreaterOrEqual(t, a.Wealth, 0.0)
		if a.Age < 10 {
			assert.False(t, a.OwnsProperty)
			assert.False(t, a.Married)
			assert.False(t, a.Employed)
		}
	}
}

func TestSpawnPopulation_MarriageIndependentOfProperty(t *testing.T) {
	reg := testRegistry(t)
	store := NewSpawner(9, DefaultCensusConfig()).SpawnPopulation(reg, 1)

	var marriedNoProperty, propertyNotMarried int
	for _, a := range store.All() {
		if a.Married && !a.OwnsProperty {
			marriedNoProperty++
		}
		if a.OwnsProperty && !a.Married {
			propertyNotMarried++
		}
	}
	assert.Positive(t, marriedNoProperty)
	assert.Positive(t, propertyNotMarried)
}

func TestSpawner_Deterministic(t *testing.T) {
	a := NewSpawner(3, DefaultCensusConfig()).SpawnDistrict("Feni", 200)
	b := NewSpawner(3, DefaultCensusConfig()).SpawnDistrict("Feni", 200)
	require.Len(t, a, 200)
	for i := range a {
		assert.Equal(t, *a[i], *b[i])
	}
}
