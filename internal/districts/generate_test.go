package districts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 7

	a := Generate(cfg)
	b := Generate(cfg)
	require.Len(t, a, 64)
	require.Len(t, b, 64)

	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Population, b[i].Population)
		assert.Equal(t, a[i].Elevation, b[i].Elevation)
		assert.Equal(t, a[i].Rivers, b[i].Rivers)
		assert.Equal(t, a[i].Lat(), b[i].Lat())
		assert.Equal(t, a[i].Lon(), b[i].Lon())
	}
}

func TestGenerate_WithinConfig(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 11
	list := Generate(cfg)

	_, err := NewRegistry(list)
	require.NoError(t, err, "generated names must be unique")

	for _, d := range list {
		assert.GreaterOrEqual(t, d.Lat(), cfg.MinLat)
		assert.LessOrEqual(t, d.Lat(), cfg.MaxLat)
		assert.GreaterOrEqual(t, d.Lon(), cfg.MinLon)
		assert.LessOrEqual(t, d.Lon(), cfg.MaxLon)
		assert.GreaterOrEqual(t, d.Elevation, 0)
		assert.LessOrEqual(t, d.Elevation, cfg.MaxElevation)
		assert.GreaterOrEqual(t, d.Population, cfg.MinPopulation)
		assert.LessOrEqual(t, d.Population, cfg.MaxPopulation)
	}
}

func TestGenerate_NamesBeyondList(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.Count = 70
	list := Generate(cfg)
	require.Len(t, list, 70)
	assert.Equal(t, "District 070", list[69].Name)
}

func TestGenerate_Empty(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.Count = 0
	assert.Empty(t, Generate(cfg))
}

func TestGenerate_EveryRiverHasBanks(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42, 1000} {
		cfg := DefaultGenConfig()
		cfg.Seed = seed
		list := Generate(cfg)

		for _, r := range Rivers() {
			found := false
			for _, d := range list {
				if d.OnRiver(r) {
					found = true
					break
				}
			}
			assert.True(t, found, "seed %d: no district on the %s", seed, r)
		}
	}
}
