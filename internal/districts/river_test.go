package districts

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRiver(t *testing.T) {
	tests := []struct {
		in   string
		want River
	}{
		{"jamuna", Jamuna},
		{"ganges", Ganges},
		{"meghna", Meghna},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRiver(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRiver_Invalid(t *testing.T) {
	for _, in := range []string{"nile", "", "jamunaa", "GANGES", "Meghna", " jamuna", "ganges\n"} {
		_, err := ParseRiver(in)
		assert.True(t, eris.Is(err, ErrInvalidRiver), "input %q", in)
	}
}

func TestRiverString(t *testing.T) {
	assert.Equal(t, "jamuna", Jamuna.String())
	assert.Equal(t, "ganges", Ganges.String())
	assert.Equal(t, "meghna", Meghna.String())
	assert.Equal(t, "unknown", River(9).String())
	assert.Len(t, Rivers(), NumRivers)
}
