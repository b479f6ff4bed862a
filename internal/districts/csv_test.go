package districts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	data := `Dhaka,14734701,23.81,90.41,4,0,0,1
Sirajganj,3097489,24.45,89.70,14,1,0,0

Rajshahi,2595197,24.37,88.60,20,0,1,0
`
	list, err := LoadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Dhaka", list[0].Name)
	assert.Equal(t, 14734701, list[0].Population)
	assert.InDelta(t, 23.81, list[0].Lat(), 1e-9)
	assert.InDelta(t, 90.41, list[0].Lon(), 1e-9)
	assert.Equal(t, 4, list[0].Elevation)
	assert.True(t, list[0].OnRiver(Meghna))
	assert.True(t, list[1].OnRiver(Jamuna))
	assert.True(t, list[2].OnRiver(Ganges))
}

func TestLoadCSV_SkipsHeader(t *testing.T) {
	data := "name,population,lat,lon,elevation,jamuna,ganges,meghna\nBhola, 1776795, 22.68, 90.64, 3, 0, 0, 1\n"
	list, err := LoadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bhola", list[0].Name)
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"short row", "Dhaka,1,2,3\n"},
		{"bad lat", "Dhaka,1,north,90,4,0,0,1\n"},
		{"bad flag", "Dhaka,1,23,90,4,2,0,1\n"},
		{"negative population", "Dhaka,-4,23,90,4,0,0,1\n"},
		{"second row bad population", "Dhaka,1,23,90,4,0,0,1\nFeni,many,23,91,5,0,0,0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadCSV_Duplicate(t *testing.T) {
	data := "Feni,1,23,91,5,0,0,0\nFeni,2,23,91,5,0,0,0\n"
	_, err := LoadCSV(strings.NewReader(data))
	assert.True(t, eris.Is(err, ErrDuplicateDistrict))
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	orig := testDistricts()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, orig))

	back, err := LoadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, back, len(orig))
	for i := range orig {
		assert.Equal(t, orig[i].Name, back[i].Name)
		assert.Equal(t, orig[i].Population, back[i].Population)
		assert.Equal(t, orig[i].Rivers, back[i].Rivers)
		assert.InDelta(t, orig[i].Lat(), back[i].Lat(), 1e-9)
	}
}
