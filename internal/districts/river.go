package districts

import (
	"github.com/rotisserie/eris"
)

// River identifies one of the three major rivers a flood can originate from.
type River uint8

const (
	Jamuna River = iota
	Ganges
	Meghna
)

// NumRivers is the number of recognised rivers.
const NumRivers = 3

// ErrInvalidRiver is returned for river tokens outside the recognised set.
var ErrInvalidRiver = eris.New("invalid river")

var riverNames = [NumRivers]string{"jamuna", "ganges", "meghna"}

// Rivers returns all recognised rivers in declaration order.
func Rivers() []River {
	return []River{Jamuna, Ganges, Meghna}
}

// String returns the lower-case river token.
func (r River) String() string {
	if int(r) < NumRivers {
		return riverNames[r]
	}
	return "unknown"
}

// ParseRiver resolves one of the lowercase tokens "jamuna", "ganges" or
// "meghna". Any other spelling is rejected.
func ParseRiver(s string) (River, error) {
	for i, name := range riverNames {
		if s == name {
			return River(i), nil
		}
	}
	return 0, eris.Wrapf(ErrInvalidRiver, "river %q", s)
}
