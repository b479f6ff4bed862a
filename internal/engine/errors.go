package engine

import (
	"github.com/rotisserie/eris"

	"github.com/talgya/floodsim/internal/districts"
	"github.com/talgya/floodsim/internal/geo"
)

// Errors reported by ApplyFlood. All of them are returned before any state
// is mutated.
var (
	ErrInvalidRiver             = districts.ErrInvalidRiver
	ErrSeverityTooHigh          = eris.New("flood severity exceeds maximum depth")
	ErrInsufficientDistricts    = geo.ErrInsufficientDistricts
	ErrUnknownDistrictReference = eris.New("unknown district reference")
	ErrPopulationMismatch       = eris.New("district population does not match resident agents")
)
