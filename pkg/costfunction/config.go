package costfunction

import (
	"github.com/rovlab/terranav/pkg"
)

// Mobility. forward speed in meter/second. zero is a valid value and
// means the system cannot move.
type Mobility struct {
	Speed float64
}

func NewMobility(speed float64) Mobility {
	return Mobility{Speed: speed}
}

// Config. immutable once the objective starts serving queries.
type Config struct {
	EnvType                       pkg.EnvironmentType
	EnableMotionCostInterpolation bool
	Mobility                      Mobility
	NumFootprintClasses           int
	TimeToAdaptFootprint          float64
	AdaptFootprintPenalty         float64
}

func DefaultConfig(envType pkg.EnvironmentType) Config {
	return Config{
		EnvType:               envType,
		Mobility:              NewMobility(pkg.DEFAULT_FORWARD_SPEED_METER_SEC),
		NumFootprintClasses:   pkg.DEFAULT_NUM_FOOTPRINT_CLASSES,
		TimeToAdaptFootprint:  pkg.DEFAULT_TIME_TO_ADAPT_FOOTPRINT,
		AdaptFootprintPenalty: pkg.DEFAULT_ADAPT_FOOTPRINT_PENALTY,
	}
}
