package costfunction

import (
	"github.com/rovlab/terranav/pkg/datastructure"
)

// TerrainService. what the cost model needs from the terrain map. the
// grid is owned by the caller, the objective only borrows it.
type TerrainService interface {
	GetWidth() int
	GetHeight() int
	GetScaleX() float64
	GetTraversabilityClass(classID uint8) datastructure.TraversabilityClass
}

// StateCoster. per-state cost, consumed by the integrator.
type StateCoster interface {
	StateCost(s datastructure.State) (datastructure.Cost, error)
}

// Integrator. accumulates state costs along a motion segment. the
// planner owns the integration scheme, the objective only adds the
// footprint correction on top of it.
type Integrator interface {
	MotionCost(s1, s2 datastructure.State) (datastructure.Cost, error)
}
