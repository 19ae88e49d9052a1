package planner

import (
	"context"
	"time"

	"github.com/rovlab/terranav/pkg/datastructure"
	"github.com/rovlab/terranav/pkg/metrics"
)

// MplError classifies why a planning problem is unsolvable before any
// search has run.
type MplError uint8

const (
	MPL_ERR_NONE MplError = iota
	MPL_ERR_START_ON_OBSTACLE
	MPL_ERR_GOAL_ON_OBSTACLE
	MPL_ERR_START_GOAL_ON_OBSTACLE
	MPL_ERR_UNDEFINED
)

func (e MplError) String() string {
	switch e {
	case MPL_ERR_NONE:
		return "none"
	case MPL_ERR_START_ON_OBSTACLE:
		return "start on obstacle"
	case MPL_ERR_GOAL_ON_OBSTACLE:
		return "goal on obstacle"
	case MPL_ERR_START_GOAL_ON_OBSTACLE:
		return "start and goal on obstacle"
	}
	return "undefined"
}

// Planner. one motion planning backend working on a traversability grid.
type Planner interface {
	// Initialize (re-)builds the planning environment from the grid and
	// a cell snapshot. called again whenever the map size changed.
	Initialize(grid *datastructure.TraversabilityGrid, data datastructure.TravData) error

	// PartialMapUpdate applies cell updates without a full rebuild.
	// returns false if the backend wants a full Initialize instead.
	PartialMapUpdate(updates []datastructure.CellUpdate) bool

	// SetStartGoal places the query. only called when the poses moved
	// beyond the replanning thresholds.
	SetStartGoal(start, goal datastructure.State) error

	// Solve searches for a solution, or improves the current one, until
	// the budget runs out or ctx is cancelled.
	Solve(ctx context.Context, budget time.Duration) (bool, error)

	// FillPath returns the current best path in grid coordinates.
	FillPath() ([]datastructure.State, error)

	PathCost() datastructure.Cost
	IsStartGoalValid() MplError
	FoundFinalSolution() bool
	Metrics() *metrics.SolveMetrics
}
