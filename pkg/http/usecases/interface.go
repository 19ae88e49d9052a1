package usecases

import (
	"context"
	"time"

	"github.com/rovlab/terranav/pkg/costfunction"
	"github.com/rovlab/terranav/pkg/datastructure"
	"github.com/rovlab/terranav/pkg/metrics"
	"github.com/rovlab/terranav/pkg/planner"
)

type PathPlanner interface {
	Initialize(grid *datastructure.TraversabilityGrid, data datastructure.TravData) error
	PartialMapUpdate(updates []datastructure.CellUpdate) bool
	SetStartGoal(start, goal datastructure.State) error
	Solve(ctx context.Context, budget time.Duration) (bool, error)
	FillPath() ([]datastructure.State, error)
	PathCost() datastructure.Cost
	IsStartGoalValid() planner.MplError
	FoundFinalSolution() bool
	Metrics() *metrics.SolveMetrics
}

// ProgressReporter is implemented by planners that can notify about
// intermediate solutions, for the websocket progress stream.
type ProgressReporter interface {
	SetProgressCallback(fn planner.ProgressFunc)
}

type TraversalObjective interface {
	StateCost(s datastructure.State) (datastructure.Cost, error)
	MotionCost(s1, s2 datastructure.State) (datastructure.Cost, error)
	GetConfig() costfunction.Config
}
