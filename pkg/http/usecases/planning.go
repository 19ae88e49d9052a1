package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rovlab/terranav/pkg"
	"github.com/rovlab/terranav/pkg/datastructure"
	"github.com/rovlab/terranav/pkg/geo"
	"github.com/rovlab/terranav/pkg/metrics"
	"github.com/rovlab/terranav/pkg/util"
	"go.uber.org/zap"
)

var ERRPATHNOTFOUND = errors.New("no feasible path found")

type PathPoint struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Yaw            float64 `json:"yaw"`
	FootprintClass int     `json:"footprint_class"`
}

type PlanSolution struct {
	CostSeconds float64          `json:"cost_seconds"`
	Final       bool             `json:"final"`
	Path        []PathPoint      `json:"path"`
	Polyline    string           `json:"polyline"`
	Metrics     metrics.Snapshot `json:"metrics"`
}

type ProgressEvent struct {
	Iteration       int     `json:"iteration"`
	BestCostSeconds float64 `json:"best_cost_seconds"`
}

type ProgressFunc func(ev ProgressEvent)

// PlanningService serializes access to a single planner instance. the
// planner mutates its tree during Solve, so concurrent requests take
// turns instead of corrupting it.
type PlanningService struct {
	log       *zap.Logger
	mu        sync.Mutex
	planner   PathPlanner
	objective TraversalObjective
	grid      *datastructure.TraversabilityGrid

	defaultBudget time.Duration
}

func NewPlanningService(log *zap.Logger, p PathPlanner, objective TraversalObjective,
	grid *datastructure.TraversabilityGrid, defaultBudget time.Duration) *PlanningService {
	return &PlanningService{
		log:           log,
		planner:       p,
		objective:     objective,
		grid:          grid,
		defaultBudget: defaultBudget,
	}
}

func (ps *PlanningService) EnvironmentType() pkg.EnvironmentType {
	return ps.objective.GetConfig().EnvType
}

func (ps *PlanningService) Plan(ctx context.Context, start, goal datastructure.State,
	budget time.Duration) (*PlanSolution, error) {
	return ps.PlanWithProgress(ctx, start, goal, budget, nil)
}

func (ps *PlanningService) PlanWithProgress(ctx context.Context, start, goal datastructure.State,
	budget time.Duration, emit ProgressFunc) (*PlanSolution, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if budget <= 0 {
		budget = ps.defaultBudget
	}

	if err := ps.planner.SetStartGoal(start, goal); err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "planner rejected the query")
	}

	if reporter, ok := ps.planner.(ProgressReporter); ok {
		if emit != nil {
			reporter.SetProgressCallback(func(iteration int, best datastructure.Cost) {
				emit(ProgressEvent{Iteration: iteration, BestCostSeconds: best.Value()})
			})
		}
		defer reporter.SetProgressCallback(nil)
	}

	solved, err := ps.planner.Solve(ctx, budget)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "planning query rejected: %s", err.Error())
	}
	if !solved {
		return nil, util.WrapErrorf(ERRPATHNOTFOUND, util.ErrNotFound,
			fmt.Sprintf("no path found from (%f,%f) to (%f,%f)", start.GetX(), start.GetY(), goal.GetX(), goal.GetY()))
	}

	states, err := ps.planner.FillPath()
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "solved but no path could be extracted")
	}

	path := make([]PathPoint, 0, len(states))
	coords := make([][]float64, 0, len(states))
	for _, s := range states {
		path = append(path, toPathPoint(s))
		coords = append(coords, []float64{s.GetY(), s.GetX()})
	}

	return &PlanSolution{
		CostSeconds: ps.planner.PathCost().Value(),
		Final:       ps.planner.FoundFinalSolution(),
		Path:        path,
		Polyline:    geo.PolylineFromPath(coords),
		Metrics:     ps.planner.Metrics().GetSnapshot(),
	}, nil
}

func (ps *PlanningService) StateCost(s datastructure.State) (datastructure.Cost, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.objective.StateCost(s)
}

func (ps *PlanningService) MotionCost(s1, s2 datastructure.State) (datastructure.Cost, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.objective.MotionCost(s1, s2)
}

// ApplyMapUpdates patches the traversability map in place. the planner
// discards its search tree, following solves start fresh.
func (ps *PlanningService) ApplyMapUpdates(updates []datastructure.CellUpdate) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.planner.PartialMapUpdate(updates) {
		return util.WrapErrorf(errors.New("map update rejected"), util.ErrBadParamInput,
			"one or more cell updates fall outside the %dx%d grid", ps.grid.GetWidth(), ps.grid.GetHeight())
	}
	ps.log.Info("traversability map updated", zap.Int("cells", len(updates)))
	return nil
}

func toPathPoint(s datastructure.State) PathPoint {
	p := PathPoint{X: s.GetX(), Y: s.GetY()}
	if o, ok := s.(datastructure.OrientedState); ok {
		p.Yaw = o.GetYaw()
	}
	if f, ok := s.(datastructure.FootprintState); ok {
		p.FootprintClass = f.GetFootprintClass()
	}
	return p
}
