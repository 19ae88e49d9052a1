package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rovlab/terranav/pkg"
	"github.com/rovlab/terranav/pkg/costfunction"
	"github.com/rovlab/terranav/pkg/datastructure"
	"github.com/rovlab/terranav/pkg/geo"
	"github.com/rovlab/terranav/pkg/metrics"
	"github.com/rovlab/terranav/pkg/spatialindex"
	"github.com/rovlab/terranav/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrNotInitialized = errors.New("planner not initialized with a traversability grid")
	ErrNoStartGoal    = errors.New("start and goal have not been set")
	ErrNoSolution     = errors.New("no solution found yet")
)

// Config of the sampling planner. distances are in grid cells.
type Config struct {
	MaxIterations int
	GoalBias      float64
	SteerRange    float64
	GoalTolerance float64
	RewireRadius  float64
	Seed          int64
}

func DefaultConfig() Config {
	return Config{
		MaxIterations: 4000,
		GoalBias:      0.05,
		SteerRange:    3.0,
		GoalTolerance: 1.0,
		RewireRadius:  4.5,
		Seed:          1,
	}
}

// ProgressFunc is invoked whenever the best solution improved.
type ProgressFunc func(iteration int, best datastructure.Cost)

type node struct {
	state  datastructure.State
	parent *node
	cost   datastructure.Cost // accumulated motion cost from the root
}

// RRTStar grows a tree of states rooted at the start pose. every edge is
// priced by the traversability objective, edges with infinite cost
// (infeasible footprint transitions) are never added. solving again
// continues to improve the current tree until the map or the query
// changes.
type RRTStar struct {
	cfg Config
	obj *costfunction.TravGridObjective
	log *zap.Logger

	envType             pkg.EnvironmentType
	numFootprintClasses int

	grid      *datastructure.TraversabilityGrid
	data      datastructure.TravData
	validator *TravMapValidator

	start datastructure.State
	goal  datastructure.State

	rng        *rand.Rand
	nodes      []*node
	index      *spatialindex.PointIndex[*node]
	bestGoal   *node
	foundFinal bool

	stats    *metrics.SolveMetrics
	progress ProgressFunc
}

var _ Planner = (*RRTStar)(nil)

func NewRRTStar(cfg Config, obj *costfunction.TravGridObjective, log *zap.Logger) *RRTStar {
	objCfg := obj.GetConfig()
	numClasses := objCfg.NumFootprintClasses
	if numClasses < 1 {
		numClasses = 1
	}
	return &RRTStar{
		cfg:                 cfg,
		obj:                 obj,
		log:                 log,
		envType:             objCfg.EnvType,
		numFootprintClasses: numClasses,
		rng:                 rand.New(rand.NewSource(cfg.Seed)),
		stats:               metrics.NewSolveMetrics(),
	}
}

// SetProgressCallback. observer for improved solutions, used by the
// websocket progress stream. must be set before Solve.
func (p *RRTStar) SetProgressCallback(fn ProgressFunc) {
	p.progress = fn
}

func (p *RRTStar) Initialize(grid *datastructure.TraversabilityGrid, data datastructure.TravData) error {
	if grid == nil || data == nil {
		return ErrNotInitialized
	}
	p.grid = grid
	p.data = data
	p.validator = NewTravMapValidator(grid, data)
	p.obj.AttachTerrain(grid, data)
	p.resetTree()
	p.log.Info("planning environment initialized",
		zap.Int("width", grid.GetWidth()), zap.Int("height", grid.GetHeight()),
		zap.String("environment", p.envType.String()))
	return nil
}

// PartialMapUpdate applies the updates in place and refreshes the
// snapshot. the grown tree is discarded, its edge costs are stale.
func (p *RRTStar) PartialMapUpdate(updates []datastructure.CellUpdate) bool {
	if p.grid == nil {
		return false
	}
	if err := p.grid.ApplyCellUpdates(updates); err != nil {
		p.log.Warn("partial map update rejected", zap.Error(err))
		return false
	}
	p.data = p.grid.Snapshot()
	p.validator = NewTravMapValidator(p.grid, p.data)
	p.obj.AttachTerrain(p.grid, p.data)
	p.resetTree()
	return true
}

func (p *RRTStar) SetStartGoal(start, goal datastructure.State) error {
	if p.grid == nil {
		return ErrNotInitialized
	}
	p.start = start
	p.goal = goal
	p.resetTree()
	return nil
}

func (p *RRTStar) resetTree() {
	p.nodes = nil
	p.index = spatialindex.NewPointIndex[*node]()
	p.bestGoal = nil
	p.foundFinal = false
	p.stats = metrics.NewSolveMetrics()
}

func (p *RRTStar) IsStartGoalValid() MplError {
	if p.grid == nil || p.start == nil || p.goal == nil {
		return MPL_ERR_UNDEFINED
	}
	startOk := p.validator.IsValid(p.start)
	goalOk := p.validator.IsValid(p.goal)
	switch {
	case !startOk && !goalOk:
		return MPL_ERR_START_GOAL_ON_OBSTACLE
	case !startOk:
		return MPL_ERR_START_ON_OBSTACLE
	case !goalOk:
		return MPL_ERR_GOAL_ON_OBSTACLE
	}
	return MPL_ERR_NONE
}

// Solve. grows the tree until the iteration budget, the time budget or
// the context runs out, whichever happens first. returns whether a path
// to the goal exists afterwards.
func (p *RRTStar) Solve(ctx context.Context, budget time.Duration) (bool, error) {
	if p.grid == nil {
		return false, ErrNotInitialized
	}
	if p.start == nil || p.goal == nil {
		return false, ErrNoStartGoal
	}
	if code := p.IsStartGoalValid(); code != MPL_ERR_NONE {
		return false, fmt.Errorf("invalid planning query: %s", code)
	}

	solveStart := time.Now()
	deadline := solveStart.Add(budget)

	if len(p.nodes) == 0 {
		root := &node{state: p.start, cost: datastructure.NewCost(0)}
		p.nodes = append(p.nodes, root)
		p.index.Insert(p.start.GetX(), p.start.GetY(), root)
	}

	iteration := 0
	for ; iteration < p.cfg.MaxIterations; iteration++ {
		if time.Now().After(deadline) || util.StopConcurrentOperation(ctx) {
			break
		}
		p.stats.AddIteration()

		if err := p.growOnce(iteration); err != nil {
			return false, err
		}
	}

	// only an exhausted iteration budget counts as final, a timeout can
	// still be improved by calling Solve again.
	p.foundFinal = iteration >= p.cfg.MaxIterations
	p.stats.SetDuration(time.Since(solveStart))

	p.log.Info("solve finished",
		zap.Int("iterations", iteration),
		zap.Int("treeSize", len(p.nodes)),
		zap.Bool("solved", p.bestGoal != nil),
		zap.String("pathCost", p.PathCost().String()))

	return p.bestGoal != nil, nil
}

func (p *RRTStar) growOnce(iteration int) error {
	sample := p.sampleState()
	p.stats.AddSampledState()

	nearest, found := p.index.Nearest(sample.GetX(), sample.GetY())
	if !found {
		return nil
	}

	newState := p.steer(nearest.state, sample)
	if !p.validator.IsValid(newState) {
		p.stats.AddRejectedState()
		return nil
	}

	edge, err := p.obj.MotionCost(nearest.state, newState)
	if err != nil {
		return err
	}
	if edge.IsInfinite() {
		p.stats.AddRejectedEdge()
		return nil
	}

	// choose the cheapest parent among the neighbors
	parent := nearest
	best := nearest.cost.Add(edge)
	neighbors := p.index.SearchWithinRadius(newState.GetX(), newState.GetY(), p.cfg.RewireRadius)
	for _, nb := range neighbors {
		c, err := p.obj.MotionCost(nb.state, newState)
		if err != nil {
			return err
		}
		if c.IsInfinite() {
			continue
		}
		if through := nb.cost.Add(c); through.Less(best) {
			parent = nb
			best = through
		}
	}

	n := &node{state: newState, parent: parent, cost: best}
	p.nodes = append(p.nodes, n)
	p.index.Insert(newState.GetX(), newState.GetY(), n)

	// rewire neighbors through the new node where that is cheaper
	for _, nb := range neighbors {
		c, err := p.obj.MotionCost(newState, nb.state)
		if err != nil {
			return err
		}
		if c.IsInfinite() {
			continue
		}
		if through := n.cost.Add(c); through.Less(nb.cost) {
			nb.parent = n
			nb.cost = through
		}
	}

	p.tryConnectGoal(n, iteration)
	return nil
}

func (p *RRTStar) tryConnectGoal(n *node, iteration int) {
	if geo.EuclideanDistance(n.state.GetX(), n.state.GetY(), p.goal.GetX(), p.goal.GetY()) > p.cfg.GoalTolerance {
		return
	}
	edge, err := p.obj.MotionCost(n.state, p.goal)
	if err != nil || edge.IsInfinite() {
		return
	}
	total := n.cost.Add(edge)
	if p.bestGoal != nil && !total.Less(p.bestGoal.cost) {
		return
	}
	p.bestGoal = &node{state: p.goal, parent: n, cost: total}
	p.stats.RecordImprovedSolution(total)
	if p.progress != nil {
		p.progress(iteration, total)
	}
}

// sampleState draws a uniform state over the grid bounds, biased toward
// the goal.
func (p *RRTStar) sampleState() datastructure.State {
	if p.rng.Float64() < p.cfg.GoalBias {
		return p.goal
	}

	x := p.rng.Float64() * float64(p.grid.GetWidth())
	y := p.rng.Float64() * float64(p.grid.GetHeight())

	switch p.envType {
	case pkg.ENV_XYTHETA:
		return datastructure.NewPoseState(x, y, p.sampleYaw())
	case pkg.ENV_SHERPA:
		return datastructure.NewSherpaState(x, y, p.sampleYaw(), p.rng.Intn(p.numFootprintClasses))
	default:
		return datastructure.NewPositionState(x, y)
	}
}

func (p *RRTStar) sampleYaw() float64 {
	return geo.NormalizeYaw(-math.Pi + p.rng.Float64()*2*math.Pi)
}

// steer limits the extension toward the sample to the steer range.
func (p *RRTStar) steer(from, to datastructure.State) datastructure.State {
	dist := geo.EuclideanDistance(from.GetX(), from.GetY(), to.GetX(), to.GetY())
	if dist <= p.cfg.SteerRange {
		return to
	}
	return datastructure.InterpolateState(p.envType, from, to, p.cfg.SteerRange/dist)
}

// FillPath. best path from start to goal, in grid coordinates.
func (p *RRTStar) FillPath() ([]datastructure.State, error) {
	if p.bestGoal == nil {
		return nil, ErrNoSolution
	}
	path := make([]datastructure.State, 0, 16)
	for n := p.bestGoal; n != nil; n = n.parent {
		path = append(path, n.state)
	}
	return util.ReverseG(path), nil
}

func (p *RRTStar) PathCost() datastructure.Cost {
	if p.bestGoal == nil {
		return datastructure.InfiniteCost()
	}
	return p.bestGoal.cost
}

func (p *RRTStar) FoundFinalSolution() bool {
	return p.foundFinal
}

func (p *RRTStar) Metrics() *metrics.SolveMetrics {
	return p.stats
}
