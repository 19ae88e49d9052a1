package costfunction

import (
	"errors"

	"github.com/rovlab/terranav/pkg"
	"github.com/rovlab/terranav/pkg/datastructure"
	"github.com/rovlab/terranav/pkg/geo"
	"github.com/rovlab/terranav/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrNoTerrain              = errors.New("no traversability grid attached")
	ErrUnsupportedEnvironment = errors.New("unsupported planning environment")
	ErrStateOutOfBounds       = errors.New("state outside traversability grid")
)

// TravGridObjective maps robot states to traversal time using the
// driveability values of the traversability grid. it is read-only and
// reentrant: concurrent StateCost/MotionCost calls are safe as long as
// AttachTerrain is not called while queries are in flight. the grid
// reference is borrowed, the cell snapshot is shared and never written.
type TravGridObjective struct {
	cfg        Config
	log        *zap.Logger
	grid       TerrainService
	data       datastructure.TravData
	integrator Integrator
}

func NewTravGridObjective(cfg Config, log *zap.Logger) *TravGridObjective {
	o := &TravGridObjective{
		cfg: cfg,
		log: log,
	}
	o.integrator = NewStateCostIntegral(o, cfg.EnvType, cfg.EnableMotionCostInterpolation)
	return o
}

func NewTravGridObjectiveWithTerrain(cfg Config, log *zap.Logger,
	grid TerrainService, data datastructure.TravData) *TravGridObjective {
	o := NewTravGridObjective(cfg, log)
	o.AttachTerrain(grid, data)
	return o
}

// AttachTerrain. swap the terrain reference and cell snapshot between
// queries. callers must guarantee no query is in flight during the swap.
func (o *TravGridObjective) AttachTerrain(grid TerrainService, data datastructure.TravData) {
	o.grid = grid
	o.data = data
}

// SetIntegrator. replace the default trapezoidal integrator with the
// optimizer's own integration routine.
func (o *TravGridObjective) SetIntegrator(integrator Integrator) {
	o.integrator = integrator
}

func (o *TravGridObjective) GetConfig() Config {
	return o.cfg
}

// extractPosition pulls (x, y) and, for ENV_SHERPA, the footprint class
// out of the state. no range validation happens here, StateCost owns that.
func (o *TravGridObjective) extractPosition(s datastructure.State) (float64, float64, int, error) {
	switch o.cfg.EnvType {
	case pkg.ENV_XY:
		return s.GetX(), s.GetY(), 0, nil
	case pkg.ENV_XYTHETA:
		// orientation does not influence the cell cost
		return s.GetX(), s.GetY(), 0, nil
	case pkg.ENV_SHERPA:
		sherpa, ok := s.(datastructure.FootprintState)
		if !ok {
			return 0, 0, 0, util.WrapErrorf(ErrUnsupportedEnvironment, util.ErrBadParamInput,
				"sherpa environment requires a footprint state, got %T", s)
		}
		return sherpa.GetX(), sherpa.GetY(), sherpa.GetFootprintClass(), nil
	default:
		return 0, 0, 0, util.WrapErrorf(ErrUnsupportedEnvironment, util.ErrBadParamInput,
			"unknown environment %d", o.cfg.EnvType)
	}
}

// StateCost estimates the time to traverse the cell under the state.
// driveability 1.0 means the cell can be crossed at full forward speed,
// lower driveability proportionally increases the traversal time.
// impassable cells and zero speed yield the maximum finite cost so the
// value stays summable inside the integrator.
func (o *TravGridObjective) StateCost(s datastructure.State) (datastructure.Cost, error) {
	if o.grid == nil || o.data == nil {
		return datastructure.Cost{}, ErrNoTerrain
	}

	x, y, footprintClass, err := o.extractPosition(s)
	if err != nil {
		return datastructure.Cost{}, err
	}

	// the optimizer must never present states outside the grid, so this
	// is a contract violation and not a zero-cost cell.
	if x < 0 || x >= float64(o.grid.GetWidth()) ||
		y < 0 || y >= float64(o.grid.GetHeight()) {
		o.log.Warn("invalid state has been passed and will be rejected",
			zap.Float64("x", x), zap.Float64("y", y),
			zap.Int("gridWidth", o.grid.GetWidth()), zap.Int("gridHeight", o.grid.GetHeight()))
		return datastructure.Cost{}, util.WrapErrorf(ErrStateOutOfBounds, util.ErrBadParamInput,
			"state (%4.2f, %4.2f) outside %dx%d grid", x, y, o.grid.GetWidth(), o.grid.GetHeight())
	}

	classValue := o.data[int(y)][int(x)]
	driveability := o.grid.GetTraversabilityClass(classValue).GetDriveability()

	if driveability == 0 || o.cfg.Mobility.Speed == 0 {
		return datastructure.MaxCost(), nil
	}

	// time to traverse one cell at the speed this terrain class allows.
	cost := (o.grid.GetScaleX() / o.cfg.Mobility.Speed) / driveability

	// max footprint means full speed, min footprint scales the cost up
	// by numFootprintClasses+1.
	if o.cfg.EnvType == pkg.ENV_SHERPA {
		cost /= float64(footprintClass+1) / float64(o.cfg.NumFootprintClasses+1)
	}

	return datastructure.NewCost(cost), nil
}

// MotionCost integrates the state cost along the segment s1->s2 and, for
// footprint-aware systems, accounts for the stance change: the time to
// adapt the footprint plus a fixed penalty whenever the class changed.
// a transition whose adaptation takes longer than driving the segment is
// infeasible and gets the infinite cost.
func (o *TravGridObjective) MotionCost(s1, s2 datastructure.State) (datastructure.Cost, error) {
	cost, err := o.integrator.MotionCost(s1, s2)
	if err != nil {
		return datastructure.Cost{}, err
	}

	if o.cfg.EnvType != pkg.ENV_SHERPA {
		return cost, nil
	}

	fp1, ok1 := s1.(datastructure.FootprintState)
	fp2, ok2 := s2.(datastructure.FootprintState)
	if !ok1 || !ok2 {
		return datastructure.Cost{}, util.WrapErrorf(ErrUnsupportedEnvironment, util.ErrBadParamInput,
			"sherpa environment requires footprint states, got %T and %T", s1, s2)
	}

	classDiff := util.Abs(fp1.GetFootprintClass() - fp2.GetFootprintClass())
	fpTimeSec := float64(classDiff) / float64(o.cfg.NumFootprintClasses) * o.cfg.TimeToAdaptFootprint

	cost = cost.AddValue(fpTimeSec)

	if fpTimeSec > 0 {
		cost = cost.AddValue(o.cfg.AdaptFootprintPenalty)
	}

	if o.grid == nil {
		return datastructure.Cost{}, ErrNoTerrain
	}

	// current setups like to do a max-to-min footprint change right in
	// front of the obstacle, where there is no time left to execute it.
	// forbid transitions that cannot finish within the segment.
	distM := geo.EuclideanDistance(fp1.GetX(), fp1.GetY(), fp2.GetX(), fp2.GetY()) * o.grid.GetScaleX()
	movTimeSec := distM / o.cfg.Mobility.Speed

	if fpTimeSec > movTimeSec {
		return datastructure.InfiniteCost(), nil
	}

	return cost, nil
}
