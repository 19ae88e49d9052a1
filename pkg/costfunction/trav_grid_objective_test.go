package costfunction

import (
	"errors"
	"math"
	"testing"

	"github.com/rovlab/terranav/pkg"
	"github.com/rovlab/terranav/pkg/datastructure"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// uniformGrid builds a width x height grid where every cell holds class 1
// with the given driveability. class 0 stays impassable.
func uniformGrid(width, height int, scale, driveability float64) *datastructure.TraversabilityGrid {
	grid := datastructure.NewTraversabilityGrid(width, height, scale)
	grid.SetTraversabilityClass(0, datastructure.NewTraversabilityClass(0))
	grid.SetTraversabilityClass(1, datastructure.NewTraversabilityClass(driveability))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			_ = grid.SetCell(x, y, 1)
		}
	}
	return grid
}

func newObjective(cfg Config, grid *datastructure.TraversabilityGrid) *TravGridObjective {
	return NewTravGridObjectiveWithTerrain(cfg, zap.NewNop(), grid, grid.Snapshot())
}

func TestStateCostPlainKinds(t *testing.T) {
	grid := uniformGrid(10, 10, 1.0, 0.5)

	testCases := []struct {
		name  string
		env   pkg.EnvironmentType
		state datastructure.State
	}{
		{name: "xy", env: pkg.ENV_XY, state: datastructure.NewPositionState(4.2, 7.9)},
		{name: "xytheta", env: pkg.ENV_XYTHETA, state: datastructure.NewPoseState(4.2, 7.9, 1.1)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(tt.env)
			cfg.Mobility = NewMobility(2.0)
			obj := newObjective(cfg, grid)

			cost, err := obj.StateCost(tt.state)
			require.NoError(t, err)
			// (scale / speed) / driveability = (1.0/2.0)/0.5
			require.Equal(t, 1.0, cost.Value())
		})
	}
}

func TestStateCostFootprintCorrection(t *testing.T) {
	grid := uniformGrid(10, 10, 1.0, 0.5)
	cfg := DefaultConfig(pkg.ENV_SHERPA)
	cfg.Mobility = NewMobility(2.0)
	cfg.NumFootprintClasses = 3
	obj := newObjective(cfg, grid)

	base := 1.0 // (1.0/2.0)/0.5

	testCases := []struct {
		name  string
		class int
		want  float64
	}{
		{name: "min footprint pays (N+1)x", class: 0, want: base / (1.0 / 4.0)},
		{name: "mid footprint", class: 1, want: base / (2.0 / 4.0)},
		{name: "class 2 divisor 0.75", class: 2, want: base / 0.75},
	}

	prev := math.Inf(1)
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			cost, err := obj.StateCost(datastructure.NewSherpaState(3, 3, 0, tt.class))
			require.NoError(t, err)
			require.InDelta(t, tt.want, cost.Value(), 1e-12)
			require.Less(t, cost.Value(), prev, "cost must decrease with larger footprint class")
			prev = cost.Value()
		})
	}
}

func TestStateCostDegenerateCases(t *testing.T) {
	t.Run("zero driveability", func(t *testing.T) {
		grid := uniformGrid(5, 5, 1.0, 0.0)
		cfg := DefaultConfig(pkg.ENV_XY)
		cfg.Mobility = NewMobility(1.0)
		obj := newObjective(cfg, grid)

		cost, err := obj.StateCost(datastructure.NewPositionState(2, 2))
		require.NoError(t, err)
		require.False(t, cost.IsInfinite())
		require.Equal(t, math.MaxFloat64, cost.Value())
	})

	t.Run("zero speed", func(t *testing.T) {
		grid := uniformGrid(5, 5, 1.0, 1.0)
		cfg := DefaultConfig(pkg.ENV_XY)
		cfg.Mobility = NewMobility(0)
		obj := newObjective(cfg, grid)

		cost, err := obj.StateCost(datastructure.NewPositionState(2, 2))
		require.NoError(t, err)
		require.False(t, cost.IsInfinite())
		require.Equal(t, math.MaxFloat64, cost.Value())
	})
}

func TestStateCostOutOfBounds(t *testing.T) {
	grid := uniformGrid(8, 6, 1.0, 1.0)

	envs := []struct {
		name string
		env  pkg.EnvironmentType
		make func(x, y float64) datastructure.State
	}{
		{name: "xy", env: pkg.ENV_XY,
			make: func(x, y float64) datastructure.State { return datastructure.NewPositionState(x, y) }},
		{name: "xytheta", env: pkg.ENV_XYTHETA,
			make: func(x, y float64) datastructure.State { return datastructure.NewPoseState(x, y, 0) }},
		{name: "sherpa", env: pkg.ENV_SHERPA,
			make: func(x, y float64) datastructure.State { return datastructure.NewSherpaState(x, y, 0, 1) }},
	}

	coords := []struct {
		name string
		x, y float64
	}{
		{name: "negative x", x: -0.1, y: 3},
		{name: "x at width", x: 8, y: 3},
		{name: "negative y", x: 3, y: -2},
		{name: "y at height", x: 3, y: 6},
	}

	for _, env := range envs {
		for _, c := range coords {
			t.Run(env.name+"/"+c.name, func(t *testing.T) {
				obj := newObjective(DefaultConfig(env.env), grid)
				_, err := obj.StateCost(env.make(c.x, c.y))
				require.Error(t, err)
				require.ErrorIs(t, err, ErrStateOutOfBounds)
			})
		}
	}

	t.Run("upper bound is half open", func(t *testing.T) {
		obj := newObjective(DefaultConfig(pkg.ENV_XY), grid)
		_, err := obj.StateCost(datastructure.NewPositionState(7.999, 5.999))
		require.NoError(t, err)
	})
}

func TestStateCostTruncatesToCell(t *testing.T) {
	grid := uniformGrid(5, 5, 1.0, 1.0)
	// cell (1,2) is half driveable, looked up as data[y][x]
	grid.SetTraversabilityClass(2, datastructure.NewTraversabilityClass(0.5))
	require.NoError(t, grid.SetCell(1, 2, 2))

	cfg := DefaultConfig(pkg.ENV_XY)
	cfg.Mobility = NewMobility(1.0)
	obj := newObjective(cfg, grid)

	cost, err := obj.StateCost(datastructure.NewPositionState(1.7, 2.3))
	require.NoError(t, err)
	require.Equal(t, 2.0, cost.Value())

	cost, err = obj.StateCost(datastructure.NewPositionState(2.1, 1.7))
	require.NoError(t, err)
	require.Equal(t, 1.0, cost.Value())
}

func TestStateCostNoTerrain(t *testing.T) {
	obj := NewTravGridObjective(DefaultConfig(pkg.ENV_XY), zap.NewNop())
	_, err := obj.StateCost(datastructure.NewPositionState(1, 1))
	require.ErrorIs(t, err, ErrNoTerrain)
}

func TestStateCostUnsupportedEnvironment(t *testing.T) {
	grid := uniformGrid(5, 5, 1.0, 1.0)
	cfg := DefaultConfig(pkg.ENV_SHERPA)
	obj := newObjective(cfg, grid)

	// a sherpa objective fed a position-only state is a config bug
	_, err := obj.StateCost(datastructure.NewPositionState(1, 1))
	require.ErrorIs(t, err, ErrUnsupportedEnvironment)

	bad := Config{EnvType: pkg.EnvironmentType(99), Mobility: NewMobility(1)}
	objBad := newObjective(bad, grid)
	_, err = objBad.StateCost(datastructure.NewPositionState(1, 1))
	require.ErrorIs(t, err, ErrUnsupportedEnvironment)
}

// fixedIntegrator stands in for the optimizer's integration routine.
type fixedIntegrator struct {
	cost datastructure.Cost
}

func (f fixedIntegrator) MotionCost(_, _ datastructure.State) (datastructure.Cost, error) {
	return f.cost, nil
}

func TestMotionCostNonFootprintUnmodified(t *testing.T) {
	grid := uniformGrid(10, 10, 1.0, 1.0)

	for _, env := range []pkg.EnvironmentType{pkg.ENV_XY, pkg.ENV_XYTHETA} {
		cfg := DefaultConfig(env)
		obj := newObjective(cfg, grid)
		obj.SetIntegrator(fixedIntegrator{cost: datastructure.NewCost(42)})

		cost, err := obj.MotionCost(datastructure.NewPoseState(1, 1, 0), datastructure.NewPoseState(2, 2, 0))
		require.NoError(t, err)
		require.Equal(t, 42.0, cost.Value())
	}
}

func TestMotionCostFootprintAdaptation(t *testing.T) {
	grid := uniformGrid(100, 100, 1.0, 1.0)
	cfg := DefaultConfig(pkg.ENV_SHERPA)
	cfg.Mobility = NewMobility(1.0)
	cfg.NumFootprintClasses = 3
	cfg.TimeToAdaptFootprint = 6.0
	cfg.AdaptFootprintPenalty = 2.0
	obj := newObjective(cfg, grid)
	obj.SetIntegrator(fixedIntegrator{cost: datastructure.NewCost(10)})

	t.Run("no class change adds nothing", func(t *testing.T) {
		a := datastructure.NewSherpaState(1, 1, 0, 2)
		b := datastructure.NewSherpaState(50, 1, 0, 2)
		cost, err := obj.MotionCost(a, b)
		require.NoError(t, err)
		require.Equal(t, 10.0, cost.Value())
	})

	t.Run("duration interpolated over class range plus penalty", func(t *testing.T) {
		// |0-2|/3 * 6 = 4 seconds of adaptation, distance 49 cells at
		// 1 m/s leaves plenty of time
		a := datastructure.NewSherpaState(1, 1, 0, 0)
		b := datastructure.NewSherpaState(50, 1, 0, 2)
		cost, err := obj.MotionCost(a, b)
		require.NoError(t, err)
		require.Equal(t, 10.0+4.0+2.0, cost.Value())
	})

	t.Run("symmetric in endpoints", func(t *testing.T) {
		a := datastructure.NewSherpaState(1, 1, 0, 0)
		b := datastructure.NewSherpaState(50, 1, 0, 2)
		forward, err := obj.MotionCost(a, b)
		require.NoError(t, err)
		backward, err := obj.MotionCost(b, a)
		require.NoError(t, err)
		require.Equal(t, forward.Value(), backward.Value())
	})

	t.Run("infeasible when adaptation outlasts the segment", func(t *testing.T) {
		// distance 1 cell -> 1 second of travel, 4 seconds of adaptation
		a := datastructure.NewSherpaState(1, 1, 0, 0)
		b := datastructure.NewSherpaState(2, 1, 0, 2)
		cost, err := obj.MotionCost(a, b)
		require.NoError(t, err)
		require.True(t, cost.IsInfinite())
	})
}

func TestDefaultIntegratorTrapezoid(t *testing.T) {
	grid := uniformGrid(20, 20, 1.0, 0.5)
	cfg := DefaultConfig(pkg.ENV_XY)
	cfg.Mobility = NewMobility(1.0)
	obj := newObjective(cfg, grid)

	// uniform state cost 2.0, distance 5 -> 0.5 * 5 * (2+2) = 10
	cost, err := obj.MotionCost(datastructure.NewPositionState(1, 1), datastructure.NewPositionState(4, 5))
	require.NoError(t, err)
	require.InDelta(t, 10.0, cost.Value(), 1e-9)
}

func TestIntegratorInterpolationSeesNarrowBand(t *testing.T) {
	// a one-cell band of bad terrain between the endpoints
	grid := uniformGrid(20, 20, 1.0, 1.0)
	grid.SetTraversabilityClass(3, datastructure.NewTraversabilityClass(0.1))
	for y := 0; y < 20; y++ {
		require.NoError(t, grid.SetCell(10, y, 3))
	}

	cfg := DefaultConfig(pkg.ENV_XY)
	cfg.Mobility = NewMobility(1.0)

	plain := newObjective(cfg, grid)

	cfgI := cfg
	cfgI.EnableMotionCostInterpolation = true
	interp := newObjective(cfgI, grid)

	a := datastructure.NewPositionState(5.5, 5.5)
	b := datastructure.NewPositionState(15.5, 5.5)

	plainCost, err := plain.MotionCost(a, b)
	require.NoError(t, err)
	interpCost, err := interp.MotionCost(a, b)
	require.NoError(t, err)

	require.Greater(t, interpCost.Value(), plainCost.Value(),
		"interpolated integral must pick up the high-cost band")
}

func TestMotionCostErrorPropagation(t *testing.T) {
	grid := uniformGrid(5, 5, 1.0, 1.0)
	obj := newObjective(DefaultConfig(pkg.ENV_XY), grid)

	_, err := obj.MotionCost(datastructure.NewPositionState(1, 1), datastructure.NewPositionState(9, 9))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrStateOutOfBounds))
}
