package main

import (
	"context"
	"flag"
	"time"

	terranav "github.com/rovlab/terranav/pkg"
	"github.com/rovlab/terranav/pkg/costfunction"
	"github.com/rovlab/terranav/pkg/datastructure"
	"github.com/rovlab/terranav/pkg/http"
	"github.com/rovlab/terranav/pkg/http/usecases"
	"github.com/rovlab/terranav/pkg/logger"
	"github.com/rovlab/terranav/pkg/planner"
	"github.com/rovlab/terranav/pkg/util"
	"go.uber.org/zap"
)

var (
	gridFile      = flag.String("grid_file", "./data/terrain.grid.bz2", "traversability grid file (bzip2)")
	configDir     = flag.String("config_dir", "./data/", "directory holding terranav.yaml")
	environment   = flag.String("environment", "xytheta", "planning environment: xy, xytheta or sherpa")
	forwardSpeed  = flag.Float64("forward_speed", terranav.DEFAULT_FORWARD_SPEED_METER_SEC, "robot forward speed in m/s")
	interpolate   = flag.Bool("interpolate_motion_cost", true, "sample intermediate cells when pricing a motion")
	solveBudget   = flag.Duration("solve_budget", 5*time.Second, "default planning time budget per request")
	useRateLimit  = flag.Bool("rate_limit", false, "rate limit the http api")
	maxIterations = flag.Int("max_iterations", 4000, "sampling iterations per solve")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(*configDir); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}

	envType, ok := terranav.EnvironmentTypeFromString(*environment)
	if !ok {
		panic("unknown environment type: " + *environment)
	}

	grid, err := datastructure.ReadGrid(*gridFile)
	if err != nil {
		panic(err)
	}
	logger.Info("traversability grid loaded",
		zap.Int("width", grid.GetWidth()), zap.Int("height", grid.GetHeight()),
		zap.Float64("scale_x", grid.GetScaleX()))

	objCfg := costfunction.DefaultConfig(envType)
	objCfg.Mobility = costfunction.NewMobility(*forwardSpeed)
	objCfg.EnableMotionCostInterpolation = *interpolate
	objective := costfunction.NewTravGridObjective(objCfg, logger)

	plannerCfg := planner.DefaultConfig()
	plannerCfg.MaxIterations = *maxIterations
	rrt := planner.NewRRTStar(plannerCfg, objective, logger)
	if err := rrt.Initialize(grid, grid.Snapshot()); err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	planningService := usecases.NewPlanningService(logger, rrt, objective, grid, *solveBudget)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx,
		logger, *useRateLimit, planningService)

	signal := http.GracefulShutdown()

	logger.Info("Terranav Planning Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
