package controllers

import (
	"context"
	"time"

	"github.com/rovlab/terranav/pkg"
	"github.com/rovlab/terranav/pkg/datastructure"
	"github.com/rovlab/terranav/pkg/http/usecases"
)

type PlanningService interface {
	EnvironmentType() pkg.EnvironmentType
	Plan(ctx context.Context, start, goal datastructure.State, budget time.Duration) (*usecases.PlanSolution, error)
	PlanWithProgress(ctx context.Context, start, goal datastructure.State, budget time.Duration,
		emit usecases.ProgressFunc) (*usecases.PlanSolution, error)
	StateCost(s datastructure.State) (datastructure.Cost, error)
	MotionCost(s1, s2 datastructure.State) (datastructure.Cost, error)
	ApplyMapUpdates(updates []datastructure.CellUpdate) error
}
