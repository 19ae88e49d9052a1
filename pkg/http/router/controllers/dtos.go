package controllers

import (
	"github.com/rovlab/terranav/pkg"
	"github.com/rovlab/terranav/pkg/datastructure"
	"github.com/rovlab/terranav/pkg/http/usecases"
	"github.com/rovlab/terranav/pkg/metrics"
)

type stateRequest struct {
	X              float64 `json:"x" validate:"min=0"`
	Y              float64 `json:"y" validate:"min=0"`
	Yaw            float64 `json:"yaw" validate:"min=-6.3,max=6.3"`
	FootprintClass int     `json:"footprint_class" validate:"min=0,max=255"`
}

// toState builds the state kind the configured environment expects,
// ignoring the fields the environment has no use for.
func (s stateRequest) toState(envType pkg.EnvironmentType) datastructure.State {
	switch envType {
	case pkg.ENV_XYTHETA:
		return datastructure.NewPoseState(s.X, s.Y, s.Yaw)
	case pkg.ENV_SHERPA:
		return datastructure.NewSherpaState(s.X, s.Y, s.Yaw, s.FootprintClass)
	default:
		return datastructure.NewPositionState(s.X, s.Y)
	}
}

type planRequest struct {
	Start         stateRequest `json:"start"`
	Goal          stateRequest `json:"goal"`
	BudgetSeconds float64      `json:"budget_seconds" validate:"omitempty,gt=0,max=300"`
}

type planResponse struct {
	CostSeconds float64              `json:"cost_seconds"`
	Final       bool                 `json:"final"`
	Polyline    string               `json:"polyline"`
	Path        []usecases.PathPoint `json:"path"`
	Metrics     metrics.Snapshot     `json:"metrics"`
}

func NewPlanResponse(sol *usecases.PlanSolution) planResponse {
	return planResponse{
		CostSeconds: sol.CostSeconds,
		Final:       sol.Final,
		Polyline:    sol.Polyline,
		Path:        sol.Path,
		Metrics:     sol.Metrics,
	}
}

// costResponse reports an infinite cost as infinite=true with a -1
// value, json has no encoding for +Inf.
type costResponse struct {
	CostSeconds float64 `json:"cost_seconds"`
	Infinite    bool    `json:"infinite"`
}

func NewCostResponse(c datastructure.Cost) costResponse {
	if c.IsInfinite() {
		return costResponse{CostSeconds: -1, Infinite: true}
	}
	return costResponse{CostSeconds: c.Value()}
}

type motionCostRequest struct {
	From stateRequest `json:"from"`
	To   stateRequest `json:"to"`
}

type cellUpdateRequest struct {
	X            int     `json:"x" validate:"min=0"`
	Y            int     `json:"y" validate:"min=0"`
	Class        int     `json:"class" validate:"min=0,max=255"`
	Probability  float64 `json:"probability" validate:"min=0,max=1"`
	Driveability float64 `json:"driveability" validate:"min=0,max=1"`
}

type mapUpdateRequest struct {
	Updates []cellUpdateRequest `json:"updates" validate:"required,min=1,dive"`
}

func (r mapUpdateRequest) toCellUpdates() []datastructure.CellUpdate {
	updates := make([]datastructure.CellUpdate, 0, len(r.Updates))
	for _, u := range r.Updates {
		updates = append(updates, datastructure.NewCellUpdate(u.X, u.Y, uint8(u.Class), u.Probability, u.Driveability))
	}
	return updates
}

type mapUpdateResponse struct {
	UpdatedCells int `json:"updated_cells"`
}
