package planner

import (
	"github.com/rovlab/terranav/pkg/datastructure"
)

// TravMapValidator decides whether a state may be occupied at all: it
// must lie on the grid and its cell must have non-zero driveability.
// cost shaping is the objective's job, this is the hard filter.
type TravMapValidator struct {
	grid *datastructure.TraversabilityGrid
	data datastructure.TravData
}

func NewTravMapValidator(grid *datastructure.TraversabilityGrid, data datastructure.TravData) *TravMapValidator {
	return &TravMapValidator{
		grid: grid,
		data: data,
	}
}

func (v *TravMapValidator) IsValid(s datastructure.State) bool {
	x, y := s.GetX(), s.GetY()
	if x < 0 || x >= float64(v.grid.GetWidth()) ||
		y < 0 || y >= float64(v.grid.GetHeight()) {
		return false
	}
	classValue := v.data[int(y)][int(x)]
	return v.grid.GetTraversabilityClass(classValue).GetDriveability() > 0
}
