package datastructure

import (
	"fmt"

	"github.com/rovlab/terranav/pkg"
	"github.com/rovlab/terranav/pkg/util"
)

// TraversabilityClass. terrain class value of the map. driveability is
// in [0,1]: 0 = impassable, 1 = traversable at full forward speed.
type TraversabilityClass struct {
	driveability float64
}

func NewTraversabilityClass(driveability float64) TraversabilityClass {
	return TraversabilityClass{
		driveability: util.ClampG(driveability, pkg.MIN_DRIVEABILITY, pkg.MAX_DRIVEABILITY),
	}
}

func (tc TraversabilityClass) GetDriveability() float64 {
	return tc.driveability
}

// TravData. row-major snapshot of the per-cell class ids, indexed
// [y][x]. the evaluator holds this snapshot next to the grid reference
// and never writes it, so one snapshot can back many concurrent queries.
type TravData [][]uint8

func NewTravData(width, height int) TravData {
	data := make(TravData, height)
	for y := 0; y < height; y++ {
		data[y] = make([]uint8, width)
	}
	return data
}

// Clone. deep copy, used to hand a stable snapshot to a query pipeline
// while the grid keeps receiving partial updates.
func (td TravData) Clone() TravData {
	clone := make(TravData, len(td))
	for y := range td {
		clone[y] = make([]uint8, len(td[y]))
		copy(clone[y], td[y])
	}
	return clone
}

// CellUpdate. one cell of a partial map update.
type CellUpdate struct {
	X            int
	Y            int
	Class        uint8
	Probability  float64
	Driveability float64
}

func NewCellUpdate(x, y int, class uint8, probability, driveability float64) CellUpdate {
	return CellUpdate{
		X:            x,
		Y:            y,
		Class:        class,
		Probability:  probability,
		Driveability: driveability,
	}
}

// TraversabilityGrid. discretized terrain map: width x height cells,
// each cell holding a class id, each class mapping to a driveability.
// scaleX is meters per cell and is used uniformly in x and y.
type TraversabilityGrid struct {
	width   int
	height  int
	scaleX  float64
	classes map[uint8]TraversabilityClass
	data    TravData
}

func NewTraversabilityGrid(width, height int, scaleX float64) *TraversabilityGrid {
	return &TraversabilityGrid{
		width:   width,
		height:  height,
		scaleX:  scaleX,
		classes: make(map[uint8]TraversabilityClass),
		data:    NewTravData(width, height),
	}
}

func (g *TraversabilityGrid) GetWidth() int {
	return g.width
}

func (g *TraversabilityGrid) GetHeight() int {
	return g.height
}

// GetScaleX. meters per cell.
func (g *TraversabilityGrid) GetScaleX() float64 {
	return g.scaleX
}

func (g *TraversabilityGrid) SetTraversabilityClass(classID uint8, class TraversabilityClass) {
	g.classes[classID] = class
}

// GetTraversabilityClass. unknown class ids behave as impassable.
func (g *TraversabilityGrid) GetTraversabilityClass(classID uint8) TraversabilityClass {
	class, ok := g.classes[classID]
	if !ok {
		return NewTraversabilityClass(pkg.MIN_DRIVEABILITY)
	}
	return class
}

func (g *TraversabilityGrid) NumberOfClasses() int {
	return len(g.classes)
}

func (g *TraversabilityGrid) ForEachClass(fn func(classID uint8, class TraversabilityClass)) {
	for id, class := range g.classes {
		fn(id, class)
	}
}

func (g *TraversabilityGrid) SetCell(x, y int, classID uint8) error {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return fmt.Errorf("cell (%d,%d) outside grid %dx%d", x, y, g.width, g.height)
	}
	g.data[y][x] = classID
	return nil
}

func (g *TraversabilityGrid) GetCell(x, y int) (uint8, error) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, fmt.Errorf("cell (%d,%d) outside grid %dx%d", x, y, g.width, g.height)
	}
	return g.data[y][x], nil
}

// ApplyCellUpdates. partial map update, called instead of a full
// reinitialization when the map size did not change.
func (g *TraversabilityGrid) ApplyCellUpdates(updates []CellUpdate) error {
	for _, u := range updates {
		if err := g.SetCell(u.X, u.Y, u.Class); err != nil {
			return err
		}
		g.classes[u.Class] = NewTraversabilityClass(u.Driveability)
	}
	return nil
}

// Snapshot. immutable copy of the cell classes for query pipelines.
func (g *TraversabilityGrid) Snapshot() TravData {
	return g.data.Clone()
}
