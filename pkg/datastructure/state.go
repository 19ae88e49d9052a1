package datastructure

import (
	"math"

	"github.com/rovlab/terranav/pkg"
	"github.com/rovlab/terranav/pkg/geo"
)

// the set of pose representations is closed (see pkg.EnvironmentType),
// so states are a small capability hierarchy instead of open subclassing:
// every state has a planar position, oriented states add a yaw and
// sherpa states add the discrete footprint class.

type State interface {
	GetX() float64
	GetY() float64
}

type OrientedState interface {
	State
	GetYaw() float64
}

type FootprintState interface {
	OrientedState
	// GetFootprintClass. index in [0, numFootprintClasses-1],
	// 0 = minimum footprint, max index = maximum footprint.
	GetFootprintClass() int
}

// PositionState. planar position only (ENV_XY).
type PositionState struct {
	x float64
	y float64
}

func NewPositionState(x, y float64) PositionState {
	return PositionState{x: x, y: y}
}

func (s PositionState) GetX() float64 {
	return s.x
}

func (s PositionState) GetY() float64 {
	return s.y
}

// PoseState. planar position + orientation (ENV_XYTHETA). yaw is kept
// in (-pi, pi].
type PoseState struct {
	PositionState
	yaw float64
}

func NewPoseState(x, y, yaw float64) PoseState {
	return PoseState{
		PositionState: NewPositionState(x, y),
		yaw:           geo.NormalizeYaw(yaw),
	}
}

func (s PoseState) GetYaw() float64 {
	return s.yaw
}

// SherpaState. pose + footprint class (ENV_SHERPA), for systems that can
// change their stance width while driving.
type SherpaState struct {
	PoseState
	footprintClass int
}

func NewSherpaState(x, y, yaw float64, footprintClass int) SherpaState {
	return SherpaState{
		PoseState:      NewPoseState(x, y, yaw),
		footprintClass: footprintClass,
	}
}

func (s SherpaState) GetFootprintClass() int {
	return s.footprintClass
}

// InterpolateState builds the state at fraction t in [0,1] on the
// segment s1->s2, preserving the environment kind of the endpoints:
// oriented states get shortest-arc yaw interpolation, sherpa states
// additionally round the footprint class to the nearest index.
func InterpolateState(envType pkg.EnvironmentType, s1, s2 State, t float64) State {
	x, y := geo.Interpolate(s1.GetX(), s1.GetY(), s2.GetX(), s2.GetY(), t)

	switch envType {
	case pkg.ENV_XYTHETA:
		o1 := s1.(OrientedState)
		o2 := s2.(OrientedState)
		return NewPoseState(x, y, geo.InterpolateYaw(o1.GetYaw(), o2.GetYaw(), t))
	case pkg.ENV_SHERPA:
		f1 := s1.(FootprintState)
		f2 := s2.(FootprintState)
		yaw := geo.InterpolateYaw(f1.GetYaw(), f2.GetYaw(), t)
		class := int(math.Round(float64(f1.GetFootprintClass()) +
			t*float64(f2.GetFootprintClass()-f1.GetFootprintClass())))
		return NewSherpaState(x, y, yaw, class)
	default:
		return NewPositionState(x, y)
	}
}
