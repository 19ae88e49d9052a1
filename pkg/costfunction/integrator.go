package costfunction

import (
	"math"

	"github.com/rovlab/terranav/pkg"
	"github.com/rovlab/terranav/pkg/datastructure"
	"github.com/rovlab/terranav/pkg/geo"
	"github.com/rovlab/terranav/pkg/util"
)

// StateCostIntegral is the default base integration routine: the cost of
// a motion is the trapezoidal integral of the state cost along the
// segment. with interpolation disabled only the two endpoint states are
// sampled, which is enough when motions are at most a few cells long.
type StateCostIntegral struct {
	obj         StateCoster
	envType     pkg.EnvironmentType
	interpolate bool
}

func NewStateCostIntegral(obj StateCoster, envType pkg.EnvironmentType, interpolate bool) *StateCostIntegral {
	return &StateCostIntegral{
		obj:         obj,
		envType:     envType,
		interpolate: interpolate,
	}
}

// distance between two states in the planning space: planar euclidean
// plus, for oriented states, half the yaw difference.
func (in *StateCostIntegral) distance(s1, s2 datastructure.State) float64 {
	dist := geo.EuclideanDistance(s1.GetX(), s1.GetY(), s2.GetX(), s2.GetY())

	o1, ok1 := s1.(datastructure.OrientedState)
	o2, ok2 := s2.(datastructure.OrientedState)
	if ok1 && ok2 {
		dist += math.Abs(geo.NormalizeYaw(o2.GetYaw()-o1.GetYaw())) / 2.0
	}
	return dist
}

// trapezoid. mean of the two state costs times the segment length,
// saturating at the maximum finite cost.
func trapezoid(c1, c2 datastructure.Cost, dist float64) datastructure.Cost {
	if c1.IsInfinite() || c2.IsInfinite() {
		return datastructure.InfiniteCost()
	}
	v := 0.5 * dist * (c1.Value() + c2.Value())
	if math.IsInf(v, 1) || v > math.MaxFloat64 {
		return datastructure.MaxCost()
	}
	return datastructure.NewCost(v)
}

// MotionCost. when interpolation is on, the segment is subdivided at
// one-cell resolution so narrow high-cost bands cannot be jumped over.
func (in *StateCostIntegral) MotionCost(s1, s2 datastructure.State) (datastructure.Cost, error) {
	c1, err := in.obj.StateCost(s1)
	if err != nil {
		return datastructure.Cost{}, err
	}
	c2, err := in.obj.StateCost(s2)
	if err != nil {
		return datastructure.Cost{}, err
	}

	if !in.interpolate {
		return trapezoid(c1, c2, in.distance(s1, s2)), nil
	}

	segments := util.MaxG(int(math.Ceil(geo.EuclideanDistance(s1.GetX(), s1.GetY(), s2.GetX(), s2.GetY()))), 1)

	total := datastructure.NewCost(0)
	prevState := s1
	prevCost := c1
	for j := 1; j <= segments; j++ {
		var (
			nextState datastructure.State
			nextCost  datastructure.Cost
		)
		if j == segments {
			nextState, nextCost = s2, c2
		} else {
			nextState = datastructure.InterpolateState(in.envType, s1, s2, float64(j)/float64(segments))
			nextCost, err = in.obj.StateCost(nextState)
			if err != nil {
				return datastructure.Cost{}, err
			}
		}
		total = total.Add(trapezoid(prevCost, nextCost, in.distance(prevState, nextState)))
		prevState, prevCost = nextState, nextCost
	}
	return total, nil
}
