package datastructure

import (
	"fmt"
	"math"
)

// Cost is the scalar the optimizer compares. a cost is either a finite
// non-negative number of seconds or the distinguished infinite value.
// infinite means "this transition must never be chosen" and is kept
// separate from MaxCost so that an impassable-but-summable cell
// (MaxCost) never collides with a forbidden edge in comparisons.
type Cost struct {
	value    float64
	infinite bool
}

func NewCost(value float64) Cost {
	return Cost{value: value}
}

// InfiniteCost. the infinite-cost signal.
func InfiniteCost() Cost {
	return Cost{infinite: true}
}

// MaxCost. largest finite cost. used for impassable cells and zero
// speed so sums stay arithmetically composable.
func MaxCost() Cost {
	return Cost{value: math.MaxFloat64}
}

func (c Cost) Value() float64 {
	if c.infinite {
		return math.Inf(1)
	}
	return c.value
}

func (c Cost) IsInfinite() bool {
	return c.infinite
}

// Add. infinite absorbs everything, finite sums saturate at MaxCost.
func (c Cost) Add(other Cost) Cost {
	if c.infinite || other.infinite {
		return InfiniteCost()
	}
	sum := c.value + other.value
	if sum > math.MaxFloat64 || math.IsInf(sum, 1) {
		return MaxCost()
	}
	return Cost{value: sum}
}

// AddValue. add a plain duration (seconds) to a finite cost.
func (c Cost) AddValue(v float64) Cost {
	return c.Add(NewCost(v))
}

// Less. strict ordering, every finite cost is less than infinite.
func (c Cost) Less(other Cost) bool {
	if c.infinite {
		return false
	}
	if other.infinite {
		return true
	}
	return c.value < other.value
}

func (c Cost) String() string {
	if c.infinite {
		return "inf"
	}
	return fmt.Sprintf("%.4f", c.value)
}
