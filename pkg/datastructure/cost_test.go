package datastructure

import (
	"math"
	"testing"
)

func TestCostOrdering(t *testing.T) {
	testCases := []struct {
		name string
		a    Cost
		b    Cost
		want bool
	}{
		{name: "smaller finite", a: NewCost(1), b: NewCost(2), want: true},
		{name: "equal finite", a: NewCost(2), b: NewCost(2), want: false},
		{name: "max cost below infinite", a: MaxCost(), b: InfiniteCost(), want: true},
		{name: "infinite not below max cost", a: InfiniteCost(), b: MaxCost(), want: false},
		{name: "infinite not below infinite", a: InfiniteCost(), b: InfiniteCost(), want: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("(%v).Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCostAdd(t *testing.T) {
	sum := NewCost(1.5).Add(NewCost(2.5))
	if sum.IsInfinite() || sum.Value() != 4.0 {
		t.Errorf("finite add = %v, want 4", sum)
	}

	if !NewCost(1).Add(InfiniteCost()).IsInfinite() {
		t.Error("finite + infinite must be infinite")
	}

	// MaxCost plus anything finite must saturate, not overflow to +Inf.
	sat := MaxCost().Add(MaxCost())
	if sat.IsInfinite() {
		t.Error("max + max must stay finite")
	}
	if sat.Value() != math.MaxFloat64 {
		t.Errorf("max + max = %v, want MaxFloat64", sat.Value())
	}
}

func TestInfiniteDistinguishableFromMax(t *testing.T) {
	if MaxCost().IsInfinite() {
		t.Error("MaxCost must not report infinite")
	}
	if !InfiniteCost().IsInfinite() {
		t.Error("InfiniteCost must report infinite")
	}
	if !math.IsInf(InfiniteCost().Value(), 1) {
		t.Error("InfiniteCost value must be +Inf")
	}
}
