package datastructure

import (
	"math"
	"testing"

	"github.com/rovlab/terranav/pkg"
	"github.com/rovlab/terranav/pkg/util"
)

func TestInterpolateStatePreservesKind(t *testing.T) {
	s1 := NewSherpaState(0, 0, 0, 0)
	s2 := NewSherpaState(10, 10, math.Pi/2, 4)

	mid := InterpolateState(pkg.ENV_SHERPA, s1, s2, 0.5)
	f, ok := mid.(SherpaState)
	if !ok {
		t.Fatalf("interpolating sherpa states must yield a sherpa state, got %T", mid)
	}
	if f.GetX() != 5 || f.GetY() != 5 {
		t.Errorf("midpoint = (%f,%f), want (5,5)", f.GetX(), f.GetY())
	}
	if f.GetFootprintClass() != 2 {
		t.Errorf("footprint class = %d, want 2", f.GetFootprintClass())
	}
	if !util.Eq(f.GetYaw(), math.Pi/4) {
		t.Errorf("yaw = %f, want %f", f.GetYaw(), math.Pi/4)
	}
}

func TestInterpolateStateRoundsFootprintClass(t *testing.T) {
	s1 := NewSherpaState(0, 0, 0, 0)
	s2 := NewSherpaState(1, 0, 0, 3)

	testCases := []struct {
		t    float64
		want int
	}{
		{0.0, 0},
		{0.4, 1},
		{0.5, 2},
		{1.0, 3},
	}
	for _, tt := range testCases {
		got := InterpolateState(pkg.ENV_SHERPA, s1, s2, tt.t).(SherpaState).GetFootprintClass()
		if got != tt.want {
			t.Errorf("t=%f: footprint class = %d, want %d", tt.t, got, tt.want)
		}
	}
}

func TestInterpolateStateYawShortestArc(t *testing.T) {
	// crossing the pi boundary goes the short way
	s1 := NewPoseState(0, 0, 3.0)
	s2 := NewPoseState(2, 0, -3.0)

	mid := InterpolateState(pkg.ENV_XYTHETA, s1, s2, 0.5).(PoseState)
	if !util.Eq(math.Abs(mid.GetYaw()), math.Pi) {
		t.Errorf("yaw = %f, want +-pi", mid.GetYaw())
	}
}
