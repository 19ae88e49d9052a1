package spatialindex

import (
	"testing"
)

func TestNearest(t *testing.T) {
	idx := NewPointIndex[int]()

	if _, found := idx.Nearest(0, 0); found {
		t.Fatal("empty index must report not found")
	}

	idx.Insert(0, 0, 1)
	idx.Insert(5, 5, 2)
	idx.Insert(10, 0, 3)

	testCases := []struct {
		name string
		x, y float64
		want int
	}{
		{name: "near origin", x: 1, y: 1, want: 1},
		{name: "near center", x: 4, y: 6, want: 2},
		{name: "near right", x: 9, y: 1, want: 3},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, found := idx.Nearest(tt.x, tt.y)
			if !found || got != tt.want {
				t.Errorf("Nearest(%f,%f) = %d found=%v, want %d", tt.x, tt.y, got, found, tt.want)
			}
		})
	}
}

func TestSearchWithinRadius(t *testing.T) {
	idx := NewPointIndex[int]()
	idx.Insert(0, 0, 1)
	idx.Insert(3, 0, 2)
	idx.Insert(2.9, 2.9, 3) // inside the box of radius 3 but outside the circle
	idx.Insert(10, 10, 4)

	got := idx.SearchWithinRadius(0, 0, 3)
	if len(got) != 2 {
		t.Fatalf("SearchWithinRadius = %v, want the two points within distance 3", got)
	}
}
