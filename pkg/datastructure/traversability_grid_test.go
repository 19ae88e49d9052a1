package datastructure

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTestGrid(t *testing.T) *TraversabilityGrid {
	t.Helper()
	grid := NewTraversabilityGrid(4, 3, 0.5)
	grid.SetTraversabilityClass(0, NewTraversabilityClass(0.0))
	grid.SetTraversabilityClass(1, NewTraversabilityClass(0.5))
	grid.SetTraversabilityClass(2, NewTraversabilityClass(1.0))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			require.NoError(t, grid.SetCell(x, y, 2))
		}
	}
	require.NoError(t, grid.SetCell(1, 2, 1))
	require.NoError(t, grid.SetCell(3, 0, 0))
	return grid
}

func TestDriveabilityClamped(t *testing.T) {
	require.Equal(t, 0.0, NewTraversabilityClass(-0.3).GetDriveability())
	require.Equal(t, 1.0, NewTraversabilityClass(1.7).GetDriveability())
	require.Equal(t, 0.5, NewTraversabilityClass(0.5).GetDriveability())
}

func TestGridAccessors(t *testing.T) {
	grid := buildTestGrid(t)

	require.Equal(t, 4, grid.GetWidth())
	require.Equal(t, 3, grid.GetHeight())
	require.Equal(t, 0.5, grid.GetScaleX())

	class, err := grid.GetCell(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint8(1), class)
	require.Equal(t, 0.5, grid.GetTraversabilityClass(class).GetDriveability())

	// unknown class ids read as impassable
	require.Equal(t, 0.0, grid.GetTraversabilityClass(99).GetDriveability())

	_, err = grid.GetCell(4, 0)
	require.Error(t, err)
	_, err = grid.GetCell(0, -1)
	require.Error(t, err)
}

func TestSnapshotIsDetached(t *testing.T) {
	grid := buildTestGrid(t)
	snap := grid.Snapshot()

	require.NoError(t, grid.SetCell(0, 0, 0))
	require.Equal(t, uint8(2), snap[0][0], "snapshot must not see later grid writes")
}

func TestApplyCellUpdates(t *testing.T) {
	grid := buildTestGrid(t)

	updates := []CellUpdate{
		NewCellUpdate(0, 1, 7, 0.9, 0.25),
		NewCellUpdate(2, 2, 0, 1.0, 0.0),
	}
	require.NoError(t, grid.ApplyCellUpdates(updates))

	class, err := grid.GetCell(0, 1)
	require.NoError(t, err)
	require.Equal(t, uint8(7), class)
	require.Equal(t, 0.25, grid.GetTraversabilityClass(7).GetDriveability())

	bad := []CellUpdate{NewCellUpdate(-1, 0, 1, 1.0, 1.0)}
	require.Error(t, grid.ApplyCellUpdates(bad))
}

func TestGridRoundTrip(t *testing.T) {
	grid := buildTestGrid(t)
	path := filepath.Join(t.TempDir(), "terrain.grid")

	require.NoError(t, grid.WriteGrid(path))

	loaded, err := ReadGrid(path)
	require.NoError(t, err)

	require.Equal(t, grid.GetWidth(), loaded.GetWidth())
	require.Equal(t, grid.GetHeight(), loaded.GetHeight())
	require.Equal(t, grid.GetScaleX(), loaded.GetScaleX())
	require.Equal(t, grid.NumberOfClasses(), loaded.NumberOfClasses())

	for y := 0; y < grid.GetHeight(); y++ {
		for x := 0; x < grid.GetWidth(); x++ {
			want, err := grid.GetCell(x, y)
			require.NoError(t, err)
			got, err := loaded.GetCell(x, y)
			require.NoError(t, err)
			require.Equal(t, want, got, "cell (%d,%d)", x, y)
		}
	}
	require.Equal(t, 0.5, loaded.GetTraversabilityClass(1).GetDriveability())
}
