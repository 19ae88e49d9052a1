package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/dsnet/compress/bzip2"
)

// grid dump format (bzip2-compressed text):
//
//	width height scaleX numClasses
//	classID driveability        (numClasses lines, ascending class id)
//	row of width class ids      (height rows, y ascending)

func (g *TraversabilityGrid) WriteGrid(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	scaleF := strconv.FormatFloat(g.scaleX, 'f', -1, 64)
	fmt.Fprintf(w, "%d %d %s %d\n", g.width, g.height, scaleF, len(g.classes))

	classIDs := make([]int, 0, len(g.classes))
	for id := range g.classes {
		classIDs = append(classIDs, int(id))
	}
	sort.Ints(classIDs)
	for _, id := range classIDs {
		drvF := strconv.FormatFloat(g.classes[uint8(id)].GetDriveability(), 'f', -1, 64)
		fmt.Fprintf(w, "%d %s\n", id, drvF)
	}

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x > 0 {
				fmt.Fprintf(w, " ")
			}
			fmt.Fprintf(w, "%d", g.data[y][x])
		}
		fmt.Fprintf(w, "\n")
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return nil
}

func ReadGrid(filename string) (*TraversabilityGrid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	r := bufio.NewReader(bz)

	var (
		width, height, numClasses int
		scaleX                    float64
	)
	if _, err := fmt.Fscan(r, &width, &height, &scaleX, &numClasses); err != nil {
		return nil, fmt.Errorf("read grid header: %w", err)
	}
	if width <= 0 || height <= 0 || scaleX <= 0 {
		return nil, fmt.Errorf("invalid grid header %dx%d scale %f", width, height, scaleX)
	}

	grid := NewTraversabilityGrid(width, height, scaleX)

	for i := 0; i < numClasses; i++ {
		var (
			classID      int
			driveability float64
		)
		if _, err := fmt.Fscan(r, &classID, &driveability); err != nil {
			return nil, fmt.Errorf("read traversability class %d: %w", i, err)
		}
		grid.SetTraversabilityClass(uint8(classID), NewTraversabilityClass(driveability))
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var classID int
			if _, err := fmt.Fscan(r, &classID); err != nil {
				return nil, fmt.Errorf("read cell (%d,%d): %w", x, y, err)
			}
			if err := grid.SetCell(x, y, uint8(classID)); err != nil {
				return nil, err
			}
		}
	}

	return grid, nil
}
