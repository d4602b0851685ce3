package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/golang/geo/r2"
)

// loadPoints reads cell coordinates from a CSV file with one x,y pair per
// row. A single non-numeric header row is tolerated and skipped.
func loadPoints(path string) ([]r2.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readPoints(file)
}

func readPoints(r io.Reader) ([]r2.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var points []r2.Point
	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++
		if len(record) < 2 {
			return nil, fmt.Errorf("cli: row %d: expected two columns, got %d", row, len(record))
		}
		x, errX := strconv.ParseFloat(record[0], 64)
		y, errY := strconv.ParseFloat(record[1], 64)
		if errX != nil || errY != nil {
			if row == 1 {
				continue // header
			}
			return nil, fmt.Errorf("cli: row %d: non-numeric coordinates %q,%q", row, record[0], record[1])
		}
		points = append(points, r2.Point{X: x, Y: y})
	}
	return points, nil
}

// autoDims infers image dimensions from the coordinates when none are given:
// the smallest integer box containing every point.
func autoDims(points []r2.Point) (int, int) {
	maxX, maxY := 0.0, 0.0
	for _, p := range points {
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return int(math.Ceil(maxX)) + 1, int(math.Ceil(maxY)) + 1
}
