package engine

import (
	"strconv"

	"github.com/tartampluch/life-grid/internal/config"
)

// Cell describes one unit of the grid. It carries no styling; the
// presentation layer decides how filled and annotated cells look.
type Cell struct {
	Index      int
	Filled     bool
	Annotation *AnnotationEntry // nil when the cell is not annotated
}

// Annotated reports whether an annotation entry is attached to the cell.
func (c Cell) Annotated() bool {
	return c.Annotation != nil
}

// Row is an ordered run of cells. Label holds the age printed in front of
// the row when an overlay is active (every fifth weeks row), otherwise "".
type Row struct {
	Index int
	Label string
	Cells []Cell
}

// BuildGrid lays out every unit of the mode into rows. A cell is filled when
// its index is below the elapsed count of the mode, and annotated when the
// set holds an entry at its index. Annotations only apply in weeks mode.
func BuildGrid(mode ViewMode, elapsed Elapsed, set AnnotationSet) ([]Row, error) {
	shape, err := ShapeOf(mode)
	if err != nil {
		return nil, err
	}
	if mode != ModeWeeks {
		set = AnnotationSet{}
	}
	return buildRows(shape, elapsed.For(mode), set), nil
}

func buildRows(shape Shape, filled int, set AnnotationSet) []Row {
	overlay := set.Len() > 0
	rows := make([]Row, 0, shape.Rows())

	for r := 0; r < shape.Rows(); r++ {
		start := r * shape.PerRow
		end := min(start+shape.PerRow, shape.Total)

		row := Row{Index: r, Cells: make([]Cell, 0, end-start)}
		if overlay && r%config.AgeLabelEvery == 0 {
			row.Label = strconv.Itoa(r)
		}

		for i := start; i < end; i++ {
			cell := Cell{Index: i, Filled: i < filled}
			if entry, ok := set.Lookup(i); ok {
				cell.Annotation = &entry
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// CountCells returns the number of filled and annotated cells in rows.
func CountCells(rows []Row) (filled, annotated int) {
	for _, row := range rows {
		for _, c := range row.Cells {
			if c.Filled {
				filled++
			}
			if c.Annotated() {
				annotated++
			}
		}
	}
	return filled, annotated
}
