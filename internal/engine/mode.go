package engine

import (
	"fmt"
	"strings"

	"github.com/tartampluch/life-grid/internal/config"
)

// ViewMode selects the granularity of the grid.
type ViewMode string

const (
	ModeYears  ViewMode = config.ModeYears
	ModeMonths ViewMode = config.ModeMonths
	ModeWeeks  ViewMode = config.ModeWeeks
)

// Modes lists the view modes in display order.
var Modes = []ViewMode{ModeYears, ModeMonths, ModeWeeks}

// ParseViewMode maps a user or preference value to a ViewMode.
func ParseViewMode(value string) (ViewMode, error) {
	m := ViewMode(strings.ToLower(strings.TrimSpace(value)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownViewMode, value)
	}
	return m, nil
}

// Valid reports whether m is one of the known modes.
func (m ViewMode) Valid() bool {
	switch m {
	case ModeYears, ModeMonths, ModeWeeks:
		return true
	}
	return false
}

func (m ViewMode) String() string {
	return string(m)
}

// Shape is the fixed extent of the grid for one view mode.
type Shape struct {
	Total  int // Number of cells (unit indices 0..Total-1)
	PerRow int // Number of cells on a full row
}

// Rows returns ceil(Total / PerRow).
func (s Shape) Rows() int {
	if s.PerRow <= 0 {
		return 0
	}
	return (s.Total + s.PerRow - 1) / s.PerRow
}

// ShapeOf returns the grid shape of a view mode.
func ShapeOf(mode ViewMode) (Shape, error) {
	switch mode {
	case ModeYears:
		return Shape{Total: config.MaxYears, PerRow: config.YearsPerRow}, nil
	case ModeMonths:
		return Shape{Total: config.MaxMonths, PerRow: config.MonthsPerRow}, nil
	case ModeWeeks:
		return Shape{Total: config.MaxWeeks, PerRow: config.WeeksPerRow}, nil
	default:
		return Shape{}, fmt.Errorf("%w: %q", ErrUnknownViewMode, string(mode))
	}
}
