package engine

// Summary feeds the "You've lived N units with M units ahead" sentence.
type Summary struct {
	Mode      ViewMode
	Lived     int
	Ahead     int
	Total     int
	ShowAhead bool // false once the lived count reaches the ceiling
}

// Summarize describes elapsed time in the unit of mode.
func Summarize(mode ViewMode, elapsed Elapsed) (Summary, error) {
	shape, err := ShapeOf(mode)
	if err != nil {
		return Summary{}, err
	}
	lived := elapsed.For(mode)
	return Summary{
		Mode:      mode,
		Lived:     lived,
		Ahead:     shape.Total - lived,
		Total:     shape.Total,
		ShowAhead: lived < shape.Total,
	}, nil
}
