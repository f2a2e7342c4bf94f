package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/engine"
)

// Palette used by the on-screen grid.
var (
	colorLived      = hexColor(config.ColorLived)
	colorAhead      = hexColor(config.ColorAhead)
	colorBorder     = hexColor(config.ColorBorder)
	colorAnnotation = hexColor(config.ColorAnnotation)
	colorLabel      = hexColor(config.ColorLabel)
)

// hexColor converts "#RRGGBB" to a color. Malformed values yield the
// annotation yellow so a bad dataset color stays visible.
func hexColor(s string) color.NRGBA {
	c := color.NRGBA{A: 0xff}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff}
	}
	return c
}

// gridCell is one square of the grid. It reports hover and tap so the
// window can show the payload of the cell.
type gridCell struct {
	widget.BaseWidget

	cell    engine.Cell
	rect    *canvas.Rectangle
	onHover func(engine.Cell)
	onTap   func(engine.Cell)
}

func newGridCell(onHover, onTap func(engine.Cell)) *gridCell {
	c := &gridCell{
		rect:    canvas.NewRectangle(colorAhead),
		onHover: onHover,
		onTap:   onTap,
	}
	c.rect.CornerRadius = config.CellGapSmall
	c.ExtendBaseWidget(c)
	return c
}

func (c *gridCell) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.rect)
}

// SetCell restyles the square for cell.
func (c *gridCell) SetCell(cell engine.Cell) {
	c.cell = cell

	fill, stroke, width := colorAhead, colorBorder, float32(1)
	if cell.Filled {
		fill = colorLived
	}
	if cell.Annotated() {
		stroke, width = hexColor(cell.Annotation.Color), 2
	}

	c.rect.FillColor = fill
	c.rect.StrokeColor = stroke
	c.rect.StrokeWidth = width
	c.rect.Refresh()
}

func (c *gridCell) MouseIn(*desktop.MouseEvent) {
	if c.onHover != nil {
		c.onHover(c.cell)
	}
}

func (c *gridCell) MouseMoved(*desktop.MouseEvent) {}

func (c *gridCell) MouseOut() {}

func (c *gridCell) Tapped(*fyne.PointEvent) {
	if c.onTap != nil {
		c.onTap(c.cell)
	}
}

// gridLayout places the row labels in a left column followed by the cells
// in rows of perRow. Objects are ordered labels first, then cells.
type gridLayout struct {
	rows, perRow int
	cell, gap    float32
	labelWidth   float32
}

func (l *gridLayout) step() float32 {
	return l.cell + l.gap
}

func (l *gridLayout) Layout(objects []fyne.CanvasObject, _ fyne.Size) {
	if len(objects) < l.rows || l.perRow == 0 {
		return
	}
	labels, cells := objects[:l.rows], objects[l.rows:]
	step := l.step()

	for i, lbl := range labels {
		lbl.Move(fyne.NewPos(0, float32(i)*step))
		lbl.Resize(fyne.NewSize(l.labelWidth-l.gap, l.cell))
	}
	for k, c := range cells {
		c.Move(fyne.NewPos(l.labelWidth+float32(k%l.perRow)*step, float32(k/l.perRow)*step))
		c.Resize(fyne.NewSize(l.cell, l.cell))
	}
}

func (l *gridLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	if l.rows == 0 {
		return fyne.NewSize(0, 0)
	}
	step := l.step()
	return fyne.NewSize(l.labelWidth+float32(l.perRow)*step-l.gap, float32(l.rows)*step-l.gap)
}

// gridView renders engine rows. Widgets are reused while the mode is
// unchanged and rebuilt when the shape changes.
type gridView struct {
	mode    engine.ViewMode
	layout  *gridLayout
	labels  []*canvas.Text
	cells   []*gridCell
	content *fyne.Container

	onHover func(engine.Cell)
	onTap   func(engine.Cell)
}

func newGridView(onHover, onTap func(engine.Cell)) *gridView {
	g := &gridView{layout: &gridLayout{}, onHover: onHover, onTap: onTap}
	g.content = container.New(g.layout)
	return g
}

// cellMetrics returns the square size and gap of mode.
func cellMetrics(mode engine.ViewMode) (size, gap float32) {
	switch mode {
	case engine.ModeYears:
		return config.CellSizeYears, config.CellGapYears
	case engine.ModeMonths:
		return config.CellSizeMonths, config.CellGapSmall
	default:
		return config.CellSizeWeeks, config.CellGapSmall
	}
}

// Update draws rows for mode.
func (g *gridView) Update(mode engine.ViewMode, rows []engine.Row) {
	total, perRow, labelled := 0, 0, false
	for _, r := range rows {
		total += len(r.Cells)
		perRow = max(perRow, len(r.Cells))
		if r.Label != "" {
			labelled = true
		}
	}

	if mode != g.mode || total != len(g.cells) {
		g.rebuild(mode, len(rows), perRow, total)
	}

	g.layout.labelWidth = 0
	if labelled {
		g.layout.labelWidth = config.AgeLabelWidth
	}

	k := 0
	for i, r := range rows {
		g.labels[i].Text = r.Label
		g.labels[i].Refresh()
		for _, c := range r.Cells {
			g.cells[k].SetCell(c)
			k++
		}
	}
	g.content.Refresh()
}

func (g *gridView) rebuild(mode engine.ViewMode, rows, perRow, total int) {
	size, gap := cellMetrics(mode)
	g.mode = mode
	g.layout.rows, g.layout.perRow = rows, perRow
	g.layout.cell, g.layout.gap = size, gap

	objects := make([]fyne.CanvasObject, 0, rows+total)
	g.labels = make([]*canvas.Text, rows)
	for i := range g.labels {
		t := canvas.NewText("", colorLabel)
		t.Alignment = fyne.TextAlignTrailing
		t.TextSize = config.SVGFontSize
		g.labels[i] = t
		objects = append(objects, t)
	}
	g.cells = make([]*gridCell, total)
	for i := range g.cells {
		g.cells[i] = newGridCell(g.onHover, g.onTap)
		objects = append(objects, g.cells[i])
	}
	g.content.Objects = objects
}

// CanvasObject returns the container holding the grid.
func (g *gridView) CanvasObject() fyne.CanvasObject {
	return g.content
}
