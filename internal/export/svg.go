// Package export writes the life grid to portable formats: an SVG picture
// of the grid and an iCalendar file of the annotation milestones.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/engine"
)

// SVGOptions controls the geometry and colors of the SVG export.
type SVGOptions struct {
	CellSize int
	Gap      int
	Margin   int

	Lived      string
	Ahead      string
	Border     string
	Label      string
	Background string

	// Tooltip renders the <title> of an annotated cell. Defaults to the entry text.
	Tooltip func(engine.AnnotationEntry) string
}

// DefaultSVGOptions returns options matching the on-screen grid of mode.
func DefaultSVGOptions(mode engine.ViewMode) SVGOptions {
	opts := SVGOptions{
		CellSize:   config.CellSizeWeeks,
		Gap:        config.CellGapSmall,
		Margin:     config.SVGMargin,
		Lived:      config.ColorLived,
		Ahead:      config.ColorAhead,
		Border:     config.ColorBorder,
		Label:      config.ColorLabel,
		Background: config.ColorBackground,
	}
	switch mode {
	case engine.ModeYears:
		opts.CellSize, opts.Gap = config.CellSizeYears, config.CellGapYears
	case engine.ModeMonths:
		opts.CellSize = config.CellSizeMonths
	}
	return opts
}

// SVG writes rows as a standalone SVG document. Every cell becomes one rect;
// annotated cells get a colored ring and a <title> tooltip.
func SVG(w io.Writer, rows []engine.Row, opts SVGOptions) error {
	if opts.Tooltip == nil {
		opts.Tooltip = func(e engine.AnnotationEntry) string { return e.Text }
	}

	perRow, labelled := 0, false
	for _, r := range rows {
		perRow = max(perRow, len(r.Cells))
		if r.Label != "" {
			labelled = true
		}
	}

	left := opts.Margin
	if labelled {
		left += config.AgeLabelWidth
	}
	step := opts.CellSize + opts.Gap
	width := left + perRow*step - opts.Gap + opts.Margin
	height := opts.Margin*2 + len(rows)*step - opts.Gap
	if len(rows) == 0 {
		width, height = opts.Margin*2, opts.Margin*2
	}

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<style>
.age { font-family: %s; font-size: %dpx; fill: %s; text-anchor: end; }
</style>
`, width, height, width, height, opts.Background, config.SVGFontFamily, config.SVGFontSize, opts.Label))

	for r, row := range rows {
		y := opts.Margin + r*step
		if row.Label != "" {
			svg.WriteString(fmt.Sprintf(`<text class="age" x="%d" y="%d">%s</text>`+"\n",
				left-opts.Gap-config.SVGLabelBaseline, y+opts.CellSize-config.SVGLabelBaseline, escapeXML(row.Label)))
		}
		for c, cell := range row.Cells {
			drawCell(&svg, cell, left+c*step, y, opts)
		}
	}

	svg.WriteString("</svg>\n")

	if _, err := io.WriteString(w, svg.String()); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSVGWrite, err)
	}

	slog.Debug(config.MsgExported,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyFormat, config.ExtSVG,
		config.LogKeyRows, len(rows))
	return nil
}

func drawCell(svg *strings.Builder, cell engine.Cell, x, y int, opts SVGOptions) {
	fill := opts.Ahead
	if cell.Filled {
		fill = opts.Lived
	}

	if !cell.Annotated() {
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s" stroke="%s" stroke-width="%d"/>`+"\n",
			x, y, opts.CellSize, opts.CellSize, config.SVGCornerRadius, fill, opts.Border, config.SVGRingWidth))
		return
	}

	e := cell.Annotation
	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s" stroke="%s" stroke-width="%d"><title>%s</title></rect>`+"\n",
		x, y, opts.CellSize, opts.CellSize, config.SVGCornerRadius, fill, escapeXML(e.Color), config.SVGRingWidth*2, escapeXML(opts.Tooltip(*e))))
}

// escapeXML escapes the XML special characters of s.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
