package ui

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/engine"
)

// sortEntries orders entries in place by the given table column. Ties keep
// the dataset declaration order.
func sortEntries(entries []engine.AnnotationEntry, col int, asc bool) {
	slices.SortStableFunc(entries, func(a, b engine.AnnotationEntry) int {
		var c int
		switch col {
		case config.ColIDName:
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case config.ColIDAge:
			c = cmp.Compare(a.Age, b.Age)
		case config.ColIDText:
			c = cmp.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text))
		default: // config.ColIDWeek
			c = cmp.Compare(a.Index, b.Index)
		}
		if !asc {
			return -c
		}
		return c
	})
}

// cellText formats one table cell.
func cellText(e engine.AnnotationEntry, col int) string {
	switch col {
	case config.ColIDName:
		return e.Name
	case config.ColIDAge:
		return strconv.Itoa(e.Age)
	case config.ColIDWeek:
		return fmt.Sprintf(config.FormatWeekIndex, e.Years(), e.Weeks())
	default:
		return e.Text
	}
}

// ShowDatasetsWindow lists the entries of an annotation dataset in a
// sortable table. If the window is already open, it requests focus.
func (app *LifeGridApp) ShowDatasetsWindow() {
	if app.datasetsWindow != nil {
		slog.Debug(config.MsgWindowFocus, config.LogKeyComponent, config.CompUI)
		app.datasetsWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinDatasets))
	app.datasetsWindow = w
	w.Resize(fyne.NewSize(config.DatasetsWinWidth, config.DatasetsWinHeight))

	catalog := app.Session.Catalog()
	ids := catalog.IDs()

	var display []engine.AnnotationEntry
	currentSortCol := config.ColIDWeek
	sortAsc := true

	load := func(id engine.DatasetID) {
		display = nil
		if d, ok := catalog.Dataset(id); ok {
			display = d.Entries()
		}
		sortEntries(display, currentSortCol, sortAsc)
		slog.Info(config.LogMsgOpenWin,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyDataset, id,
			config.LogKeyCount, len(display))
	}

	table := widget.NewTable(
		func() (int, int) {
			return len(display), 4
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(display) {
				return
			}
			label.SetText(cellText(display[id.Row], id.Col))
		},
	)

	// --- Header Configuration (Fyne Native) ---

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDName:
			titleKey = config.TKeyColName
		case config.ColIDAge:
			titleKey = config.TKeyColAge
		case config.ColIDWeek:
			titleKey = config.TKeyColWeek
		case config.ColIDText:
			titleKey = config.TKeyColText
		}

		text := app.GetMsg(titleKey)
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			sortEntries(display, currentSortCol, sortAsc)
			slog.Debug(config.LogMsgSorted,
				config.LogKeyComponent, config.CompUI,
				config.LogKeySortCol, currentSortCol,
				config.LogKeySortAsc, sortAsc)
			table.Refresh()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)
	table.SetColumnWidth(config.ColIDWeek, config.ColWidthWeek)
	table.SetColumnWidth(config.ColIDText, config.ColWidthText)

	// Dataset selector
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = app.DatasetLabel(id)
	}
	selector := widget.NewSelect(labels, func(label string) {
		if i := slices.Index(labels, label); i >= 0 {
			load(ids[i])
			table.Refresh()
		}
	})
	selector.SetSelected(app.DatasetLabel(app.Session.State().Dataset))

	w.SetContent(container.NewBorder(container.NewPadded(selector), nil, nil, nil, table))
	w.SetOnClosed(func() {
		app.datasetsWindow = nil
	})
	w.Show()
}
