package ui

import (
	"image/color"
	"log/slog"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/engine"
)

// mainView holds the widgets of the grid window that change with the session state.
type mainView struct {
	app *LifeGridApp

	birthEntry *FilteredEntry
	errorLabel *widget.Label
	summary    *widget.Label

	modeButtons map[engine.ViewMode]*widget.Button
	datasets    *widget.RadioGroup
	datasetIDs  []engine.DatasetID
	overlay     *widget.Check
	selectors   *fyne.Container

	axisWeek *widget.Label
	axisAge  *widget.Label
	grid     *gridView

	detailBadge *canvas.Rectangle
	detailTitle *widget.Label
	detailText  *widget.Label

	legendAnnotation *fyne.Container
	footer           *widget.Label
	hint             *widget.Label

	exportICS *widget.Button
}

// ShowMainWindow displays the grid window, creating it on first use.
func (app *LifeGridApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.Show()
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgWindowOpen, config.LogKeyComponent, config.CompUI)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w
	app.view = app.buildMainView()

	w.SetContent(app.view.content())
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))

	if app.Tray != nil {
		// Keep running in the tray when the window is closed.
		w.SetCloseIntercept(w.Hide)
	} else {
		w.SetMaster()
		w.SetOnClosed(func() {
			app.Window = nil
			app.view = nil
		})
	}

	app.view.render(app.Session.State())
	w.Show()
}

func (app *LifeGridApp) buildMainView() *mainView {
	v := &mainView{app: app, modeButtons: make(map[engine.ViewMode]*widget.Button)}

	// --- Birthdate input ---
	v.birthEntry = NewDateEntry()
	v.birthEntry.PlaceHolder = app.GetMsg(config.TKeyPlaceholder)
	v.birthEntry.OnSubmitted = func(s string) { _ = app.Session.SetBirthDate(s) }
	v.birthEntry.OnChanged = func(s string) {
		// Apply as soon as a full ISO date has been typed.
		if len(s) == len(config.DateFormatFullDash) {
			_ = app.Session.SetBirthDate(s)
		}
	}

	v.errorLabel = widget.NewLabel("")
	v.errorLabel.Importance = widget.DangerImportance
	v.errorLabel.Alignment = fyne.TextAlignCenter

	v.summary = widget.NewLabel("")
	v.summary.Alignment = fyne.TextAlignCenter
	v.summary.TextStyle = fyne.TextStyle{Bold: true}

	// --- Mode buttons ---
	for _, m := range engine.Modes {
		m := m
		v.modeButtons[m] = widget.NewButton(app.GetMsg(modeKeys[m].label), func() { _ = app.Session.SetViewMode(m) })
	}

	// --- Dataset selection (weeks only) ---
	v.datasets = widget.NewRadioGroup(nil, nil)
	v.syncDatasets()
	v.datasets.Horizontal = true
	v.datasets.Required = true
	v.overlay = widget.NewCheck(app.GetMsg(config.TKeyLblOverlay), nil)
	v.selectors = container.NewHBox(layout.NewSpacer(), v.datasets, v.overlay, layout.NewSpacer())

	// --- Grid ---
	v.axisWeek = widget.NewLabel(app.GetMsg(config.TKeyAxisWeek))
	v.axisWeek.TextStyle = fyne.TextStyle{Italic: true}
	v.axisAge = widget.NewLabel(app.GetMsg(config.TKeyAxisAge))
	v.axisAge.TextStyle = fyne.TextStyle{Italic: true}
	v.grid = newGridView(v.showCell, v.showCell)

	// --- Cell payload ---
	v.detailBadge = canvas.NewRectangle(colorAnnotation)
	v.detailBadge.SetMinSize(fyne.NewSize(config.CellSizeMonths, config.CellSizeMonths))
	v.detailBadge.CornerRadius = config.CellGapSmall
	v.detailBadge.Hide()
	v.detailTitle = widget.NewLabel("")
	v.detailTitle.TextStyle = fyne.TextStyle{Bold: true}
	v.detailText = widget.NewLabel("")
	v.detailText.Wrapping = fyne.TextWrapWord

	// --- Legend & footer ---
	v.legendAnnotation = legendItem(colorAhead, colorAnnotation, app.GetMsg(config.TKeyLegendAnnotation))
	v.footer = widget.NewLabel("")
	v.footer.Alignment = fyne.TextAlignCenter
	v.hint = widget.NewLabel("")
	v.hint.Alignment = fyne.TextAlignCenter

	v.exportICS = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExportICS), theme.DocumentSaveIcon(), app.showExportCalendarDialog)

	return v
}

// content assembles the window layout.
func (v *mainView) content() fyne.CanvasObject {
	app := v.app

	clearBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnClear), theme.ContentClearIcon(), func() {
		v.birthEntry.SetText("")
		app.Session.Clear()
	})
	importBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.AccountIcon(), app.showImportDialog)

	input := container.NewBorder(nil, nil,
		widget.NewLabel(app.GetMsg(config.TKeyLblBirthdate)),
		container.NewHBox(clearBtn, importBtn),
		v.birthEntry)

	modes := make([]fyne.CanvasObject, 0, len(engine.Modes)+2)
	modes = append(modes, layout.NewSpacer())
	for _, m := range engine.Modes {
		modes = append(modes, v.modeButtons[m])
	}
	modes = append(modes, layout.NewSpacer())

	header := container.NewVBox(
		input,
		v.errorLabel,
		v.summary,
		container.NewHBox(modes...),
		v.selectors,
	)

	gridArea := container.NewBorder(
		container.NewHBox(v.axisAge, layout.NewSpacer(), v.axisWeek, layout.NewSpacer()),
		nil, nil, nil,
		container.NewCenter(v.grid.CanvasObject()),
	)

	legend := container.NewHBox(
		layout.NewSpacer(),
		legendItem(colorLived, colorLived, app.GetMsg(config.TKeyLegendLived)),
		legendItem(colorAhead, colorBorder, app.GetMsg(config.TKeyLegendAhead)),
		v.legendAnnotation,
		layout.NewSpacer(),
	)

	detail := container.NewBorder(nil, nil, container.NewCenter(v.detailBadge), nil,
		container.NewVBox(v.detailTitle, v.detailText))

	actions := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExportSVG), theme.DocumentSaveIcon(), app.showExportSVGDialog),
		v.exportICS,
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyMenuDatasets), theme.ListIcon(), app.ShowDatasetsWindow),
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyMenuSettings), theme.SettingsIcon(), app.ShowSettingsWindow),
	)

	footer := container.NewVBox(detail, legend, v.footer, v.hint, actions)

	return container.NewBorder(
		container.NewPadded(header),
		container.NewPadded(footer),
		nil, nil,
		container.NewScroll(gridArea),
	)
}

// legendItem draws a small swatch followed by its caption.
func legendItem(fill, stroke color.Color, text string) *fyne.Container {
	swatch := canvas.NewRectangle(fill)
	swatch.StrokeColor = stroke
	swatch.StrokeWidth = 2
	swatch.CornerRadius = config.CellGapSmall
	swatch.SetMinSize(fyne.NewSize(config.CellSizeMonths, config.CellSizeMonths))
	return container.NewHBox(container.NewCenter(swatch), widget.NewLabel(text))
}

// render brings every widget in line with st.
func (v *mainView) render(st engine.State) {
	app := v.app

	// The entry keeps what the user typed; it only follows restores and clears.
	onChanged := v.birthEntry.OnChanged
	v.birthEntry.OnChanged = nil
	switch {
	case !st.HasBirthDate() && v.birthEntry.Text != "":
		v.birthEntry.SetText("")
	case st.HasBirthDate() && v.birthEntry.Text == "":
		v.birthEntry.SetText(st.BirthDate)
	}
	v.birthEntry.OnChanged = onChanged

	if st.Err != nil {
		v.errorLabel.SetText(app.ErrorText(st.Err))
		v.errorLabel.Show()
	} else {
		v.errorLabel.SetText("")
		v.errorLabel.Hide()
	}

	if st.Summary != nil {
		v.summary.SetText(app.SummaryText(*st.Summary))
		v.summary.Show()
	} else {
		v.summary.Hide()
	}
	v.exportICS.Disable()
	if st.Elapsed != nil {
		v.exportICS.Enable()
	}

	for m, btn := range v.modeButtons {
		btn.Importance = widget.MediumImportance
		if m == st.Mode {
			btn.Importance = widget.HighImportance
		}
		btn.Refresh()
	}

	v.syncDatasets()
	// Selectors are rebound without callbacks to avoid feeding the change back.
	v.datasets.OnChanged = nil
	v.datasets.SetSelected(app.DatasetLabel(st.Dataset))
	v.datasets.OnChanged = v.onDatasetChosen
	v.overlay.OnChanged = nil
	v.overlay.SetChecked(st.Overlay)
	v.overlay.OnChanged = func(b bool) { app.Session.SetOverlay(b) }
	if st.Mode == engine.ModeWeeks {
		v.selectors.Show()
	} else {
		v.selectors.Hide()
	}

	overlayActive := st.Annotations.Len() > 0
	if overlayActive {
		v.axisWeek.Show()
		v.axisAge.Show()
		v.legendAnnotation.Show()
		v.hint.SetText(app.GetMsg(datasetKeys[st.Dataset].hint))
		v.hint.Show()
	} else {
		v.axisWeek.Hide()
		v.axisAge.Hide()
		v.legendAnnotation.Hide()
		v.hint.Hide()
	}
	v.footer.SetText(app.GetMsg(modeKeys[st.Mode].footer))

	v.grid.Update(st.Mode, st.Rows)
	v.clearDetail()
}

// syncDatasets rebuilds the dataset choices when the catalog changed.
func (v *mainView) syncDatasets() {
	ids := v.app.Session.Catalog().IDs()
	if slices.Equal(ids, v.datasetIDs) {
		return
	}
	v.datasetIDs = ids
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = v.app.DatasetLabel(id)
	}
	v.datasets.Options = labels
	v.datasets.Refresh()
}

func (v *mainView) onDatasetChosen(label string) {
	for _, id := range v.datasetIDs {
		if v.app.DatasetLabel(id) == label {
			_ = v.app.Session.SelectDataset(id)
			return
		}
	}
}

// showCell displays the payload of a hovered or tapped cell.
func (v *mainView) showCell(c engine.Cell) {
	app := v.app
	if c.Annotated() {
		v.detailBadge.FillColor = hexColor(c.Annotation.Color)
		v.detailBadge.Refresh()
		v.detailBadge.Show()
		v.detailTitle.SetText(app.TooltipTitle(*c.Annotation))
		v.detailText.SetText(c.Annotation.Text)
		return
	}

	v.detailBadge.Hide()
	key := config.TKeyCellUnit
	if v.grid.mode == engine.ModeYears {
		key = config.TKeyCellYear
	}
	v.detailTitle.SetText(app.GetMsgData(key, map[string]any{"Index": c.Index + 1}, ""))
	v.detailText.SetText("")
}

func (v *mainView) clearDetail() {
	v.detailBadge.Hide()
	v.detailTitle.SetText("")
	v.detailText.SetText("")
}
