package ui

import (
	"errors"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/store"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	storeSelect   *widget.Select
	entryInterval *FilteredEntry
	datasetEntry  *widget.Entry
}

// settingsValues is the form content once mapped back to preference values.
type settingsValues struct {
	Language    string
	Backend     string
	Interval    string // minutes, "" or "0" disables the refresh
	DatasetFile string
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *LifeGridApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgWindowFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgWindowOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := &settingsWidgets{}

	// --- 1. Language ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	// --- 2. Storage ---
	backends := app.backendLabels()
	labels := []string{backends[config.StoreBackendPreferences], backends[config.StoreBackendKeyring]}
	sw.storeSelect = widget.NewSelect(labels, nil)
	sw.storeSelect.SetSelected(backends[app.Preferences.StringWithFallback(config.PrefStoreBackend, config.DefaultStoreBackend)])

	// --- 3. Refresh interval ---
	// Numerical only; "0" or empty disables the refresh in save logic.
	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)))

	// --- 4. Custom dataset ---
	sw.datasetEntry = widget.NewEntry()
	sw.datasetEntry.SetText(app.Preferences.String(config.PrefDatasetFile))
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		app.showDatasetFileDialog(w, sw.datasetEntry.SetText)
	})

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemStore := widget.NewFormItem(app.GetMsg(config.TKeyLblStore), sw.storeSelect)
	itemStore.HintText = app.GetMsg(config.TKeyHelpStore)

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), sw.entryInterval)
	itemInterval := widget.NewFormItem(app.GetMsg(config.TKeyLblRefresh), widInterval)
	itemInterval.HintText = app.GetMsg(config.TKeyHelpInterval)

	itemDataset := widget.NewFormItem(app.GetMsg(config.TKeyLblDatasetFile),
		container.NewBorder(nil, nil, nil, browseBtn, sw.datasetEntry))
	itemDataset.HintText = app.GetMsg(config.TKeyHelpDatasetFile)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "",
		widget.NewForm(itemLang, itemStore, itemInterval, itemDataset))

	// --- Actions ---
	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := app.applySettings(app.readSettings(sw)); err != nil {
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrDatasetFile)), w)
			return
		}
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerLabel := widget.NewLabel(app.GetMsgData(config.TKeyLblFooter,
		map[string]any{"Version": config.Version}, config.AppName+" "+config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(paddedContent)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// backendLabels maps store backend names to their translated labels.
func (app *LifeGridApp) backendLabels() map[string]string {
	return map[string]string{
		config.StoreBackendPreferences: app.GetMsg(config.TKeyStorePrefs),
		config.StoreBackendKeyring:     app.GetMsg(config.TKeyStoreKeyring),
	}
}

// readSettings maps the form widgets back to preference values.
func (app *LifeGridApp) readSettings(sw *settingsWidgets) settingsValues {
	backend := config.DefaultStoreBackend
	for name, label := range app.backendLabels() {
		if label == sw.storeSelect.Selected {
			backend = name
		}
	}
	return settingsValues{
		Language:    sw.langSelect.Selected,
		Backend:     backend,
		Interval:    sw.entryInterval.Text,
		DatasetFile: sw.datasetEntry.Text,
	}
}

// applySettings persists v and propagates it to the store, the catalog,
// the translations and the tray. A custom dataset that fails to load is
// reported and not remembered; the other settings are still applied.
func (app *LifeGridApp) applySettings(v settingsValues) error {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	if v.Language != "" {
		app.Preferences.SetString(config.PrefLanguage, v.Language)
	}

	// Interval: empty or 0 means disabled.
	if v.Interval == "" || v.Interval == "0" {
		app.Preferences.SetInt(config.PrefInterval, config.DisabledInterval)
	} else if i, err := strconv.Atoi(v.Interval); err == nil {
		app.Preferences.SetInt(config.PrefInterval, i)
	}

	// Storage: move the birthdate to the new backend.
	current := app.Preferences.StringWithFallback(config.PrefStoreBackend, config.DefaultStoreBackend)
	if v.Backend != current {
		if next, err := store.NewBackend(v.Backend, app.Preferences); err == nil {
			app.Store.Switch(next, config.StoreKeyBirth)
			app.Preferences.SetString(config.PrefStoreBackend, v.Backend)
		} else {
			slog.Error(err.Error(), config.LogKeyComponent, config.CompUISet, config.LogKeyBackend, v.Backend)
		}
	}

	var err error
	if v.DatasetFile != app.Preferences.String(config.PrefDatasetFile) {
		if err = app.loadDatasetFile(v.DatasetFile); err == nil {
			app.Preferences.SetString(config.PrefDatasetFile, v.DatasetFile)
		}
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	return err
}
