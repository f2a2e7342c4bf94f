package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/engine"
	"github.com/tartampluch/life-grid/internal/export"
)

// exportSVG writes the grid currently shown to w.
func (app *LifeGridApp) exportSVG(w io.Writer) error {
	st := app.Session.State()
	opts := export.DefaultSVGOptions(st.Mode)
	opts.Tooltip = func(e engine.AnnotationEntry) string {
		return app.TooltipTitle(e) + "\n" + e.Text
	}
	return export.SVG(w, st.Rows, opts)
}

// exportCalendar writes one event per entry of the selected dataset, dated
// at the week the user reaches the same age.
func (app *LifeGridApp) exportCalendar(w io.Writer) error {
	st := app.Session.State()
	if st.Elapsed == nil {
		return errors.New(config.ErrInvalidDate)
	}

	birth, err := engine.ParseBirthDate(st.BirthDate, app.Clock.Now().Location())
	if err != nil {
		return err
	}

	var entries []engine.AnnotationEntry
	if d, ok := app.Session.Catalog().Dataset(st.Dataset); ok {
		entries = d.Entries()
	}
	return export.Calendar(w, birth, entries, app.Clock, app.EventSummary)
}

// importVCard applies the first birthdate found in a contact card.
func (app *LifeGridApp) importVCard(r io.Reader) error {
	date, err := engine.BirthDateFromVCard(r)
	if err != nil {
		return err
	}
	return app.Session.SetBirthDate(date)
}

// datasetFilePath returns the custom dataset file: the command line wins
// over the preference.
func (app *LifeGridApp) datasetFilePath() string {
	if app.DatasetFile != "" {
		return app.DatasetFile
	}
	return app.Preferences.String(config.PrefDatasetFile)
}

// loadDatasetFile adds the dataset stored at path to the catalog. An empty
// path is a no-op; failures are logged and leave the catalog untouched.
func (app *LifeGridApp) loadDatasetFile(path string) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return app.datasetFileError(path, err)
	}
	defer f.Close()

	return app.loadDataset(path, f)
}

func (app *LifeGridApp) loadDataset(name string, r io.Reader) error {
	d, err := engine.LoadDataset(engine.DatasetCustom, r)
	if err != nil {
		return app.datasetFileError(name, err)
	}

	catalog, err := app.Catalog.With(d)
	if err != nil {
		return app.datasetFileError(name, err)
	}

	app.Catalog = catalog
	if app.Session != nil {
		app.Session.SetCatalog(catalog)
	}
	slog.Info(config.MsgDatasetLoaded,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyFile, name,
		config.LogKeyCount, d.Len())
	return nil
}

func (app *LifeGridApp) datasetFileError(path string, err error) error {
	err = fmt.Errorf("%s: %w", config.ErrDatasetFile, err)
	slog.Error(err.Error(),
		config.LogKeyComponent, config.CompUI,
		config.LogKeyFile, path)
	return err
}

// --- Dialogs ---

func (app *LifeGridApp) showExportSVGDialog() {
	app.showSaveDialog(config.DefaultSVGName, config.ExtSVG, app.exportSVG)
}

func (app *LifeGridApp) showExportCalendarDialog() {
	app.showSaveDialog(config.DefaultICSName, config.ExtICS, app.exportCalendar)
}

// showSaveDialog asks for a destination and streams write into it.
func (app *LifeGridApp) showSaveDialog(name, ext string, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()

		if err := write(wc); err != nil {
			slog.Error(config.ErrExportFailed,
				config.LogKeyComponent, config.CompExport,
				config.LogKeyFile, wc.URI().Path(),
				config.LogKeyError, err)
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrExport)), app.Window)
			return
		}

		slog.Info(config.MsgExported,
			config.LogKeyComponent, config.CompExport,
			config.LogKeyFormat, ext,
			config.LogKeyFile, wc.URI().Path())
		app.App.SendNotification(fyne.NewNotification(config.AppName,
			app.GetMsgData(config.TKeyNotifExported, map[string]any{"File": wc.URI().Name()}, wc.URI().Name())))
	}, app.Window)

	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

func (app *LifeGridApp) showImportDialog() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()

		if err := app.importVCard(rc); err != nil {
			slog.Warn(config.ErrImportFailed,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyFile, rc.URI().Path(),
				config.LogKeyError, err)
			if errors.Is(err, engine.ErrNoBirthDate) {
				dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrNoBirthCard)), app.Window)
			}
		}
	}, app.Window)

	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// showDatasetFileDialog lets the user pick a YAML dataset; the chosen path
// is passed to onPicked.
func (app *LifeGridApp) showDatasetFileDialog(parent fyne.Window, onPicked func(string)) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		rc.Close()
		onPicked(rc.URI().Path())
	}, parent)

	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtYAML, config.ExtYML}))
	d.Show()
}
