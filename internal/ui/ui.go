package ui

import (
	"context"
	_ "embed"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/engine"
	"github.com/tartampluch/life-grid/internal/store"
)

//go:embed Icon.svg
var appIconData []byte

// LifeGridApp encapsulates the UI state, preferences, and background logic.
type LifeGridApp struct {
	App         fyne.App
	Window      fyne.Window // Main grid window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Clock   engine.Clock // Injected clock for testability
	Store   *store.Store
	Catalog *engine.Catalog
	Session *engine.Session

	// Startup overrides coming from the command line.
	InitialBirthDate string
	InitialMode      engine.ViewMode
	DatasetFile      string

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayShowItem     *fyne.MenuItem
	TrayDatasetsItem *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	view           *mainView
	settingsWindow fyne.Window
	datasetsWindow fyne.Window
}

// NewLifeGridApp constructs the application and wires dependencies.
// catalog may be nil, in which case the builtin datasets are used.
func NewLifeGridApp(a fyne.App, ctx context.Context, catalog *engine.Catalog) *LifeGridApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))
	if catalog == nil {
		catalog = engine.Builtin()
	}

	return &LifeGridApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Clock:              engine.RealClock{},
		Catalog:            catalog,
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
}

// Start prepares translations, the store and the session. Run calls it;
// tests call it directly since Run blocks.
func (app *LifeGridApp) Start() {
	app.SetupI18n()
	app.openStore()
	app.loadDatasetFile(app.datasetFilePath())

	app.Session = engine.NewSession(app.Clock, app.Store, app.Catalog)
	app.restoreSelection()
	app.Session.OnChange(app.onStateChange)

	app.Session.Load()
	if app.InitialBirthDate != "" {
		_ = app.Session.SetBirthDate(app.InitialBirthDate)
	}

	if last := app.Preferences.String(config.PrefLastRun); last != config.Version {
		slog.Debug(config.MsgAppStarting,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyOld, last,
			config.LogKeyNew, config.Version)
		app.Preferences.SetString(config.PrefLastRun, config.Version)
	}
}

// Run launches the application services and the main UI loop.
func (app *LifeGridApp) Run() {
	app.Start()
	app.watchPreferences()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.ShowMainWindow()

	go app.backgroundWorker()
	app.App.Run()
}

// openStore selects the persistence backend named in the preferences.
func (app *LifeGridApp) openStore() {
	name := app.Preferences.StringWithFallback(config.PrefStoreBackend, config.DefaultStoreBackend)
	backend, err := store.NewBackend(name, app.Preferences)
	if err != nil {
		slog.Warn(config.MsgStoreFailure,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyBackend, name,
			config.LogKeyError, err)
		backend = store.PreferencesBackend{Prefs: app.Preferences}
	}
	app.Store = store.New(backend)
}

// restoreSelection applies the remembered mode, dataset and overlay, then
// the command line mode if any.
func (app *LifeGridApp) restoreSelection() {
	if mode, err := engine.ParseViewMode(app.Preferences.StringWithFallback(config.PrefViewMode, config.DefaultMode)); err == nil {
		_ = app.Session.SetViewMode(mode)
	}
	ds := engine.DatasetID(app.Preferences.StringWithFallback(config.PrefDataset, config.DefaultDataset))
	if err := app.Session.SelectDataset(ds); err != nil {
		slog.Debug(err.Error(), config.LogKeyComponent, config.CompUI, config.LogKeyDataset, ds)
	}
	app.Session.SetOverlay(app.Preferences.BoolWithFallback(config.PrefOverlay, config.DefaultOverlay))

	if app.InitialMode != "" {
		_ = app.Session.SetViewMode(app.InitialMode)
	}
}

// onStateChange persists the selection and redraws every view.
func (app *LifeGridApp) onStateChange(st engine.State) {
	app.Preferences.SetString(config.PrefViewMode, string(st.Mode))
	app.Preferences.SetString(config.PrefDataset, string(st.Dataset))
	app.Preferences.SetBool(config.PrefOverlay, st.Overlay)

	if app.view != nil {
		app.view.render(st)
	}
	app.updateTrayStatus(st)
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *LifeGridApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *LifeGridApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, app.ShowMainWindow)
	app.TrayShowItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuShow), app.ShowMainWindow)
	app.TrayDatasetsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuDatasets), app.ShowDatasetsWindow)
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow)

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayShowItem,
		app.TrayDatasetsItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
	if app.Session != nil {
		app.updateTrayStatus(app.Session.State())
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *LifeGridApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayShowItem.Label = app.GetMsg(config.TKeyMenuShow)
	app.TrayDatasetsItem.Label = app.GetMsg(config.TKeyMenuDatasets)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	if app.Session != nil {
		app.updateTrayStatus(app.Session.State())
	}
	app.Menu.Refresh()
}

// updateTrayStatus shows the lived sentence as the top menu item.
func (app *LifeGridApp) updateTrayStatus(st engine.State) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	label := app.GetMsg(config.TKeyTrayNoBirth)
	if st.Summary != nil {
		label = app.SummaryText(*st.Summary)
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// refreshInterval reads the refresh period. Zero disables the refresh.
func (app *LifeGridApp) refreshInterval() time.Duration {
	val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
	if val <= config.DisabledInterval {
		return 0
	}
	return time.Duration(val) * time.Minute
}

// backgroundWorker recomputes the elapsed time periodically so the grid
// follows the calendar while the application stays open.
func (app *LifeGridApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	currentDuration := app.refreshInterval()
	ticker := time.NewTicker(time.Hour)
	ticker.Stop()
	if currentDuration > 0 {
		ticker.Reset(currentDuration)
	}
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := app.refreshInterval()
			if newDuration == currentDuration {
				continue
			}
			log.Info(config.MsgUpdateRefresh, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
			currentDuration = newDuration
			ticker.Stop()
			if currentDuration > 0 {
				ticker.Reset(currentDuration)
			}

		case <-ticker.C:
			fyne.Do(app.Session.Refresh)
		}
	}
}
