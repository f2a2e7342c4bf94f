package ui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/engine"
	"github.com/zalando/go-keyring"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockTray implements minimal system tray functionality for headless testing.
type MockTray struct {
	Menu *fyne.Menu
}

func (m *MockTray) SetSystemTrayMenu(menu *fyne.Menu) {
	m.Menu = menu
}

func (m *MockTray) SetSystemTrayIcon(icon fyne.Resource) {}
func (m *MockTray) SetSystemTrayWindow(w fyne.Window)    {}
func (m *MockTray) Run()                                 {}
func (m *MockTray) Quit()                                {}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

var refDate = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// birthKey is the preferences key the default store writes the birthdate to.
const birthKey = config.StoreNamespace + config.StoreSeparator + config.StoreKeyBirth

// newTestApp builds a headless app with mocked dependencies, not yet started.
func newTestApp(t *testing.T) (*LifeGridApp, *MockTray) {
	a := test.NewApp()
	keyring.MockInit()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewLifeGridApp(a, ctx, nil)
	mockTray := &MockTray{}
	app.Tray = mockTray
	app.Clock = MockClock{CurrentTime: refDate}
	return app, mockTray
}

// setupTestApp returns a started app, as Run would leave it minus the event loop.
func setupTestApp(t *testing.T) (*LifeGridApp, *MockTray) {
	app, mockTray := newTestApp(t)
	app.Start()
	return app, mockTray
}

const customDataset = `
title: Family
entries:
  - name: Grandma
    years: 30
    weeks: 4
    text: Grandma opened her bakery
`

func writeDataset(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "family.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))
	return path
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _ := setupTestApp(t)

	// Case 1: English (Default)
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()
	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))

	// Case 2: French
	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyMenuSettings))
}

func TestLocalization_MissingKey(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.Equal(t, "no_such_key", app.GetMsg("no_such_key"))
	assert.Equal(t, "fallback", app.GetMsgData("no_such_key", nil, "fallback"))
}

func TestLocalization_SummaryText(t *testing.T) {
	app, _ := setupTestApp(t)

	tests := []struct {
		name    string
		summary engine.Summary
		want    string
	}{
		{
			name:    "Weeks",
			summary: engine.Summary{Mode: engine.ModeWeeks, Lived: 1849, Ahead: 2831, Total: 4680, ShowAhead: true},
			want:    "You've lived 1849 weeks with 2831 weeks ahead",
		},
		{
			name:    "Singular",
			summary: engine.Summary{Mode: engine.ModeYears, Lived: 1, Ahead: 89, Total: 90, ShowAhead: true},
			want:    "You've lived 1 year with 89 years ahead",
		},
		{
			name:    "Ceiling reached",
			summary: engine.Summary{Mode: engine.ModeMonths, Lived: 1080, Total: 1080},
			want:    "You've lived 1080 months",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.SummaryText(tt.summary))
		})
	}
}

func TestLocalization_Payloads(t *testing.T) {
	app, _ := setupTestApp(t)
	kurt, ok := engine.Builtin().FindByIndex(engine.DatasetDeaths, 1421)
	require.True(t, ok)

	assert.Equal(t, "Kurt Cobain - (Age 27)", app.TooltipTitle(kurt))
	assert.Equal(t, "Same age as Kurt Cobain (27)", app.EventSummary(kurt))
	assert.Equal(t, "Famous Deaths", app.DatasetLabel(engine.DatasetDeaths))
	assert.Equal(t, "Birthdate cannot be in the future.", app.ErrorText(engine.ErrFutureDate))
	assert.Equal(t, "Please enter a valid date.", app.ErrorText(engine.ErrInvalidDate))
	assert.Empty(t, app.ErrorText(nil))
}

// -----------------------------------------------------------------------------
// Startup & Preferences Tests
// -----------------------------------------------------------------------------

func TestStart_Defaults(t *testing.T) {
	app, _ := setupTestApp(t)

	st := app.Session.State()
	assert.False(t, st.HasBirthDate())
	assert.Equal(t, engine.ModeWeeks, st.Mode)
	assert.Equal(t, engine.DatasetDeaths, st.Dataset)
	assert.True(t, st.Overlay)
	assert.Equal(t, config.Version, app.Preferences.String(config.PrefLastRun))
}

func TestStart_RestoresSelection(t *testing.T) {
	app, _ := newTestApp(t)
	app.Preferences.SetString(config.PrefViewMode, config.ModeMonths)
	app.Preferences.SetString(config.PrefDataset, config.DatasetEntrepreneurs)
	app.Preferences.SetBool(config.PrefOverlay, false)
	app.Preferences.SetString(birthKey, "1990-01-01")

	app.Start()

	st := app.Session.State()
	assert.Equal(t, engine.ModeMonths, st.Mode)
	assert.Equal(t, engine.DatasetEntrepreneurs, st.Dataset)
	assert.False(t, st.Overlay)
	require.NotNil(t, st.Elapsed)
	assert.Equal(t, 425, st.Elapsed.Months)
}

func TestStart_CommandLineOverrides(t *testing.T) {
	app, _ := newTestApp(t)
	app.Preferences.SetString(config.PrefViewMode, config.ModeMonths)
	app.InitialBirthDate = "19900101"
	app.InitialMode = engine.ModeYears

	app.Start()

	st := app.Session.State()
	assert.Equal(t, engine.ModeYears, st.Mode)
	require.NotNil(t, st.Elapsed)
	assert.Equal(t, 35, st.Elapsed.Years)
	assert.Equal(t, "1990-01-01", app.Store.Get(config.StoreKeyBirth, ""))
}

func TestStart_UnknownStoreBackend(t *testing.T) {
	app, _ := newTestApp(t)
	app.Preferences.SetString(config.PrefStoreBackend, "floppy")

	app.Start()
	require.NoError(t, app.Session.SetBirthDate("1990-01-01"))
	assert.Equal(t, "1990-01-01", app.Preferences.String(birthKey), "falls back to preferences")
}

func TestStateChange_PersistsSelection(t *testing.T) {
	app, _ := setupTestApp(t)

	require.NoError(t, app.Session.SetViewMode(engine.ModeYears))
	require.NoError(t, app.Session.SelectDataset(engine.DatasetEntrepreneurs))
	app.Session.SetOverlay(false)

	assert.Equal(t, config.ModeYears, app.Preferences.String(config.PrefViewMode))
	assert.Equal(t, config.DatasetEntrepreneurs, app.Preferences.String(config.PrefDataset))
	assert.False(t, app.Preferences.Bool(config.PrefOverlay))
}

func TestConfiguration_WorkerSignal(t *testing.T) {
	app, _ := setupTestApp(t)
	app.watchPreferences()

	signalReceived := make(chan bool)
	go func() {
		select {
		case key := <-app.configChan:
			signalReceived <- key == config.PrefInterval
		case <-time.After(500 * time.Millisecond):
			signalReceived <- false
		}
	}()

	app.Preferences.SetInt(config.PrefInterval, 120)

	assert.True(t, <-signalReceived, "Changing interval should notify background worker")
}

func TestRefreshInterval(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.Equal(t, time.Duration(config.DefaultRefreshMin)*time.Minute, app.refreshInterval())

	app.Preferences.SetInt(config.PrefInterval, 0)
	assert.Zero(t, app.refreshInterval())

	app.Preferences.SetInt(config.PrefInterval, -5)
	assert.Zero(t, app.refreshInterval())
}

func TestBackgroundWorker_StopsOnCancel(t *testing.T) {
	app, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	app.Ctx = ctx
	app.Start()

	done := make(chan struct{})
	go func() {
		app.backgroundWorker()
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}

// -----------------------------------------------------------------------------
// Tray Tests
// -----------------------------------------------------------------------------

func TestTrayStatusUpdate_Logic(t *testing.T) {
	app, mockTray := setupTestApp(t)
	app.setupTrayMenu()
	require.NotNil(t, mockTray.Menu)

	assert.Equal(t, "No birthdate yet", app.TrayStatusItem.Label)

	require.NoError(t, app.Session.SetBirthDate("1990-01-01"))
	assert.Equal(t, "You've lived 1849 weeks with 2831 weeks ahead", app.TrayStatusItem.Label)

	app.Session.Clear()
	assert.Equal(t, "No birthdate yet", app.TrayStatusItem.Label)
}

func TestRefreshTrayMenu_Language(t *testing.T) {
	app, _ := setupTestApp(t)
	app.setupTrayMenu()

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	app.RefreshTrayMenu()

	assert.Equal(t, "Paramètres...", app.TraySettingsItem.Label)
}

// -----------------------------------------------------------------------------
// Actions Tests
// -----------------------------------------------------------------------------

func TestExportSVG(t *testing.T) {
	app, _ := setupTestApp(t)
	require.NoError(t, app.Session.SetBirthDate("1990-01-01"))

	var buf bytes.Buffer
	require.NoError(t, app.exportSVG(&buf))

	out := buf.String()
	assert.Equal(t, config.MaxWeeks+1, strings.Count(out, "<rect"), "background plus one square per week")
	assert.Contains(t, out, "Kurt Cobain - (Age 27)")
}

func TestExportCalendar(t *testing.T) {
	app, _ := setupTestApp(t)

	var buf bytes.Buffer
	assert.Error(t, app.exportCalendar(&buf), "nothing to date events against")

	require.NoError(t, app.Session.SetBirthDate("1990-01-01"))
	require.NoError(t, app.exportCalendar(&buf))

	out := buf.String()
	assert.Equal(t, 16, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:Same age as Kurt Cobain (27)")
}

func TestImportVCard(t *testing.T) {
	app, _ := setupTestApp(t)

	card := "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Me\r\nBDAY:19900101\r\nEND:VCARD\r\n"
	require.NoError(t, app.importVCard(strings.NewReader(card)))
	assert.Equal(t, "1990-01-01", app.Session.State().BirthDate)

	noBday := "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Nobody\r\nEND:VCARD\r\n"
	assert.ErrorIs(t, app.importVCard(strings.NewReader(noBday)), engine.ErrNoBirthDate)
	assert.Equal(t, "1990-01-01", app.Session.State().BirthDate, "a failed import keeps the birthdate")
}

func TestLoadDatasetFile(t *testing.T) {
	app, _ := setupTestApp(t)

	require.NoError(t, app.loadDatasetFile(""), "no file configured")
	require.NoError(t, app.loadDatasetFile(writeDataset(t, customDataset)))

	d, ok := app.Session.Catalog().Dataset(engine.DatasetCustom)
	require.True(t, ok)
	assert.Equal(t, "Family", d.Title)
	assert.Equal(t, "My Dataset", app.DatasetLabel(engine.DatasetCustom))

	require.NoError(t, app.Session.SelectDataset(engine.DatasetCustom))
	assert.Equal(t, 1, app.Session.State().Annotations.Len())
}

func TestLoadDatasetFile_Errors(t *testing.T) {
	app, _ := setupTestApp(t)

	assert.Error(t, app.loadDatasetFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorIs(t, app.loadDatasetFile(writeDataset(t, "title: Empty\n")), engine.ErrInvalidDataset)

	_, ok := app.Session.Catalog().Dataset(engine.DatasetCustom)
	assert.False(t, ok, "catalog untouched")
}

func TestStart_DatasetFileFlag(t *testing.T) {
	app, _ := newTestApp(t)
	app.Preferences.SetString(config.PrefDatasetFile, filepath.Join(t.TempDir(), "stale.yaml"))
	app.DatasetFile = writeDataset(t, customDataset)

	app.Start()

	_, ok := app.Session.Catalog().Dataset(engine.DatasetCustom)
	assert.True(t, ok, "the flag wins over the preference")
}

// -----------------------------------------------------------------------------
// Settings Tests
// -----------------------------------------------------------------------------

func TestApplySettings(t *testing.T) {
	app, _ := setupTestApp(t)
	app.setupTrayMenu()

	err := app.applySettings(settingsValues{Language: "fr", Backend: config.StoreBackendPreferences, Interval: "15"})
	require.NoError(t, err)
	assert.Equal(t, "fr", app.Preferences.String(config.PrefLanguage))
	assert.Equal(t, 15, app.Preferences.Int(config.PrefInterval))
	assert.Equal(t, "Paramètres...", app.TraySettingsItem.Label)

	require.NoError(t, app.applySettings(settingsValues{Language: "fr", Backend: config.StoreBackendPreferences, Interval: ""}))
	assert.Equal(t, config.DisabledInterval, app.Preferences.Int(config.PrefInterval))
}

func TestApplySettings_SwitchStore(t *testing.T) {
	app, _ := setupTestApp(t)
	require.NoError(t, app.Session.SetBirthDate("1990-01-01"))
	require.Equal(t, "1990-01-01", app.Preferences.String(birthKey))

	require.NoError(t, app.applySettings(settingsValues{Backend: config.StoreBackendKeyring, Interval: "60"}))

	assert.Equal(t, config.StoreBackendKeyring, app.Preferences.String(config.PrefStoreBackend))
	assert.Empty(t, app.Preferences.String(birthKey), "birthdate left the preferences")
	v, err := keyring.Get(config.KeyringService, birthKey)
	require.NoError(t, err)
	assert.Equal(t, "1990-01-01", v)
}

func TestApplySettings_DatasetFile(t *testing.T) {
	app, _ := setupTestApp(t)

	bad := writeDataset(t, "entries: [\n")
	err := app.applySettings(settingsValues{Backend: config.StoreBackendPreferences, DatasetFile: bad})
	assert.ErrorIs(t, err, engine.ErrInvalidDataset)
	assert.Empty(t, app.Preferences.String(config.PrefDatasetFile), "a broken file is not remembered")

	good := writeDataset(t, customDataset)
	require.NoError(t, app.applySettings(settingsValues{Backend: config.StoreBackendPreferences, DatasetFile: good}))
	assert.Equal(t, good, app.Preferences.String(config.PrefDatasetFile))
}

// -----------------------------------------------------------------------------
// Window Tests
// -----------------------------------------------------------------------------

func TestMainWindow_Render(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()
	require.NotNil(t, app.view)
	v := app.view

	assert.False(t, v.summary.Visible(), "no summary without a birthdate")
	assert.Len(t, v.grid.cells, config.MaxWeeks)
	assert.True(t, v.selectors.Visible())
	assert.Equal(t, widget.HighImportance, v.modeButtons[engine.ModeWeeks].Importance)

	test.Type(v.birthEntry, "1990-01-01")
	assert.Equal(t, "You've lived 1849 weeks with 2831 weeks ahead", v.summary.Text)
	assert.True(t, v.grid.cells[1848].cell.Filled)
	assert.False(t, v.grid.cells[1849].cell.Filled)
	assert.Equal(t, "0", v.grid.labels[0].Text)
	assert.Equal(t, "5", v.grid.labels[5].Text)

	v.modeButtons[engine.ModeYears].OnTapped()
	assert.Equal(t, engine.ModeYears, app.Session.State().Mode)
	assert.Len(t, v.grid.cells, config.MaxYears)
	assert.False(t, v.selectors.Visible())
	assert.False(t, v.axisAge.Visible(), "no overlay outside weeks")
}

func TestMainWindow_Errors(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()
	v := app.view

	test.Type(v.birthEntry, "2099-01-01")
	assert.True(t, v.errorLabel.Visible())
	assert.Equal(t, "Birthdate cannot be in the future.", v.errorLabel.Text)
	assert.Equal(t, "2099-01-01", v.birthEntry.Text, "the input is kept")
	assert.True(t, v.exportICS.Disabled())

	v.birthEntry.SetText("")
	app.Session.Clear()
	assert.False(t, v.errorLabel.Visible())
}

func TestMainWindow_ShowCell(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()
	v := app.view

	kurt, ok := engine.Builtin().FindByIndex(engine.DatasetDeaths, 1421)
	require.True(t, ok)

	v.showCell(engine.Cell{Index: 1421, Annotation: &kurt})
	assert.Equal(t, "Kurt Cobain - (Age 27)", v.detailTitle.Text)
	assert.Equal(t, kurt.Text, v.detailText.Text)
	assert.True(t, v.detailBadge.Visible())

	v.showCell(engine.Cell{Index: 9})
	assert.Equal(t, "Square 10", v.detailTitle.Text)
	assert.False(t, v.detailBadge.Visible())
}

func TestMainWindow_Singleton(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()
	first := app.Window
	app.ShowMainWindow()
	assert.Same(t, first, app.Window)
}

func TestSecondaryWindows_Singleton(t *testing.T) {
	app, _ := setupTestApp(t)

	app.ShowDatasetsWindow()
	require.NotNil(t, app.datasetsWindow)
	first := app.datasetsWindow
	app.ShowDatasetsWindow()
	assert.Same(t, first, app.datasetsWindow)
	first.Close()
	assert.Nil(t, app.datasetsWindow)

	app.ShowSettingsWindow()
	require.NotNil(t, app.settingsWindow)
	app.settingsWindow.Close()
	assert.Nil(t, app.settingsWindow)
}
