package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Life Grid"
	AppID          = "com.github.tartampluch.life-grid"
	KeyringService = "com.github.tartampluch.life-grid"
	LogFileName    = "app.log"
	IconFile       = "Icon.svg"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion         = "version"
	FlagDebug           = "debug"
	FlagBirthdate       = "birthdate"
	FlagMode            = "mode"
	FlagDatasetFile     = "dataset-file"
	FlagDescVersion     = "Show application version and exit"
	FlagDescDebug       = "Enable debug logging to stdout"
	FlagDescBirthdate   = "Birthdate to display (YYYY-MM-DD), overrides the stored one"
	FlagDescMode        = "Initial view mode: years, months or weeks"
	FlagDescDatasetFile = "YAML file with a custom annotation dataset"
	MsgVersionOutput    = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Life Grid Extents
// -----------------------------------------------------------------------------

// The grid assumes a 90-year lifespan. Every extent below derives from it.
const (
	LifespanYears = 90
	MonthsPerYear = 12
	WeeksPerYear  = 52
	DaysPerWeek   = 7

	MaxYears  = LifespanYears                 // 90
	MaxMonths = LifespanYears * MonthsPerYear // 1080
	MaxWeeks  = LifespanYears * WeeksPerYear  // 4680

	YearsPerRow  = 10
	MonthsPerRow = 36
	WeeksPerRow  = WeeksPerYear

	// Month counting steps back from day 30 when the reference falls after
	// February 27th.
	LateFebruaryDay   = 27
	FebruaryAnchorDay = 30

	// AgeLabelEvery controls how often an age label is printed next to a
	// weeks row when an annotation overlay is active.
	AgeLabelEvery = 5
)

// -----------------------------------------------------------------------------
// View Modes & Datasets
// -----------------------------------------------------------------------------

const (
	ModeYears  = "years"
	ModeMonths = "months"
	ModeWeeks  = "weeks"

	DatasetDeaths        = "deaths"
	DatasetEntrepreneurs = "entrepreneurs"
	DatasetCustom        = "custom"

	DefaultMode    = ModeWeeks
	DefaultDataset = DatasetDeaths
	DefaultOverlay = true
)

// -----------------------------------------------------------------------------
// Storage
// -----------------------------------------------------------------------------

const (
	// StoreNamespace prefixes every key written to the key-value store.
	StoreNamespace = "lifegrid"
	StoreSeparator = ":"
	StoreKeyBirth  = "birthdate"

	StoreBackendPreferences = "preferences"
	StoreBackendKeyring     = "keyring"
	DefaultStoreBackend     = StoreBackendPreferences
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 980
	MainWindowHeight    = 760
	SettingsWindowWidth = 520

	// Preference Keys
	PrefLanguage     = "language"
	PrefViewMode     = "view_mode"
	PrefDataset      = "dataset"
	PrefOverlay      = "overlay_enabled"
	PrefStoreBackend = "store_backend"
	PrefInterval     = "refresh_interval_min"
	PrefDatasetFile  = "dataset_file"
	PrefLastRun      = "last_run_version"

	DefaultRefreshMin = 60
	DisabledInterval  = 0
	DefaultLanguage   = "en"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// Cell sizes in device independent pixels, per view mode.
const (
	CellSizeYears  = 44
	CellSizeMonths = 16
	CellSizeWeeks  = 11
	CellGapYears   = 6
	CellGapSmall   = 2
	AgeLabelWidth  = 28
)

// Palette shared by the Fyne grid and the SVG export.
const (
	ColorLived      = "#C026D3" // fuchsia-600
	ColorAhead      = "#1F2937" // gray-800
	ColorBorder     = "#374151" // gray-700
	ColorAnnotation = "#FACC15" // yellow-400
	ColorLabel      = "#9CA3AF" // gray-400
	ColorBackground = "#111827" // gray-900
)

// -----------------------------------------------------------------------------
// UI Datasets Window Constants
// -----------------------------------------------------------------------------

const (
	DatasetsWinWidth  = 720
	DatasetsWinHeight = 420

	// Table Column IDs
	ColIDName = 0
	ColIDAge  = 1
	ColIDWeek = 2
	ColIDText = 3

	// Table Layout
	ColWidthName = 180
	ColWidthAge  = 60
	ColWidthWeek = 90
	ColWidthText = 380

	TablePlaceholder = "Cell Content"
	FormatWeekIndex  = "%d + %dw"
	LogMsgOpenWin    = "Opening datasets window"
	LogMsgSorted     = "Dataset entries sorted"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinDatasets   = "win_datasets_title"
	TKeyWinSettings   = "win_settings_title"
	TKeyMenuShow      = "menu_show"
	TKeyMenuSettings  = "menu_settings"
	TKeyMenuDatasets  = "menu_datasets"
	TKeyTrayNoBirth   = "tray_no_birthdate"
	TKeyLblBirthdate  = "lbl_birthdate"
	TKeyPlaceholder   = "placeholder_date"
	TKeyBtnClear      = "btn_clear"
	TKeyBtnImport     = "btn_import_vcard"
	TKeyBtnExportSVG  = "btn_export_svg"
	TKeyBtnExportICS  = "btn_export_ics"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyModeYears     = "mode_years"
	TKeyModeMonths    = "mode_months"
	TKeyModeWeeks     = "mode_weeks"
	TKeyDatasetDeaths = "dataset_deaths"
	TKeyDatasetEntre  = "dataset_entrepreneurs"
	TKeyDatasetCustom = "dataset_custom"
	TKeyLblOverlay    = "lbl_overlay"

	// Validation Errors (UI)
	TKeyErrInvalidDate = "err_invalid_date"
	TKeyErrFutureDate  = "err_future_date"
	TKeyErrNoBirthCard = "err_no_birthdate_card"
	TKeyErrExport      = "err_export"

	// Summary sentence (plural aware, requires Count)
	TKeyLivedYears  = "summary_lived_years"
	TKeyLivedMonths = "summary_lived_months"
	TKeyLivedWeeks  = "summary_lived_weeks"
	TKeyAheadYears  = "summary_ahead_years"
	TKeyAheadMonths = "summary_ahead_months"
	TKeyAheadWeeks  = "summary_ahead_weeks"

	// Legend & Footer
	TKeyLegendLived      = "legend_lived"
	TKeyLegendAhead      = "legend_ahead"
	TKeyLegendAnnotation = "legend_annotation"
	TKeyFooterYears      = "footer_unit_years"
	TKeyFooterMonths     = "footer_unit_months"
	TKeyFooterWeeks      = "footer_unit_weeks"
	TKeyHintDeaths       = "hint_deaths"
	TKeyHintEntre        = "hint_entrepreneurs"
	TKeyHintCustom       = "hint_custom"
	TKeyAxisWeek         = "lbl_axis_week"
	TKeyAxisAge          = "lbl_axis_age"
	TKeyTooltipTitle     = "tooltip_title" // Requires Name, Age
	TKeyCellYear         = "cell_year"     // Requires Index
	TKeyCellUnit         = "cell_unit"     // Requires Index

	// Column Headers
	TKeyColName = "col_name"
	TKeyColAge  = "col_age"
	TKeyColWeek = "col_week"
	TKeyColText = "col_text"

	// Settings
	TKeyLblLanguage     = "lbl_language"
	TKeyHelpLanguage    = "help_language"
	TKeyLblStore        = "lbl_store_backend"
	TKeyHelpStore       = "help_store_backend"
	TKeyStorePrefs      = "store_preferences"
	TKeyStoreKeyring    = "store_keyring"
	TKeyLblRefresh      = "lbl_refresh_interval"
	TKeyLblMinutes      = "lbl_minutes_suffix"
	TKeyHelpInterval    = "help_interval"
	TKeyLblGeneral      = "lbl_general"
	TKeyLblDatasetFile  = "lbl_dataset_file"
	TKeyHelpDatasetFile = "help_dataset_file"
	TKeyBtnBrowse       = "btn_browse"
	TKeyErrDatasetFile  = "err_dataset_file"
	TKeyLblFooter       = "lbl_footer"
	TKeyEvtSummary      = "event_summary" // Requires Name, Age
	TKeyNotifExported   = "notif_exported"
)

// -----------------------------------------------------------------------------
// Data Formats & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for a birthdate (user input and vCard BDAY).
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// UID Generation
	UIDSalt         = "life-grid-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%d|%s"
	FormatUID       = "%s@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtYAML  = ".yaml"
	ExtYML   = ".yml"
	ExtSVG   = ".svg"
	ExtICS   = ".ics"

	DefaultSVGName = "life-grid.svg"
	DefaultICSName = "life-grid.ics"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Life Grid//Export//EN"
	ICalCalName = "Life Grid"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "lifegrid"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropXColor      = "X-LIFEGRID-COLOR"

	VCardBDAY = "BDAY"
)

// -----------------------------------------------------------------------------
// SVG Export Layout
// -----------------------------------------------------------------------------

const (
	SVGMargin        = 24
	SVGFontFamily    = "Arial, sans-serif"
	SVGFontSize      = 9
	SVGRingWidth     = 1
	SVGCornerRadius  = 2
	SVGLabelBaseline = 3
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidDate      = "invalid birthdate"
	ErrFutureDate       = "birthdate is in the future"
	ErrUnknownViewMode  = "unknown view mode"
	ErrInvalidDataset   = "invalid annotation dataset"
	ErrDatasetDecode    = "failed to decode annotation dataset"
	ErrUnknownDataset   = "unknown annotation dataset"
	ErrNoBirthDate      = "no birthdate with a year found"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrSVGWrite         = "failed to write SVG document"
	ErrNothingToExport  = "no annotation to export"
	ErrStoreUnavailable = "key-value store unavailable"
	ErrUnknownBackend   = "unknown store backend"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrDatasetFile      = "failed to load custom dataset file"
	ErrExportFailed     = "export failed"
	ErrImportFailed     = "vCard import failed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackTrayLabel    = "Life Grid"
	FallbackEventSummary = "Same age as %s (%d)"
	FallbackTooltipTitle = "%s - (Age %d)"
	FallbackLived        = "You've lived %d %s"
	FallbackAhead        = "with %d %s ahead"

	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgAppStarting   = "Starting application"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgWorkerStart   = "Refresh worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgUpdateRefresh = "Updating refresh interval"
	MsgBirthApplied  = "Birthdate applied"
	MsgBirthRejected = "Birthdate rejected"
	MsgBirthCleared  = "Birthdate cleared"
	MsgModeChanged   = "View mode changed"
	MsgDatasetChosen = "Annotation dataset selected"
	MsgOverlayToggle = "Annotation overlay toggled"
	MsgGridBuilt     = "Grid built"
	MsgDatasetLoaded = "Annotation dataset loaded"
	MsgIndexCollide  = "Annotation index shared by several entries, first one wins"
	MsgStoreMiss     = "Store key not found"
	MsgStoreFailure  = "Store operation failed, ignoring"
	MsgStoreSwitch   = "Store backend switched"
	MsgSessionLoad   = "Restoring stored birthdate"
	MsgCatalogSwap   = "Dataset catalog replaced"
	MsgSettingsSaved = "Saving preferences"
	MsgWindowFocus   = "Window already open, requesting focus"
	MsgWindowOpen    = "Opening window"
	MsgRefresh       = "Refreshing elapsed time"
	MsgExported      = "Export written"
	MsgImported      = "Birthdate imported from vCard"
	MsgSkippedDate   = "Skipping invalid date format"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyMode      = "mode"
	LogKeyDataset   = "dataset"
	LogKeyEnabled   = "enabled"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyBackend   = "backend"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyIndex     = "index"
	LogKeyName      = "name"
	LogKeyRows      = "rows"
	LogKeyFilled    = "filled"
	LogKeyAnnotated = "annotated"
	LogKeyYears     = "years"
	LogKeyMonths    = "months"
	LogKeyWeeks     = "weeks"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyFormat    = "format"

	// Startup Info Keys
	LogKeyBuild     = "build"
	LogKeyApp       = "app"
	LogKeyVersion   = "version"
	LogKeyCommit    = "commit"
	LogKeyBuildDate = "build_date"
	LogKeyGoVer     = "go_version"
	LogKeyEnv       = "env"
	LogKeyOS        = "os"
	LogKeyArch      = "arch"
	LogKeyPID       = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompSession = "session"
	CompStore   = "store"
	CompExport  = "export"
	CompWorker  = "worker"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
