package ui

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/life-grid/internal/config"
	"github.com/tartampluch/life-grid/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n initializes the translation bundle and detects available languages.
func (app *LifeGridApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	app.SupportedLanguages = detectedLangs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *LifeGridApp) UpdateLocalizer() {
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg is a helper to translate a key safely. It returns the key itself
// when no translation exists.
func (app *LifeGridApp) GetMsg(key string) string {
	return app.localize(&i18n.LocalizeConfig{MessageID: key}, key)
}

// GetMsgData translates a templated key. fallback is returned on failure.
func (app *LifeGridApp) GetMsgData(key string, data map[string]any, fallback string) string {
	return app.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data}, fallback)
}

// GetPlural translates a key exposing {{.Count}} with the plural form of count.
func (app *LifeGridApp) GetPlural(key string, count int, fallback string) string {
	return app.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: map[string]any{"Count": count},
		PluralCount:  count,
	}, fallback)
}

func (app *LifeGridApp) localize(cfg *i18n.LocalizeConfig, fallback string) string {
	if app.Localizer == nil {
		return fallback
	}
	msg, err := app.Localizer.Localize(cfg)
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, cfg.MessageID,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}

// modeKeys maps each view mode to its translation keys.
var modeKeys = map[engine.ViewMode]struct {
	label, lived, ahead, footer, unit string
}{
	engine.ModeYears:  {config.TKeyModeYears, config.TKeyLivedYears, config.TKeyAheadYears, config.TKeyFooterYears, config.ModeYears},
	engine.ModeMonths: {config.TKeyModeMonths, config.TKeyLivedMonths, config.TKeyAheadMonths, config.TKeyFooterMonths, config.ModeMonths},
	engine.ModeWeeks:  {config.TKeyModeWeeks, config.TKeyLivedWeeks, config.TKeyAheadWeeks, config.TKeyFooterWeeks, config.ModeWeeks},
}

// datasetKeys maps each dataset to its label and hint keys.
var datasetKeys = map[engine.DatasetID]struct{ label, hint string }{
	engine.DatasetDeaths:        {config.TKeyDatasetDeaths, config.TKeyHintDeaths},
	engine.DatasetEntrepreneurs: {config.TKeyDatasetEntre, config.TKeyHintEntre},
	engine.DatasetCustom:        {config.TKeyDatasetCustom, config.TKeyHintCustom},
}

// SummaryText renders "You've lived N units with M units ahead".
// The remaining-time clause is dropped once the ceiling is reached.
func (app *LifeGridApp) SummaryText(s engine.Summary) string {
	keys := modeKeys[s.Mode]
	text := app.GetPlural(keys.lived, s.Lived, fmt.Sprintf(config.FallbackLived, s.Lived, keys.unit))
	if s.ShowAhead {
		text += " " + app.GetPlural(keys.ahead, s.Ahead, fmt.Sprintf(config.FallbackAhead, s.Ahead, keys.unit))
	}
	return text
}

// TooltipTitle renders the "Name - (Age N)" heading of an annotation payload.
func (app *LifeGridApp) TooltipTitle(e engine.AnnotationEntry) string {
	return app.GetMsgData(config.TKeyTooltipTitle,
		map[string]any{"Name": e.Name, "Age": e.Age},
		fmt.Sprintf(config.FallbackTooltipTitle, e.Name, e.Age))
}

// EventSummary renders the SUMMARY of an exported milestone.
func (app *LifeGridApp) EventSummary(e engine.AnnotationEntry) string {
	return app.GetMsgData(config.TKeyEvtSummary,
		map[string]any{"Name": e.Name, "Age": e.Age},
		fmt.Sprintf(config.FallbackEventSummary, e.Name, e.Age))
}

// DatasetLabel returns the display name of a dataset. Unknown ids fall back
// to the dataset title.
func (app *LifeGridApp) DatasetLabel(id engine.DatasetID) string {
	if k, ok := datasetKeys[id]; ok {
		return app.GetMsg(k.label)
	}
	if d, ok := app.Catalog.Dataset(id); ok {
		return d.Title
	}
	return string(id)
}

// ErrorText translates a session error for display.
func (app *LifeGridApp) ErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, engine.ErrFutureDate):
		return app.GetMsg(config.TKeyErrFutureDate)
	default:
		return app.GetMsg(config.TKeyErrInvalidDate)
	}
}
