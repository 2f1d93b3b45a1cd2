// Package l10n holds the shared translation bundle for the picker widgets
// and the demo application. Unlike an app-owned localizer, the bundle is
// package-level so that library widgets can resolve labels without carrying
// a reference to the application.
package l10n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-pickers/calendar"
	"github.com/tartampluch/go-pickers/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	setupOnce sync.Once

	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	supported []string
)

// setup initializes the translation bundle and detects available languages.
func setup() {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detected []string

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

		detected = append(detected, langCode)

		if _, err := b.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
		} else {
			slog.Debug(config.MsgLocaleLoaded,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyLang, langCode,
				config.LogKeyFile, name,
			)
		}
	}

	mu.Lock()
	bundle = b
	supported = detected
	localizer = i18n.NewLocalizer(b, config.DefaultLanguage)
	mu.Unlock()
}

// SupportedLanguages lists the language codes detected in the embedded
// locale files.
func SupportedLanguages() []string {
	setupOnce.Do(setup)
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), supported...)
}

// SetLanguage switches the active localizer. An empty string resets to the
// default language.
func SetLanguage(lang string) {
	setupOnce.Do(setup)
	if lang == "" {
		lang = config.DefaultLanguage
	}
	mu.Lock()
	defer mu.Unlock()
	if bundle == nil {
		return
	}
	localizer = i18n.NewLocalizer(bundle, lang)
}

// T translates a key, returning the key itself when no translation exists so
// the UI stays usable with incomplete locales.
func T(key string) string {
	setupOnce.Do(setup)
	mu.RLock()
	loc := localizer
	mu.RUnlock()

	if loc == nil {
		slog.Debug(config.ErrLocNotInit, config.LogKeyComponent, config.CompI18n)
		return key
	}
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// TData translates a key with template data.
func TData(key string, data map[string]interface{}) string {
	setupOnce.Do(setup)
	mu.RLock()
	loc := localizer
	mu.RUnlock()

	if loc == nil {
		return key
	}
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		return key
	}
	return msg
}

// MonthLabel returns the localized name of a month (1-12), falling back to
// the English month name when the key is missing.
func MonthLabel(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	key := fmt.Sprintf(config.FormatMonthKey, month)
	if msg := T(key); msg != key {
		return msg
	}
	return time.Month(month).String()
}

// WeekdayLabel returns the localized short weekday label for a grid column
// (0 = Sunday), falling back to the constant header row of the grid model.
func WeekdayLabel(column int) string {
	if column < 0 || column >= calendar.Columns {
		return ""
	}
	key := fmt.Sprintf(config.FormatWeekdayKey, column)
	if msg := T(key); msg != key {
		return msg
	}
	return calendar.WeekdayLabels()[column]
}
