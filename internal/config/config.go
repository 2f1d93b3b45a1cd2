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

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Pickers/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Go Pickers"
	AppID          = "com.github.tartampluch.go-pickers"
	KeyringService = "com.github.tartampluch.go-pickers"
	LogFileName    = "app.log"
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
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 420
	SettingsWindowWidth = 600

	// Preference Keys
	PrefLanguage   = "language"
	PrefSourceMode = "source_mode"
	PrefLocalPath  = "local_path"
	PrefFeedURL    = "feed_url"
	PrefUsername   = "username"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeySettingsTitle = "win_settings_title"

	// Shared buttons
	TKeyBtnOK     = "btn_ok"
	TKeyBtnCancel = "btn_cancel"
	TKeyBtnSave   = "btn_save"
	TKeyBtnBrowse = "btn_browse"

	// Demo window
	TKeyCardDate     = "card_date"
	TKeyCardColor    = "card_color"
	TKeyBtnPickDate  = "btn_pick_date"
	TKeyBtnPickColor = "btn_pick_color"
	TKeyNoSelection  = "no_selection"
	TKeyLblAgenda    = "lbl_agenda"
	TKeyAgendaEmpty  = "agenda_empty"
	TKeyMenuSettings = "menu_settings"

	// Settings window
	TKeyLblLanguage  = "lbl_language"
	TKeyHelpLanguage = "help_language"
	TKeyLblSource    = "lbl_source"
	TKeyModeWeb      = "mode_web"
	TKeyModeLocal    = "mode_local"
	TKeyLblURL       = "lbl_url"
	TKeyHelpURL      = "help_feed_url"
	TKeyLblUser      = "lbl_user"
	TKeyLblPass      = "lbl_pass"
	TKeyLblFooter    = "lbl_footer"

	// Color picker overlay
	TKeyLblHue   = "lbl_hue"
	TKeyLblRed   = "lbl_red"
	TKeyLblGreen = "lbl_green"
	TKeyLblBlue  = "lbl_blue"
	TKeyLblAlpha = "lbl_alpha"
	TKeyLblHex   = "lbl_hex"
)

// Month and weekday label keys are generated: month_1..month_12 and
// weekday_0..weekday_6 (0 = Sunday, matching the grid column order).
const (
	FormatMonthKey   = "month_%d"
	FormatWeekdayKey = "weekday_%d"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb   = "web"
	SourceModeLocal = "local"
	DefaultLanguage = "en"
	DefaultLeapYear = 2000 // Leap year fallback for dates like --02-29
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal/vCard Fields
	PropSummary = "SUMMARY"
	PropDTStart = "DTSTART"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY and iCal DTSTART fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Display layout for the selected date in the demo window.
	DateFormatDisplay = "2006-01-02"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtICS   = ".ics"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	HeaderUserAgent     = "User-Agent"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty = "configuration error: local path is empty"
	ErrWebURLEmpty    = "configuration error: feed URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrFormatUnknown  = "configuration error: unrecognized feed format"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrICalParse      = "failed to parse iCalendar stream"
	ErrDateParse      = "unable to parse date"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrLocNotInit     = "localizer not initialized"
	ErrSourceLoad     = "agenda source load failed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackName = "Unknown"

	MsgLogWarning = "Warning: %s at %s: %v\n"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgLoadStarted    = "Agenda load started"
	MsgLoadSuccess    = "Agenda load successful"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedEvent   = "Skipping malformed event"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgMarkersUpdate  = "Marker set updated"
	MsgDateSubmitted  = "Date submitted"
	MsgColorSubmitted = "Color submitted"
	MsgSettingsOpen   = "Opening settings window"
	MsgSettingsSaved  = "Saving preferences"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyDate      = "date"
	LogKeyColor     = "color"
	LogKeyTotal     = "total_records"
	LogKeyFound     = "entries_found"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain        = "main"
	CompUI          = "ui"
	CompUISet       = "ui_settings"
	CompAgenda      = "agenda"
	CompFetcher     = "fetcher"
	CompI18n        = "i18n"
	CompDatePicker  = "date_picker"
	CompColorPicker = "color_picker"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
