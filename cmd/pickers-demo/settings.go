package main

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-pickers/internal/config"
	"github.com/tartampluch/go-pickers/internal/l10n"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval
// during save.
type settingsWidgets struct {
	langSelect *widget.Select
	modeSelect *widget.Select
	urlEntry   *widget.Entry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
	pathEntry  *widget.Entry
}

// ShowSettingsWindow displays the configuration dialog allowing users to
// manage the language and the agenda source.
func (p *PickersApp) ShowSettingsWindow() {
	if p.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		p.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := p.App.NewWindow(l10n.T(config.TKeySettingsTitle))
	p.settingsWindow = w

	sw := &settingsWidgets{}

	// refreshLayout triggers a window resize based on content visibility.
	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// --- 1. Language ---
	sw.langSelect = widget.NewSelect(l10n.SupportedLanguages(), nil)
	sw.langSelect.SetSelected(p.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	itemLang := widget.NewFormItem(l10n.T(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = l10n.T(config.TKeyHelpLanguage)
	langForm := widget.NewForm(itemLang)

	// --- 2. Source Section ---
	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(p.Preferences.String(config.PrefFeedURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(p.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	// Attempt to pre-fill password from secure storage
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(p.Preferences.String(config.PrefLocalPath))

	sourceCard := p.buildSourceCard(w, sw, onLayoutChange)

	// --- Actions ---
	btnSave := widget.NewButtonWithIcon(l10n.T(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		p.saveSettings(sw, w)
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(l10n.T(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerLabel := widget.NewLabel(l10n.TData(config.TKeyLblFooter, map[string]interface{}{
		"Version": config.Version,
	}))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		widget.NewCard("", "", langForm),
		sourceCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { p.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// buildSourceCard constructs the source selection UI.
func (p *PickersApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(l10n.T(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
			}
		}, w)
		// Use file extension constants from config
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtICS, config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	sw.modeSelect = widget.NewSelect([]string{
		l10n.T(config.TKeyModeWeb),
		l10n.T(config.TKeyModeLocal),
	}, nil)

	// Web Form
	itemURL := widget.NewFormItem(l10n.T(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = l10n.T(config.TKeyHelpURL)

	itemUser := widget.NewFormItem(l10n.T(config.TKeyLblUser), sw.userEntry)
	itemPass := widget.NewFormItem(l10n.T(config.TKeyLblPass), sw.passEntry)

	webForm := widget.NewForm(itemURL, itemUser, itemPass)

	// Local Form
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	// Dynamic visibility based on mode
	updateVis := func(mode string) {
		if mode == l10n.T(config.TKeyModeLocal) {
			webForm.Hide()
			localForm.Show()
		} else {
			webForm.Show()
			localForm.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	sw.modeSelect.OnChanged = updateVis

	// Set initial state
	if p.Preferences.String(config.PrefSourceMode) == config.SourceModeLocal {
		sw.modeSelect.SetSelected(l10n.T(config.TKeyModeLocal))
	} else {
		sw.modeSelect.SetSelected(l10n.T(config.TKeyModeWeb))
	}

	// Apply initial visibility
	if sw.modeSelect.Selected == l10n.T(config.TKeyModeLocal) {
		webForm.Hide()
		localForm.Show()
	} else {
		webForm.Show()
		localForm.Hide()
	}

	return widget.NewCard(l10n.T(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// saveSettings persists the data and triggers a marker reload.
func (p *PickersApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	// Helper to map UI strings back to config constants
	modeMap := map[string]string{
		l10n.T(config.TKeyModeWeb):   config.SourceModeWeb,
		l10n.T(config.TKeyModeLocal): config.SourceModeLocal,
	}

	p.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	p.Preferences.SetString(config.PrefSourceMode, modeMap[sw.modeSelect.Selected])
	p.Preferences.SetString(config.PrefFeedURL, sw.urlEntry.Text)
	p.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	p.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	// Save password to Keyring only if provided
	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error("Failed to save credentials to keyring", config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	// Trigger system-wide updates
	l10n.SetLanguage(sw.langSelect.Selected)
	p.refreshTexts()
	go p.ReloadMarkers()

	w.Close()
}
