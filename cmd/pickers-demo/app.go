package main

import (
	"context"
	"image/color"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-pickers/calendar"
	"github.com/tartampluch/go-pickers/colorpicker"
	"github.com/tartampluch/go-pickers/datepicker"
	"github.com/tartampluch/go-pickers/internal/agenda"
	"github.com/tartampluch/go-pickers/internal/config"
	"github.com/tartampluch/go-pickers/internal/l10n"
	"github.com/zalando/go-keyring"
)

// PickersApp encapsulates the demo window, preferences, and the agenda state
// feeding the date picker's day markers.
type PickersApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Ctx         context.Context

	Loader *agenda.Loader
	Clock  agenda.Clock // Injected clock for testability

	settingsWindow fyne.Window

	// Markers State
	markersMut sync.RWMutex
	markers    *agenda.MarkerSet

	datePicker  *datepicker.DatePicker
	colorPicker *colorpicker.ColorPicker
	dateStatus  *widget.Label
	agendaBox   *fyne.Container
}

// NewPickersApp constructs the application and wires dependencies.
func NewPickersApp(a fyne.App, ctx context.Context, fetcher agenda.Fetcher) *PickersApp {
	clock := agenda.RealClock{}
	return &PickersApp{
		App:         a,
		Preferences: a.Preferences(),
		Ctx:         ctx,
		Clock:       clock,
		Loader:      &agenda.Loader{Clock: clock, Fetcher: fetcher},
	}
}

// Run builds the main window and starts the UI loop.
func (p *PickersApp) Run() {
	l10n.SetLanguage(p.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	p.Window = p.App.NewWindow(l10n.T(config.TKeyWinTitle))
	p.Window.SetMainMenu(p.buildMainMenu())
	p.Window.SetContent(p.buildContent())
	p.Window.Resize(fyne.NewSize(config.MainWindowWidth, 0))
	p.Window.SetMaster()

	go p.ReloadMarkers()

	p.Window.Show()
	p.App.Run()
}

func (p *PickersApp) buildMainMenu() *fyne.MainMenu {
	settingsItem := fyne.NewMenuItem(l10n.T(config.TKeyMenuSettings), p.ShowSettingsWindow)
	return fyne.NewMainMenu(fyne.NewMenu(config.AppName, settingsItem))
}

func (p *PickersApp) buildContent() fyne.CanvasObject {
	today := calendar.FromTime(p.Clock.Now())

	p.datePicker = datepicker.New(today)
	p.datePicker.MarkerFunc = p.hasMarker
	p.datePicker.OnSubmit = p.onDatePicked

	p.dateStatus = widget.NewLabel(l10n.T(config.TKeyNoSelection))
	p.agendaBox = container.NewVBox()

	dateCard := widget.NewCard(l10n.T(config.TKeyCardDate), "", container.NewVBox(
		p.datePicker,
		p.dateStatus,
		widget.NewLabelWithStyle(l10n.T(config.TKeyLblAgenda), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		p.agendaBox,
	))

	p.colorPicker = colorpicker.New(color.NRGBA{R: 0x35, G: 0x84, B: 0xe4, A: 0xff})
	colorCard := widget.NewCard(l10n.T(config.TKeyCardColor), "", p.colorPicker)

	return container.NewPadded(container.NewVBox(dateCard, colorCard))
}

// hasMarker answers the date picker's per-day marker query. It is called
// from the render path so it only takes a read lock.
func (p *PickersApp) hasMarker(d calendar.Date) bool {
	p.markersMut.RLock()
	defer p.markersMut.RUnlock()
	return p.markers != nil && p.markers.Has(d)
}

// onDatePicked refreshes the selected-day status and the agenda entry list.
func (p *PickersApp) onDatePicked(d calendar.Date) {
	p.dateStatus.SetText(d.String())

	p.markersMut.RLock()
	var entries []agenda.Entry
	if p.markers != nil {
		entries = p.markers.On(d)
	}
	p.markersMut.RUnlock()

	p.agendaBox.RemoveAll()
	if len(entries) == 0 {
		p.agendaBox.Add(widget.NewLabel(l10n.T(config.TKeyAgendaEmpty)))
	} else {
		for _, e := range entries {
			p.agendaBox.Add(widget.NewLabel(e.Summary))
		}
	}
	p.agendaBox.Refresh()
}

// ReloadMarkers loads the configured agenda source and swaps the marker set.
// Safe to call from any goroutine.
func (p *PickersApp) ReloadMarkers() {
	cfg := p.loadSourceConfig()
	if cfg.Mode == "" {
		return
	}

	entries, err := p.Loader.Load(p.Ctx, cfg)
	if err != nil {
		slog.Error(config.ErrSourceLoad,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}

	p.markersMut.Lock()
	p.markers = agenda.NewMarkerSet(entries)
	p.markersMut.Unlock()

	slog.Info(config.MsgMarkersUpdate,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(entries))

	fyne.Do(func() {
		if p.datePicker != nil {
			p.datePicker.Refresh()
		}
	})
}

// loadSourceConfig assembles the agenda configuration from UI preferences
// and the Keyring.
func (p *PickersApp) loadSourceConfig() agenda.SourceConfig {
	cfg := agenda.SourceConfig{
		Mode:      p.Preferences.String(config.PrefSourceMode),
		LocalPath: p.Preferences.String(config.PrefLocalPath),
		WebURL:    p.Preferences.String(config.PrefFeedURL),
		WebUser:   p.Preferences.String(config.PrefUsername),
	}

	if cfg.WebUser != "" {
		if pw, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = pw
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	return cfg
}

// refreshTexts reapplies localized labels after a language change. The main
// window content is rebuilt since card titles are plain strings.
func (p *PickersApp) refreshTexts() {
	p.Window.SetTitle(l10n.T(config.TKeyWinTitle))
	p.Window.SetMainMenu(p.buildMainMenu())
	p.Window.SetContent(p.buildContent())
}
