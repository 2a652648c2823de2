package preferences

import (
	"errors"
	"strconv"
	"strings"

	"meridian/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	config        model.ClockConfig
	onSave        func(model.ClockConfig)
	neighborLimit *widget.Entry
	nightStart    *widget.Entry
	nightEnd      *widget.Entry
	defaultZones  *widget.Entry
	showLocal     *widget.Check
	errorLabel    *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, title string, config model.ClockConfig, onSave func(model.ClockConfig)) *Window {
	window := app.NewWindow(title + " Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		neighborLimit: widget.NewEntry(),
		nightStart:    widget.NewEntry(),
		nightEnd:      widget.NewEntry(),
		defaultZones:  widget.NewMultiLineEntry(),
		showLocal:     widget.NewCheck("Show the local clock", nil),
		errorLabel:    widget.NewLabel(""),
	}
	prefs.defaultZones.SetPlaceHolder("One timezone per line")
	prefs.errorLabel.Importance = widget.DangerImportance
	prefs.UpdateConfig(config)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Clocks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Neighbors shown per clock"), prefs.neighborLimit),
		container.NewHBox(widget.NewLabel("Night starts at"), prefs.nightStart, widget.NewLabel("h")),
		container.NewHBox(widget.NewLabel("Night ends at"), prefs.nightEnd, widget.NewLabel("h")),
		prefs.showLocal,
		widget.NewLabel("Zones pinned at start-up"),
		prefs.defaultZones,
		widget.NewLabel("Night hours, start-up zones and the local clock apply on restart."),
		prefs.errorLabel,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateConfig(prefs.config)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 460))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateConfig replaces window values.
func (prefs *Window) UpdateConfig(config model.ClockConfig) {
	prefs.config = config
	prefs.neighborLimit.SetText(strconv.Itoa(config.NeighborLimit))
	prefs.nightStart.SetText(strconv.Itoa(config.Night.StartHour))
	prefs.nightEnd.SetText(strconv.Itoa(config.Night.EndHour))
	prefs.defaultZones.SetText(strings.Join(config.DefaultZones, "\n"))
	prefs.showLocal.SetChecked(config.ShowLocal)
	prefs.errorLabel.SetText("")
}

func (prefs *Window) handleSave() {
	config, err := applyForm(prefs.config, formValues{
		NeighborLimit: prefs.neighborLimit.Text,
		NightStart:    prefs.nightStart.Text,
		NightEnd:      prefs.nightEnd.Text,
		DefaultZones:  prefs.defaultZones.Text,
		ShowLocal:     prefs.showLocal.Checked,
	})
	if err != nil {
		prefs.errorLabel.SetText(err.Error())
		return
	}

	prefs.config = config
	prefs.errorLabel.SetText("")
	if prefs.onSave != nil {
		prefs.onSave(config)
	}
	prefs.window.Hide()
}

type formValues struct {
	NeighborLimit string
	NightStart    string
	NightEnd      string
	DefaultZones  string
	ShowLocal     bool
}

func applyForm(config model.ClockConfig, values formValues) (model.ClockConfig, error) {
	limit, ok := parsePositiveInt(values.NeighborLimit)
	if !ok {
		return config, errors.New("neighbor limit must be a positive number")
	}
	start, ok := parseHour(values.NightStart)
	if !ok {
		return config, errors.New("night start must be an hour between 0 and 23")
	}
	end, ok := parseHour(values.NightEnd)
	if !ok {
		return config, errors.New("night end must be an hour between 0 and 23")
	}

	config.NeighborLimit = limit
	config.Night = model.NightWindow{StartHour: start, EndHour: end}
	config.DefaultZones = splitZones(values.DefaultZones)
	config.ShowLocal = values.ShowLocal
	return config, nil
}

func splitZones(text string) []string {
	zones := []string{}
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == ',' }) {
		if id := strings.TrimSpace(line); id != "" {
			zones = append(zones, id)
		}
	}
	return zones
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parseHour(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 || parsed > 23 {
		return 0, false
	}
	return parsed, true
}
