package tray

import (
	"fmt"

	"meridian/internal/core/display"
	"meridian/internal/core/worldclock"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowClocks  func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	title       string
	statusItem  *fyne.MenuItem
	callbacks   Callbacks
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		title:       title,
		callbacks:   callbacks,
		statusLabel: "starting...",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.refreshStatus()

	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetFrame shows the local clock of a frame in the status line.
func (manager *Manager) SetFrame(frame worldclock.Frame) {
	manager.SetStatus(StatusLine(frame))
}

// StatusLine summarises the primary clock of a frame, falling back to the
// first clock when the local zone is hidden.
func StatusLine(frame worldclock.Frame) string {
	if len(frame.Clocks) == 0 {
		return "no clocks"
	}
	state := frame.Clocks[0]
	for _, candidate := range frame.Clocks {
		if candidate.Primary {
			state = candidate
			break
		}
	}
	return fmt.Sprintf("%s %s, %s", state.Metadata.DisplayName, display.TimeWithMeridiem(state.Snapshot), state.Snapshot.DateLabel)
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = manager.statusLabel
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
			manager.statusItem,
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Show clocks", func() {
				if manager.callbacks.OnShowClocks != nil {
					manager.callbacks.OnShowClocks()
				}
			}),
			fyne.NewMenuItem("Preferences", func() {
				if manager.callbacks.OnPreferences != nil {
					manager.callbacks.OnPreferences()
				}
			}),
			fyne.NewMenuItem("Quit", func() {
				if manager.callbacks.OnQuit != nil {
					manager.callbacks.OnQuit()
				}
			}),
		))
	}
}
