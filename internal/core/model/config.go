package model

import "time"

// NightWindow marks the local hours treated as night. Start is inclusive,
// End is exclusive, and the window wraps past midnight when Start > End.
type NightWindow struct {
	StartHour int
	EndHour   int
}

// Contains reports whether a 24-hour local hour falls inside the window.
func (window NightWindow) Contains(hour int) bool {
	if window.StartHour == window.EndHour {
		return false
	}
	if window.StartHour < window.EndHour {
		return hour >= window.StartHour && hour < window.EndHour
	}
	return hour >= window.StartHour || hour < window.EndHour
}

// DefaultNightWindow is 18:00 to 06:00 local time.
func DefaultNightWindow() NightWindow {
	return NightWindow{StartHour: 18, EndHour: 6}
}

// ClockConfig contains runtime settings for the world clock.
type ClockConfig struct {
	TickInterval  time.Duration
	DefaultZones  []string
	ShowLocal     bool
	NeighborLimit int
	Night         NightWindow
}

// DefaultClockConfig returns the settings used when no config file exists.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		TickInterval:  time.Second,
		DefaultZones:  []string{"America/New_York", "Europe/London", "Asia/Tokyo"},
		ShowLocal:     true,
		NeighborLimit: 15,
		Night:         DefaultNightWindow(),
	}
}
