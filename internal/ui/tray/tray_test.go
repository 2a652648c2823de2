package tray

import (
	"testing"

	"meridian/internal/core/wallclock"
	"meridian/internal/core/worldclock"
	"meridian/internal/core/zone"

	"github.com/stretchr/testify/assert"
)

func clockState(id string, hour, minute int, primary bool) worldclock.ClockState {
	return worldclock.ClockState{
		ID:       id,
		Metadata: zone.Metadata{ID: id, DisplayName: zone.DisplayName(id)},
		Snapshot: wallclock.Snapshot{Hour12: hour, Minute: minute, Meridiem: wallclock.AM, DateLabel: "Tue, Jan 16"},
		Primary:  primary,
	}
}

func TestStatusLinePrefersPrimaryClock(t *testing.T) {
	frame := worldclock.Frame{Seq: 1, Clocks: []worldclock.ClockState{
		clockState("Asia/Tokyo", 7, 30, false),
		clockState("America/New_York", 5, 30, true),
	}}
	assert.Equal(t, "New York 5:30 AM, Tue, Jan 16", StatusLine(frame))
}

func TestStatusLineFallsBackToFirstClock(t *testing.T) {
	frame := worldclock.Frame{Seq: 1, Clocks: []worldclock.ClockState{
		clockState("Asia/Tokyo", 7, 30, false),
	}}
	assert.Equal(t, "Tokyo 7:30 AM, Tue, Jan 16", StatusLine(frame))
	assert.Equal(t, "no clocks", StatusLine(worldclock.Frame{}))
}

func TestManagerWithoutDesktopKeepsStatus(t *testing.T) {
	manager := New(nil, "Meridian", Callbacks{})
	manager.SetStatus("Tokyo 7:30 AM")
	assert.Equal(t, "Tokyo 7:30 AM", manager.statusItem.Label)
}
