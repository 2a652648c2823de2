package board

import (
	"fmt"
	"strings"

	"meridian/internal/core/display"
	"meridian/internal/core/worldclock"
	"meridian/internal/core/zone"
)

const (
	localSubtitle   = "Local time"
	unavailableText = "Time unavailable"
)

// cardView holds the strings one clock card shows.
type cardView struct {
	ID        string
	Title     string
	Subtitle  string
	Time      string
	Meridiem  string
	Details   string
	Neighbors string
	Night     bool
	Primary   bool
	Stale     bool
}

func newCardView(state worldclock.ClockState, catalog *zone.Catalog, limit int) cardView {
	snapshot := state.Snapshot
	view := cardView{
		ID:       state.ID,
		Title:    display.Title(state.Metadata),
		Subtitle: state.ID,
		Time:     display.Time(snapshot),
		Night:    snapshot.IsNight,
		Primary:  state.Primary,
		Stale:    state.Failed(),
	}
	if state.Primary {
		view.Subtitle = localSubtitle + " · " + state.ID
	}
	if snapshot.Computed() {
		view.Meridiem = string(snapshot.Meridiem)
		view.Details = detailsLine(state)
	}
	if state.Failed() {
		view.Details = unavailableText
	}
	if !state.Primary {
		view.Neighbors = display.Neighbors(catalog, state.Neighbors, limit)
	}
	return view
}

func detailsLine(state worldclock.ClockState) string {
	snapshot := state.Snapshot
	parts := []string{display.DayNight(snapshot), snapshot.DateLabel}
	if snapshot.Abbreviation != "" {
		parts = append(parts, snapshot.Abbreviation)
	}
	parts = append(parts, display.Offset(snapshot.OffsetSeconds))
	return strings.Join(parts, "  ")
}

// frameOrder lists clock ids for a frame: computed clocks first, then failed
// ones that already have a card.
func frameOrder(frame worldclock.Frame, known func(string) bool) []string {
	ids := make([]string, 0, len(frame.Clocks)+len(frame.Failed))
	for _, state := range frame.Clocks {
		ids = append(ids, state.ID)
	}
	for _, id := range frame.Failed {
		if known(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func statusLine(frame worldclock.Frame) string {
	if frame.Seq == 0 {
		return "Waiting for the first tick"
	}
	status := fmt.Sprintf("%d clocks, updated %s UTC", len(frame.Clocks), frame.At.UTC().Format("15:04:05"))
	if len(frame.Failed) > 0 {
		status += fmt.Sprintf(", %d unavailable", len(frame.Failed))
	}
	return status
}
