// Package display turns clock state into the strings shown by the views.
package display

import (
	"fmt"
	"strings"

	"meridian/internal/core/wallclock"
	"meridian/internal/core/zone"
)

// DefaultNeighborLimit is how many neighbor names are shown before the
// overflow count.
const DefaultNeighborLimit = 15

const (
	noNeighbors = "No regional neighbors"
	placeholder = "--:--"
	dayGlyph    = "☀"
	nightGlyph  = "☾"
)

// Time renders "9:05", or a placeholder before the first computation.
func Time(snapshot wallclock.Snapshot) string {
	if !snapshot.Computed() {
		return placeholder
	}
	return fmt.Sprintf("%d:%02d", snapshot.Hour12, snapshot.Minute)
}

// TimeWithMeridiem renders "9:05 PM".
func TimeWithMeridiem(snapshot wallclock.Snapshot) string {
	if !snapshot.Computed() {
		return placeholder
	}
	return fmt.Sprintf("%s %s", Time(snapshot), snapshot.Meridiem)
}

// DayNight returns a sun or moon glyph.
func DayNight(snapshot wallclock.Snapshot) string {
	if snapshot.IsNight {
		return nightGlyph
	}
	return dayGlyph
}

// Offset renders a UTC offset in seconds as "UTC+05:30".
func Offset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("UTC%s%02d:%02d", sign, hours, minutes)
}

// Title renders the flag and display name of a zone.
func Title(metadata zone.Metadata) string {
	return fmt.Sprintf("%s %s", metadata.Region.Flag(), metadata.DisplayName)
}

// Truncate caps ids at limit and returns how many were dropped. A limit
// of zero or less selects DefaultNeighborLimit.
func Truncate(ids []string, limit int) ([]string, int) {
	if limit <= 0 {
		limit = DefaultNeighborLimit
	}
	if len(ids) <= limit {
		return ids, 0
	}
	return ids[:limit], len(ids) - limit
}

// Neighbors renders a neighbor group as "London, Dublin +3 more".
func Neighbors(catalog *zone.Catalog, ids []string, limit int) string {
	if len(ids) == 0 {
		return noNeighbors
	}
	shown, overflow := Truncate(ids, limit)
	names := make([]string, 0, len(shown))
	for _, id := range shown {
		if catalog != nil {
			names = append(names, catalog.MetadataFor(id).DisplayName)
			continue
		}
		names = append(names, zone.DisplayName(id))
	}
	label := strings.Join(names, ", ")
	if overflow > 0 {
		label = fmt.Sprintf("%s +%d more", label, overflow)
	}
	return label
}
