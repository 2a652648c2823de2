// Package wallclock converts instants into the local wall-clock reading of
// an explicit IANA zone.
package wallclock

import (
	"errors"
	"fmt"
	"time"

	"meridian/internal/core/model"
)

// ErrFormatFailure indicates an identifier cannot be formatted at an instant.
var ErrFormatFailure = errors.New("format failure")

// Meridiem is the fixed 12-hour period token.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

const dateLayout = "Mon, Jan 2"

// Resolver returns the rules for an identifier.
type Resolver interface {
	Resolve(id string) (*time.Location, error)
}

// Key is the (hour12, minute, meridiem) triple used for equivalence.
type Key struct {
	Hour12   int
	Minute   int
	Meridiem Meridiem
}

func (key Key) String() string {
	return fmt.Sprintf("%d:%02d %s", key.Hour12, key.Minute, key.Meridiem)
}

// Snapshot is one wall-clock reading. The zero value means not yet computed.
type Snapshot struct {
	Hour12        int
	Minute        int
	Meridiem      Meridiem
	IsNight       bool
	DateLabel     string
	Abbreviation  string
	OffsetSeconds int
	At            time.Time
}

// NotComputed is returned for zones without a reading.
var NotComputed = Snapshot{}

// Computed reports whether the snapshot holds a real reading.
func (snapshot Snapshot) Computed() bool {
	return snapshot.Hour12 >= 1 && snapshot.Hour12 <= 12
}

// Key returns the equivalence key of the snapshot.
func (snapshot Snapshot) Key() Key {
	return Key{Hour12: snapshot.Hour12, Minute: snapshot.Minute, Meridiem: snapshot.Meridiem}
}

// Formatter produces snapshots using explicit per-zone conversion.
type Formatter struct {
	resolver Resolver
	night    model.NightWindow
}

// NewFormatter returns a formatter using the given night window.
func NewFormatter(resolver Resolver, night model.NightWindow) *Formatter {
	return &Formatter{resolver: resolver, night: night}
}

// Snapshot formats at in the wall-clock time of id.
func (formatter *Formatter) Snapshot(id string, at time.Time) (Snapshot, error) {
	local, err := formatter.localTime(id, at)
	if err != nil {
		return NotComputed, err
	}
	hour12, meridiem := To12Hour(local.Hour())
	abbreviation, offset := local.Zone()
	return Snapshot{
		Hour12:        hour12,
		Minute:        local.Minute(),
		Meridiem:      meridiem,
		IsNight:       formatter.night.Contains(local.Hour()),
		DateLabel:     local.Format(dateLayout),
		Abbreviation:  abbreviation,
		OffsetSeconds: offset,
		At:            local,
	}, nil
}

// Key formats at in id and returns only the equivalence triple.
func (formatter *Formatter) Key(id string, at time.Time) (Key, error) {
	local, err := formatter.localTime(id, at)
	if err != nil {
		return Key{}, err
	}
	hour12, meridiem := To12Hour(local.Hour())
	return Key{Hour12: hour12, Minute: local.Minute(), Meridiem: meridiem}, nil
}

func (formatter *Formatter) localTime(id string, at time.Time) (time.Time, error) {
	if formatter.resolver == nil {
		return time.Time{}, fmt.Errorf("format %s: %w: no resolver", id, ErrFormatFailure)
	}
	location, err := formatter.resolver.Resolve(id)
	if err != nil {
		return time.Time{}, fmt.Errorf("format %s: %w: %v", id, ErrFormatFailure, err)
	}
	return at.In(location), nil
}

// To12Hour maps a 24-hour value to its 12-hour reading.
func To12Hour(hour int) (int, Meridiem) {
	meridiem := AM
	if hour >= 12 {
		meridiem = PM
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return hour12, meridiem
}
