package worldclock

import (
	"time"

	"meridian/internal/core/wallclock"
	"meridian/internal/core/zone"
)

// ClockState is the rendered state of one clock at one tick.
type ClockState struct {
	ID        string
	Metadata  zone.Metadata
	Snapshot  wallclock.Snapshot
	Neighbors []string
	Primary   bool
	Err       error
}

// Failed reports whether the last computation for this clock failed.
func (state ClockState) Failed() bool {
	return state.Err != nil
}

// Frame is one batched update. Every clock in a frame was computed for the
// same instant.
type Frame struct {
	Seq    uint64
	At     time.Time
	Clocks []ClockState
	Failed []string
}

// Clock returns the state for id within the frame.
func (frame Frame) Clock(id string) (ClockState, bool) {
	for _, state := range frame.Clocks {
		if state.ID == id {
			return state, true
		}
	}
	return ClockState{}, false
}

// Subscription delivers frames to one observer.
type Subscription struct {
	updates chan Frame
}

// Updates returns the frame channel. It is closed on Unsubscribe or Unmount.
func (subscription *Subscription) Updates() <-chan Frame {
	return subscription.updates
}

// deliver never blocks and keeps only the newest frame when the observer lags.
func (subscription *Subscription) deliver(frame Frame) {
	select {
	case subscription.updates <- frame:
		return
	default:
	}
	select {
	case <-subscription.updates:
	default:
	}
	select {
	case subscription.updates <- frame:
	default:
	}
}
