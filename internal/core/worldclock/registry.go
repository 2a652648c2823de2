// Package worldclock keeps a set of pinned zones live on one shared ticker.
package worldclock

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"meridian/internal/core/equivalence"
	"meridian/internal/core/wallclock"
	"meridian/internal/core/zone"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// SnapshotFormatter produces the wall-clock reading of a zone.
type SnapshotFormatter interface {
	Snapshot(id string, at time.Time) (wallclock.Snapshot, error)
}

// Config contains runtime options for the Registry.
type Config struct {
	TickInterval time.Duration
	LocalZone    string
	DefaultZones []string
	HideLocal    bool
}

// Deps are the collaborators of a Registry. Clock, NewTicker and Logger
// default to the system clock, time.NewTicker and a no-op logger.
type Deps struct {
	Catalog   *zone.Catalog
	Formatter SnapshotFormatter
	Index     *equivalence.Index
	Clock     Clock
	NewTicker TickerFactory
	Logger    *zap.Logger
}

// tickLoop is one ticker goroutine. done closes when the goroutine returns.
type tickLoop struct {
	ticker Ticker
	stop   chan struct{}
	done   chan struct{}
}

// Registry owns the pinned zones and the single ticker that refreshes them.
type Registry struct {
	mu          sync.Mutex
	config      Config
	catalog     *zone.Catalog
	zones       []string
	formatter   SnapshotFormatter
	index       *equivalence.Index
	clock       Clock
	newTicker   TickerFactory
	logger      *zap.Logger
	pinned      []string
	states      map[string]ClockState
	frame       Frame
	seq         uint64
	subscribers map[*Subscription]struct{}
	mounted     bool
	loop        *tickLoop
	stopped     []*tickLoop
}

// New creates an unmounted Registry seeded with the default zones.
func New(config Config, deps Deps) *Registry {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if deps.Catalog == nil {
		deps.Catalog = zone.NewCatalog(zone.FallbackZones(config.LocalZone), zone.RegionTable{})
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.NewTicker == nil {
		deps.NewTicker = NewSystemTicker
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	registry := &Registry{
		config:      config,
		catalog:     deps.Catalog,
		zones:       deps.Catalog.Zones(),
		formatter:   deps.Formatter,
		index:       deps.Index,
		clock:       deps.Clock,
		newTicker:   deps.NewTicker,
		logger:      deps.Logger,
		states:      make(map[string]ClockState),
		subscribers: make(map[*Subscription]struct{}),
	}
	for _, id := range config.DefaultZones {
		if id != "" && !slices.Contains(registry.pinned, id) {
			registry.pinned = append(registry.pinned, id)
		}
	}
	return registry
}

// Subscribe registers an observer. The current frame, if any, is delivered
// right away.
func (registry *Registry) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 1
	}
	subscription := &Subscription{updates: make(chan Frame, buffer)}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.subscribers[subscription] = struct{}{}
	if registry.frame.Seq > 0 {
		subscription.deliver(registry.frame)
	}
	return subscription
}

// Unsubscribe removes an observer and closes its channel.
func (registry *Registry) Unsubscribe(subscription *Subscription) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, ok := registry.subscribers[subscription]; !ok {
		return
	}
	delete(registry.subscribers, subscription)
	close(subscription.updates)
}

// Mount computes the first frame and starts the shared ticker.
func (registry *Registry) Mount() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.mounted {
		return
	}
	registry.mounted = true
	registry.refreshLocked()
	registry.syncLoopLocked()
	registry.logger.Debug("world clock mounted",
		zap.Strings("pinned", registry.pinned),
		zap.Duration("tick", registry.config.TickInterval))
}

// Unmount stops the ticker, waits for its goroutine, closes observers and
// clears the pinned set.
func (registry *Registry) Unmount() {
	registry.mu.Lock()
	if !registry.mounted {
		registry.mu.Unlock()
		return
	}
	registry.mounted = false
	registry.stopLoopLocked()
	stopped := registry.stopped
	registry.stopped = nil
	subscribers := registry.subscribers
	registry.subscribers = make(map[*Subscription]struct{})
	registry.pinned = nil
	registry.states = make(map[string]ClockState)
	registry.frame = Frame{}
	registry.mu.Unlock()

	for _, loop := range stopped {
		<-loop.done
	}
	for subscription := range subscribers {
		close(subscription.updates)
	}
	registry.logger.Debug("world clock unmounted")
}

// Mounted reports whether the registry is mounted.
func (registry *Registry) Mounted() bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.mounted
}

// Pin adds id to the pinned set and computes it immediately. Pinning an
// already pinned zone is a no-op.
func (registry *Registry) Pin(id string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if id == "" || slices.Contains(registry.pinned, id) {
		return false
	}
	registry.pinned = append(registry.pinned, id)
	registry.refreshLocked()
	registry.syncLoopLocked()
	return true
}

// Unpin removes id from the pinned set. Unknown ids are ignored.
func (registry *Registry) Unpin(id string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	position := slices.Index(registry.pinned, id)
	if position < 0 {
		return false
	}
	registry.pinned = slices.Delete(registry.pinned, position, position+1)
	registry.refreshLocked()
	registry.syncLoopLocked()
	return true
}

// Pinned returns a copy of the pinned set in pin order.
func (registry *Registry) Pinned() []string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return append([]string(nil), registry.pinned...)
}

// LocalZone returns the implicit primary zone.
func (registry *Registry) LocalZone() string {
	return registry.config.LocalZone
}

// CurrentSnapshot returns the newest snapshot for id, or
// wallclock.NotComputed when none exists.
func (registry *Registry) CurrentSnapshot(id string) wallclock.Snapshot {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	state, ok := registry.states[id]
	if !ok {
		return wallclock.NotComputed
	}
	return state.Snapshot
}

// Clock returns the newest state for id.
func (registry *Registry) Clock(id string) (ClockState, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	state, ok := registry.states[id]
	return state, ok
}

// Frame returns the newest published frame.
func (registry *Registry) Frame() Frame {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.frame
}

func (registry *Registry) run(loop *tickLoop) {
	defer close(loop.done)

	for {
		select {
		case <-loop.stop:
			return
		case _, ok := <-loop.ticker.C():
			if !ok {
				registry.replaceLoop(loop)
				return
			}
			registry.tick(loop)
		}
	}
}

func (registry *Registry) tick(loop *tickLoop) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.loop != loop {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			registry.logger.Error("world clock tick failed",
				zap.Uint64("seq", registry.seq),
				zap.Any("panic", recovered))
		}
	}()
	registry.refreshLocked()
}

// replaceLoop swaps out a ticker whose channel closed underneath it.
func (registry *Registry) replaceLoop(loop *tickLoop) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.loop != loop {
		return
	}
	registry.logger.Error("world clock ticker closed, restarting")
	registry.stopLoopLocked()
	registry.syncLoopLocked()
}

// visibleIDsLocked lists the local zone first, then pinned zones.
func (registry *Registry) visibleIDsLocked() []string {
	ids := make([]string, 0, len(registry.pinned)+1)
	local := registry.config.LocalZone
	if !registry.config.HideLocal && local != "" {
		ids = append(ids, local)
	}
	for _, id := range registry.pinned {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (registry *Registry) isPrimary(id string) bool {
	return id != "" && id == registry.config.LocalZone
}

// refreshLocked recomputes every visible clock for one instant and publishes
// the result as a single frame.
func (registry *Registry) refreshLocked() {
	now := registry.clock.Now()
	ids := registry.visibleIDsLocked()

	var buckets equivalence.Buckets
	if registry.index != nil && slices.ContainsFunc(ids, func(id string) bool { return !registry.isPrimary(id) }) {
		buckets = registry.index.Buckets(now, registry.zones)
	}

	frame := Frame{
		Seq:    registry.seq + 1,
		At:     now,
		Clocks: make([]ClockState, 0, len(ids)),
	}
	// states is swapped in whole so a panic midway leaves the previous tick intact.
	states := make(map[string]ClockState, len(ids))
	var errs error
	for _, id := range ids {
		state, err := registry.computeLocked(id, now, buckets)
		if err != nil {
			frame.Failed = append(frame.Failed, id)
			errs = multierr.Append(errs, err)
			previous := registry.states[id]
			previous.ID = id
			previous.Metadata = registry.catalog.MetadataFor(id)
			previous.Primary = registry.isPrimary(id)
			previous.Err = err
			states[id] = previous
			continue
		}
		states[id] = state
		frame.Clocks = append(frame.Clocks, state)
	}
	registry.seq = frame.Seq
	registry.states = states
	if errs != nil {
		registry.logger.Warn("zones skipped this tick",
			zap.Uint64("seq", frame.Seq),
			zap.Strings("zones", frame.Failed),
			zap.Error(errs))
	}

	registry.frame = frame
	for subscription := range registry.subscribers {
		subscription.deliver(frame)
	}
}

func (registry *Registry) computeLocked(id string, now time.Time, buckets equivalence.Buckets) (ClockState, error) {
	if registry.formatter == nil {
		return ClockState{}, fmt.Errorf("compute clock %s: %w: no formatter", id, wallclock.ErrFormatFailure)
	}
	snapshot, err := registry.formatter.Snapshot(id, now)
	if err != nil {
		return ClockState{}, err
	}
	state := ClockState{
		ID:       id,
		Metadata: registry.catalog.MetadataFor(id),
		Snapshot: snapshot,
		Primary:  registry.isPrimary(id),
	}
	if !state.Primary {
		state.Neighbors = buckets.NeighborsOf(id)
	}
	return state, nil
}

// syncLoopLocked keeps exactly one ticker alive while mounted with at least
// one visible clock, and none otherwise.
func (registry *Registry) syncLoopLocked() {
	want := registry.mounted && len(registry.visibleIDsLocked()) > 0
	switch {
	case want && registry.loop == nil:
		loop := &tickLoop{
			ticker: registry.newTicker(registry.config.TickInterval),
			stop:   make(chan struct{}),
			done:   make(chan struct{}),
		}
		registry.loop = loop
		go registry.run(loop)
	case !want && registry.loop != nil:
		registry.stopLoopLocked()
	}
}

func (registry *Registry) stopLoopLocked() {
	if registry.loop == nil {
		return
	}
	close(registry.loop.stop)
	registry.loop.ticker.Stop()
	registry.stopped = append(pruneFinished(registry.stopped), registry.loop)
	registry.loop = nil
}

// pruneFinished drops loops whose goroutine already returned.
func pruneFinished(loops []*tickLoop) []*tickLoop {
	pending := loops[:0]
	for _, loop := range loops {
		select {
		case <-loop.done:
		default:
			pending = append(pending, loop)
		}
	}
	return pending
}
