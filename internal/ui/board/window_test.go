package board

import (
	"testing"

	"meridian/internal/core/worldclock"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	pinned   []string
	unpinned []string
}

func (registry *fakeRegistry) Pin(id string) bool {
	registry.pinned = append(registry.pinned, id)
	return true
}

func (registry *fakeRegistry) Unpin(id string) bool {
	registry.unpinned = append(registry.unpinned, id)
	return true
}

func (registry *fakeRegistry) Subscribe(int) *worldclock.Subscription {
	return nil
}

func (registry *fakeRegistry) Unsubscribe(*worldclock.Subscription) {}

func TestRenderBuildsOneCardPerClock(t *testing.T) {
	app := test.NewTempApp(t)
	catalog := testCatalog()
	registry := &fakeRegistry{}
	board := New(app, registry, catalog, Options{})

	var rendered []uint64
	board.options.OnFrame = func(frame worldclock.Frame) {
		rendered = append(rendered, frame.Seq)
	}

	local := londonState(catalog)
	local.ID = "UTC"
	local.Metadata = catalog.MetadataFor("UTC")
	local.Primary = true
	frame := worldclock.Frame{Seq: 1, Clocks: []worldclock.ClockState{local, londonState(catalog)}}
	board.render(frame)

	require.Len(t, board.list.Objects, 2)
	assert.Equal(t, []string{"UTC", "Europe/London"}, board.order)
	assert.Equal(t, "🇬🇧 London", board.cards["Europe/London"].card.Title)
	assert.Equal(t, "9:05", board.cards["Europe/London"].timeText.Text)
	assert.False(t, board.cards["UTC"].remove.Visible())
	assert.Equal(t, []uint64{1}, rendered)

	board.cards["Europe/London"].remove.OnTapped()
	assert.Equal(t, []string{"Europe/London"}, registry.unpinned)

	board.render(worldclock.Frame{Seq: 2, Clocks: []worldclock.ClockState{local}})
	assert.Len(t, board.list.Objects, 1)
	assert.NotContains(t, board.cards, "Europe/London")
}

func TestClockFaceMeasuresWithTestTheme(t *testing.T) {
	app := test.NewTempApp(t)
	catalog := testCatalog()
	board := New(app, &fakeRegistry{}, catalog, Options{})

	board.render(worldclock.Frame{Seq: 1, Clocks: []worldclock.ClockState{londonState(catalog)}})

	timeText := board.cards["Europe/London"].timeText
	assert.Equal(t, fyne.TextStyle{Monospace: true}, timeText.TextStyle)
	assert.Positive(t, timeText.MinSize().Width)
	assert.Positive(t, board.list.MinSize().Height)
}

func TestRenderKeepsFailedCardAsStale(t *testing.T) {
	app := test.NewTempApp(t)
	catalog := testCatalog()
	board := New(app, &fakeRegistry{}, catalog, Options{})

	board.render(worldclock.Frame{Seq: 1, Clocks: []worldclock.ClockState{londonState(catalog)}})
	board.render(worldclock.Frame{Seq: 2, Failed: []string{"Europe/London"}})

	require.Contains(t, board.cards, "Europe/London")
	assert.Equal(t, unavailableText, board.cards["Europe/London"].details.Text)
	assert.Equal(t, "9:05", board.cards["Europe/London"].timeText.Text)
}

func TestPinOnlyAcceptsCatalogZones(t *testing.T) {
	app := test.NewTempApp(t)
	registry := &fakeRegistry{}
	board := New(app, registry, testCatalog(), Options{})

	board.pin(" Asia/Tokyo ")
	board.pin("Mars/Olympus_Mons")

	assert.Equal(t, []string{"Asia/Tokyo"}, registry.pinned)
	assert.Equal(t, "Unknown timezone: Mars/Olympus_Mons", board.status.Text)
}

func TestMatchingZonesFiltersCaseInsensitively(t *testing.T) {
	app := test.NewTempApp(t)
	board := New(app, &fakeRegistry{}, testCatalog(), Options{})

	assert.Equal(t, []string{"Europe/London", "Europe/Dublin", "Europe/Lisbon"}, board.matchingZones("EUROPE"))
	assert.Len(t, board.matchingZones(""), 5)
}
