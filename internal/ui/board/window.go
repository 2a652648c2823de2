package board

import (
	"image/color"
	"slices"
	"strings"

	"meridian/internal/core/display"
	"meridian/internal/core/worldclock"
	"meridian/internal/core/zone"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Registry is the part of the world clock the board drives.
type Registry interface {
	Pin(id string) bool
	Unpin(id string) bool
	Subscribe(buffer int) *worldclock.Subscription
	Unsubscribe(subscription *worldclock.Subscription)
}

// Options configure the board.
type Options struct {
	Title         string
	NeighborLimit int
	// OnFrame runs on the UI thread after every rendered frame.
	OnFrame func(worldclock.Frame)
}

var (
	dayColor   = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	nightColor = color.NRGBA{R: 127, G: 179, B: 213, A: 255}
)

const maxPickerOptions = 50

// Window shows one card per visible clock and lets the user pin zones.
type Window struct {
	window       fyne.Window
	registry     Registry
	catalog      *zone.Catalog
	options      Options
	picker       *widget.SelectEntry
	status       *widget.Label
	list         *fyne.Container
	cards        map[string]*clockCard
	order        []string
	subscription *worldclock.Subscription
	last         worldclock.Frame
}

type clockCard struct {
	card      *widget.Card
	timeText  *canvas.Text
	meridiem  *widget.Label
	details   *widget.Label
	neighbors *widget.Label
	remove    *widget.Button
	root      fyne.CanvasObject
}

// New creates the board window. It stays hidden until Show.
func New(app fyne.App, registry Registry, catalog *zone.Catalog, options Options) *Window {
	if options.Title == "" {
		options.Title = "World Clock"
	}
	if options.NeighborLimit <= 0 {
		options.NeighborLimit = display.DefaultNeighborLimit
	}

	window := app.NewWindow(options.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	board := &Window{
		window:   window,
		registry: registry,
		catalog:  catalog,
		options:  options,
		status:   widget.NewLabel(statusLine(worldclock.Frame{})),
		list:     container.NewVBox(),
		cards:    make(map[string]*clockCard),
	}

	board.picker = widget.NewSelectEntry(board.matchingZones(""))
	board.picker.SetPlaceHolder("Add a timezone, e.g. Europe/Paris")
	board.picker.OnChanged = func(text string) {
		board.picker.SetOptions(board.matchingZones(text))
	}
	board.picker.OnSubmitted = func(text string) {
		board.pin(text)
	}
	addButton := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), func() {
		board.pin(board.picker.Text)
	})

	header := container.NewBorder(nil, nil, nil, addButton, board.picker)
	content := container.NewBorder(header, board.status, nil, nil, container.NewVScroll(board.list))
	window.SetContent(content)
	window.Resize(fyne.NewSize(460, 640))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return board
}

// Start subscribes to the registry and renders frames until Stop or until
// the registry unmounts.
func (board *Window) Start() {
	if board.subscription != nil {
		return
	}
	subscription := board.registry.Subscribe(1)
	board.subscription = subscription
	go func() {
		for frame := range subscription.Updates() {
			fyne.Do(func() {
				board.render(frame)
			})
		}
	}()
}

// Stop unsubscribes from the registry.
func (board *Window) Stop() {
	if board.subscription == nil {
		return
	}
	board.registry.Unsubscribe(board.subscription)
	board.subscription = nil
}

// SetOnClose replaces the default close behaviour of hiding the window.
func (board *Window) SetOnClose(handler func()) {
	board.window.SetCloseIntercept(handler)
}

// Show displays the board.
func (board *Window) Show() {
	board.window.Show()
	board.window.RequestFocus()
}

// Hide hides the board.
func (board *Window) Hide() {
	board.window.Hide()
}

// SetNeighborLimit changes how many neighbors a card lists.
func (board *Window) SetNeighborLimit(limit int) {
	if limit <= 0 {
		limit = display.DefaultNeighborLimit
	}
	board.options.NeighborLimit = limit
	board.render(board.last)
}

func (board *Window) pin(text string) {
	id := strings.TrimSpace(text)
	if id == "" || !board.catalog.Contains(id) {
		board.status.SetText("Unknown timezone: " + id)
		return
	}
	board.picker.SetText("")
	board.registry.Pin(id)
}

func (board *Window) matchingZones(text string) []string {
	needle := strings.ToLower(strings.TrimSpace(text))
	matches := make([]string, 0, maxPickerOptions)
	for _, id := range board.catalog.Zones() {
		if needle == "" || strings.Contains(strings.ToLower(id), needle) {
			matches = append(matches, id)
			if len(matches) == maxPickerOptions {
				break
			}
		}
	}
	return matches
}

// render must run on the UI thread.
func (board *Window) render(frame worldclock.Frame) {
	board.last = frame
	order := frameOrder(frame, func(id string) bool {
		_, ok := board.cards[id]
		return ok
	})

	for _, state := range frame.Clocks {
		board.cardFor(state.ID).apply(newCardView(state, board.catalog, board.options.NeighborLimit))
	}
	for _, id := range frame.Failed {
		if card, ok := board.cards[id]; ok {
			card.markStale()
		}
	}
	for id := range board.cards {
		if !slices.Contains(order, id) {
			delete(board.cards, id)
		}
	}

	if !slices.Equal(order, board.order) {
		board.order = order
		objects := make([]fyne.CanvasObject, 0, len(order))
		for _, id := range order {
			objects = append(objects, board.cards[id].root)
		}
		board.list.Objects = objects
		board.list.Refresh()
	}

	board.status.SetText(statusLine(frame))
	if board.options.OnFrame != nil && frame.Seq > 0 {
		board.options.OnFrame(frame)
	}
}

func (board *Window) cardFor(id string) *clockCard {
	if card, ok := board.cards[id]; ok {
		return card
	}

	timeText := canvas.NewText("--:--", dayColor)
	timeText.TextStyle = fyne.TextStyle{Monospace: true}
	timeText.TextSize = 32

	card := &clockCard{
		timeText:  timeText,
		meridiem:  widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		details:   widget.NewLabel(""),
		neighbors: widget.NewLabel(""),
	}
	card.neighbors.Wrapping = fyne.TextWrapWord

	card.remove = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		board.registry.Unpin(id)
	})
	body := container.NewVBox(
		container.NewHBox(timeText, card.meridiem),
		card.details,
		card.neighbors,
	)
	card.card = widget.NewCard("", "", body)
	card.root = container.NewBorder(nil, nil, nil, container.NewVBox(card.remove), card.card)

	board.cards[id] = card
	return card
}

func (card *clockCard) apply(view cardView) {
	card.card.SetTitle(view.Title)
	card.card.SetSubTitle(view.Subtitle)

	card.timeText.Text = view.Time
	card.timeText.Color = dayColor
	if view.Night {
		card.timeText.Color = nightColor
	}
	card.timeText.Refresh()

	card.meridiem.SetText(view.Meridiem)
	card.details.SetText(view.Details)
	card.neighbors.SetText(view.Neighbors)
	if view.Primary {
		card.neighbors.Hide()
		card.remove.Hide()
	} else {
		card.neighbors.Show()
		card.remove.Show()
	}
}

func (card *clockCard) markStale() {
	card.details.SetText(unavailableText)
}
