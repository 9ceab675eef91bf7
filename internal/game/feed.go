package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Pong/internal/pong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 260
	feedMaxEntries = 40
	feedLineHeight = 12
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Side    pong.Side
	Message string
}

// EventFeed is a ring buffer of recent match events rendered on-screen.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (ef *EventFeed) Add(tick int, side pong.Side, msg string) {
	ef.entries[ef.head] = FeedEntry{
		Tick:    tick,
		Side:    side,
		Message: msg,
	}
	ef.head = (ef.head + 1) % feedMaxEntries
	if ef.count < feedMaxEntries {
		ef.count++
	}
}

// Record adds every event worth showing. Wall bounces are too frequent to be
// useful and are left out.
func (ef *EventFeed) Record(events []pong.Event) {
	for _, e := range events {
		if e.Kind == pong.EventBounce {
			continue
		}
		ef.Add(e.Tick, e.Side, e.String())
	}
}

// Recent returns entries in chronological order (oldest first).
func (ef *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, ef.count)
	for i := 0; i < ef.count; i++ {
		idx := (ef.head - ef.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = ef.entries[idx]
	}
	return result
}

// Len is the number of retained entries.
func (ef *EventFeed) Len() int {
	return ef.count
}

// Draw renders the feed as a translucent panel on the right edge.
func (ef *EventFeed) Draw(screen *ebiten.Image, panelX, top, panelH int) {
	vector.FillRect(screen, float32(panelX), float32(top), feedPanelWidth, float32(panelH), color.RGBA{R: 8, G: 10, B: 14, A: 220}, false)
	vector.StrokeLine(screen, float32(panelX), float32(top), float32(panelX), float32(top+panelH), 1, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, top+2)

	entries := ef.Recent()
	maxVisible := (panelH - 20) / feedLineHeight
	if len(entries) > maxVisible && maxVisible >= 0 {
		entries = entries[len(entries)-maxVisible:]
	}

	y := top + 18
	for _, e := range entries {
		vector.FillRect(screen, float32(panelX+4), float32(y+4), 3, 5, sideColor(e.Side), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+10, y)
		y += feedLineHeight
	}
}

func sideColor(s pong.Side) color.RGBA {
	switch s {
	case pong.SideLeft:
		return color.RGBA{R: 230, G: 90, B: 90, A: 255}
	case pong.SideRight:
		return color.RGBA{R: 90, G: 140, B: 230, A: 255}
	}
	return color.RGBA{R: 160, G: 160, B: 160, A: 255}
}
