package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Defender/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 260
	feedMaxEntries = 60
	feedLineHeight = 11
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick     int
	Actor    string // "P", "H12", "BOSS"
	Category string
	Message  string
}

// EventFeed is a ring buffer of recent gameplay events rendered beside the
// playfield. It mirrors the simulation's SimLog but keeps only what fits.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
	cursor  int // next SimLog index to consume
}

func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

func (f *EventFeed) Add(tick int, actor, category, msg string) {
	f.entries[f.head] = FeedEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Message:  msg,
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Sync appends every SimLog entry recorded since the previous call. Spawns,
// routine shots and per-tick movement are skipped.
func (f *EventFeed) Sync(log *sim.SimLog) {
	entries := log.Entries()
	if f.cursor > len(entries) {
		f.cursor = 0
	}
	for _, e := range entries[f.cursor:] {
		if !feedWorthy(e) {
			continue
		}
		f.Add(e.Tick, e.Actor, e.Category, feedMessage(e))
	}
	f.cursor = len(entries)
}

func feedWorthy(e sim.SimLogEntry) bool {
	switch e.Category {
	case sim.LogSpawn:
		return false
	case sim.LogWeapon:
		return e.Key == "denied"
	case sim.LogPlayer:
		return e.Key != "pos"
	}
	return true
}

func feedMessage(e sim.SimLogEntry) string {
	if e.Value == "" {
		return e.Key
	}
	return e.Key + " " + e.Value
}

func feedColor(category string) color.RGBA {
	switch category {
	case sim.LogWeapon:
		return color.RGBA{R: 240, G: 200, B: 60, A: 255}
	case sim.LogCombat:
		return color.RGBA{R: 230, G: 80, B: 60, A: 255}
	case sim.LogPlayer:
		return color.RGBA{R: 80, G: 160, B: 240, A: 255}
	case sim.LogPickup:
		return color.RGBA{R: 90, G: 220, B: 110, A: 255}
	case sim.LogMission:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBA{R: 140, G: 140, B: 140, A: 255}
}

// Draw renders the feed panel starting at panelX.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 8, G: 10, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 90, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 18, G: 22, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "COMBAT LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+feedPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 60, B: 90, A: 200}, false)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 26, G: 32, B: 50, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, feedColor(e.Category), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d %-4s %s", e.Tick, e.Actor, e.Message), panelX+12, y)
		y += feedLineHeight
	}
}
