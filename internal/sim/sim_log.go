package sim

import (
	"fmt"
	"strings"
)

// Log categories.
const (
	LogWeapon  = "weapon"
	LogCombat  = "combat"
	LogPlayer  = "player"
	LogPickup  = "pickup"
	LogSpawn   = "spawn"
	LogMission = "mission"
)

// SimLogEntry is one recorded gameplay event.
type SimLogEntry struct {
	Tick     int
	Actor    string  // "P" for the player, "H12" for hostile 12, "BOSS", or "--"
	Category string  // weapon, combat, player, pickup, spawn, mission
	Key      string  // event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] P    weapon    fired            gun_basic x2
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog is the unbounded record of a mission. Reports are computed from it
// after the fact, and hosts tail it for their event feeds.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. With verbose set, AddVerbose entries (per-tick
// player position) are kept as well.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Add(tick int, actor, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

func (sl *SimLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, category, key, value, numVal)
}

func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// matches reports whether e has the category and key; empty matches anything.
func (e SimLogEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

func (sl *SimLog) where(keep func(SimLogEntry) bool) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Filter returns entries matching category and key; empty matches anything.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.matches(category, key) })
}

// FilterActor returns entries for one actor label ("P", "H12", "BOSS").
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.Actor == label })
}

// FilterTickRange returns entries within [fromTick, toTick].
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.Tick >= fromTick && e.Tick <= toTick })
}

func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range sl.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// SumCategory adds up NumVal over matching entries. Damage, shield absorption
// and shots per volley are all recorded in NumVal.
func (sl *SimLog) SumCategory(category, key string) float64 {
	var sum float64
	for _, e := range sl.entries {
		if e.matches(category, key) {
			sum += e.NumVal
		}
	}
	return sum
}

func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if sl.entries[i].matches(category, key) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether any matching entry's Value contains valueSubstr.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if e.matches(category, key) && strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatRange formats the entries between two ticks, inclusive.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintln(&sb, e)
	}
	return sb.String()
}

// Summary returns a short human-readable summary of a snapshot.
func (sl *SimLog) Summary(snap Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", snap.Tick)
	fmt.Fprintf(&sb, "Mission: %s %s", snap.Mission, snap.State)
	if snap.Required > 0 {
		fmt.Fprintf(&sb, "  progress %d/%d", snap.Progress, snap.Required)
	}
	if snap.Boss != nil {
		fmt.Fprintf(&sb, "  boss %d%%", snap.Boss.Percent)
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "Player: hp=%.0f/%.0f shield=%.0f/%.0f pos=(%.0f,%.0f)\n",
		snap.Player.Health, snap.Player.MaxHealth, snap.Player.Shield, snap.Player.ShieldCap,
		snap.Player.Pos.X, snap.Player.Pos.Y)

	kinds := map[HostileKind]int{}
	for _, h := range snap.Hostiles {
		kinds[h.Kind]++
	}
	sb.WriteString("Hostiles: ")
	if len(kinds) == 0 {
		sb.WriteString("none")
	}
	for k := KindLightFast; k < hostileKindCount; k++ {
		if n := kinds[k]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", k, n)
		}
	}
	sb.WriteByte('\n')

	friendly, hostile := 0, 0
	for _, p := range snap.Projectiles {
		if p.Hostile {
			hostile++
		} else {
			friendly++
		}
	}
	fmt.Fprintf(&sb, "Projectiles: friendly=%d  hostile=%d  pickups=%d\n", friendly, hostile, len(snap.Pickups))
	fmt.Fprintf(&sb, "Score: %d\n", snap.Score)
	return sb.String()
}
