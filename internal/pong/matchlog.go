package pong

import (
	"fmt"
	"slices"
	"strings"
)

// LogEntry is one recorded match event.
type LogEntry struct {
	Tick   int
	Kind   EventKind
	Side   Side
	Value  string  // human-readable detail
	NumVal float64 // serve angle, new score, or ball speed depending on Kind
}

// Category groups kinds for display: ball, score, or match.
func (e LogEntry) Category() string {
	switch e.Kind {
	case EventBounce, EventHit, EventOut, EventServe:
		return "ball"
	case EventScore, EventWin:
		return "score"
	}
	return "match"
}

// String formats the entry as a fixed-width log line.
//
//	[T=0421] left  ball     hit              left paddle hit, angle 45, speed 525
func (e LogEntry) String() string {
	side := "--"
	if e.Side != SideNone {
		side = e.Side.String()
	}
	return fmt.Sprintf("[T=%04d] %-5s %-8s %-16s %s",
		e.Tick, side, e.Category(), e.Kind, e.Value)
}

// Query selects log entries. A nil Kinds or Sides matches every kind or side.
// ToTick <= 0 leaves the tick range open at the top.
type Query struct {
	Kinds    []EventKind
	Sides    []Side
	FromTick int
	ToTick   int
}

// Ticks selects everything recorded in [from, to].
func Ticks(from, to int) Query {
	return Query{FromTick: from, ToTick: to}
}

// Kinds selects the given kinds on either side.
func Kinds(kinds ...EventKind) Query {
	return Query{Kinds: kinds}
}

// For narrows q to one side.
func (q Query) For(side Side) Query {
	q.Sides = []Side{side}
	return q
}

func (q Query) match(e LogEntry) bool {
	if e.Tick < q.FromTick || (q.ToTick > 0 && e.Tick > q.ToTick) {
		return false
	}
	if q.Kinds != nil && !slices.Contains(q.Kinds, e.Kind) {
		return false
	}
	return q.Sides == nil || slices.Contains(q.Sides, e.Side)
}

// MatchLog collects structured match events. A positive limit keeps only the
// newest entries.
type MatchLog struct {
	entries []LogEntry
	limit   int
}

// NewMatchLog creates a log. limit <= 0 means unbounded.
func NewMatchLog(limit int) *MatchLog {
	return &MatchLog{limit: limit}
}

// Record adds one entry per event.
func (ml *MatchLog) Record(events ...Event) {
	for _, e := range events {
		num := e.Speed
		switch e.Kind {
		case EventScore, EventWin:
			num = float64(e.Score)
		case EventServe:
			num = e.Angle
		}
		ml.entries = append(ml.entries, LogEntry{
			Tick:   e.Tick,
			Kind:   e.Kind,
			Side:   e.Side,
			Value:  e.String(),
			NumVal: num,
		})
	}
	if ml.limit > 0 && len(ml.entries) > ml.limit {
		ml.entries = append(ml.entries[:0], ml.entries[len(ml.entries)-ml.limit:]...)
	}
}

// Entries returns all retained entries.
func (ml *MatchLog) Entries() []LogEntry {
	return ml.entries
}

// Len is the number of retained entries.
func (ml *MatchLog) Len() int {
	return len(ml.entries)
}

// Select returns the entries q matches, oldest first.
func (ml *MatchLog) Select(q Query) []LogEntry {
	var out []LogEntry
	for _, e := range ml.entries {
		if q.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Count is len(Select(q)) without the allocation.
func (ml *MatchLog) Count(q Query) int {
	n := 0
	for _, e := range ml.entries {
		if q.match(e) {
			n++
		}
	}
	return n
}

// First returns the oldest entry q matches.
func (ml *MatchLog) First(q Query) (LogEntry, bool) {
	for _, e := range ml.entries {
		if q.match(e) {
			return e, true
		}
	}
	return LogEntry{}, false
}

// Last returns the newest entry q matches.
func (ml *MatchLog) Last(q Query) (LogEntry, bool) {
	for i := len(ml.entries) - 1; i >= 0; i-- {
		if q.match(ml.entries[i]) {
			return ml.entries[i], true
		}
	}
	return LogEntry{}, false
}

// PerSide counts entries of kind for each paddle, indexed by Side.
// Entries without a side are not counted.
func (ml *MatchLog) PerSide(kind EventKind) [2]int {
	var n [2]int
	for _, e := range ml.entries {
		if e.Kind == kind && (e.Side == SideLeft || e.Side == SideRight) {
			n[e.Side]++
		}
	}
	return n
}

// Format renders the entries q matches, one line each.
func (ml *MatchLog) Format(q Query) string {
	var sb strings.Builder
	for _, e := range ml.entries {
		if q.match(e) {
			sb.WriteString(e.String())
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
