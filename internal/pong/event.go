package pong

import "fmt"

// EventKind enumerates the side effects a tick can request.
type EventKind int

const (
	EventBounce EventKind = iota // ball reflected off a wall
	EventHit                     // ball returned by a paddle
	EventOut                     // ball left the field through Side
	EventScore                   // Side gained a point
	EventWin                     // Side reached the target score
	EventServe                   // serve delay elapsed, ball launched
	EventStart                   // a real game began
	EventState                   // state machine moved From -> To
)

func (k EventKind) String() string {
	switch k {
	case EventBounce:
		return "bounce"
	case EventHit:
		return "hit"
	case EventOut:
		return "out_of_bounds"
	case EventScore:
		return "score"
	case EventWin:
		return "win"
	case EventServe:
		return "serve"
	case EventStart:
		return "game_start"
	case EventState:
		return "state_change"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Sound names understood by a SoundPlayer.
const (
	SoundBounce = "ballBounce"
	SoundHit    = "ballHit"
	SoundMissed = "ballMissed"
	SoundWin    = "win"
)

// Event is one thing that happened during a tick. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind  EventKind
	Tick  int
	Side  Side
	X, Y  float64
	Angle float64 // degrees, for hits and serves
	Speed float64 // ball speed scalar after the event
	Score int     // new score of Side, for EventScore and EventWin
	From  State
	To    State
}

// Sound returns the sound an event should trigger, if any.
func (e Event) Sound() (string, bool) {
	switch e.Kind {
	case EventBounce:
		return SoundBounce, true
	case EventHit:
		return SoundHit, true
	case EventOut:
		return SoundMissed, true
	case EventWin:
		return SoundWin, true
	}
	return "", false
}

// String formats an event for logs and the on-screen feed.
func (e Event) String() string {
	switch e.Kind {
	case EventBounce:
		return fmt.Sprintf("bounce at (%.0f,%.0f)", e.X, e.Y)
	case EventHit:
		return fmt.Sprintf("%s paddle hit, angle %.0f, speed %.0f", e.Side, e.Angle, e.Speed)
	case EventOut:
		return fmt.Sprintf("%s missed at y=%.0f", e.Side, e.Y)
	case EventScore:
		return fmt.Sprintf("%s scores (%d)", e.Side, e.Score)
	case EventWin:
		return fmt.Sprintf("%s wins with %d", e.Side, e.Score)
	case EventServe:
		return fmt.Sprintf("serve angle %.0f, speed %.0f", e.Angle, e.Speed)
	case EventStart:
		return "game started"
	case EventState:
		return fmt.Sprintf("%s → %s", e.From, e.To)
	}
	return e.Kind.String()
}
