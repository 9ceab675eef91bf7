package pong

import (
	"strconv"
	"time"
)

// SpriteID names a drawable the core keeps in sync.
type SpriteID int

const (
	SpriteBall SpriteID = iota
	SpritePaddleLeft
	SpritePaddleRight
)

// TextID names a text field the core keeps in sync.
type TextID int

const (
	TextScoreLeft TextID = iota
	TextScoreRight
	TextInstructions
	TextWinnerLeft
	TextWinnerRight
)

// InstructionsText is shown while the attract loop runs.
const InstructionsText = "Click or press SPACE to start\nLeft: A/Z   Right: UP/DOWN"

// Renderer receives sprite positions and text values once per tick.
type Renderer interface {
	DrawSprite(id SpriteID, x, y float64, visible bool)
	SetText(id TextID, value string)
}

// SoundPlayer plays a named sound, fire and forget.
type SoundPlayer interface {
	PlaySound(name string)
}

// InputSource is polled once per tick.
type InputSource interface {
	ReadInput() Input
}

// Step polls input, ticks the match, plays the sounds the tick asked for, and
// pushes the new state to the renderer. r and s may be nil.
func Step(m *Match, in InputSource, r Renderer, s SoundPlayer, dt time.Duration) []Event {
	var input Input
	if in != nil {
		input = in.ReadInput()
	}
	events := m.Tick(input, dt)
	if s != nil {
		for _, e := range events {
			if name, ok := e.Sound(); ok {
				s.PlaySound(name)
			}
		}
	}
	if r != nil {
		Present(m.Snapshot(), r)
	}
	return events
}

// Present syncs every sprite and text field from a snapshot.
func Present(snap Snapshot, r Renderer) {
	r.DrawSprite(SpriteBall, snap.Ball.X, snap.Ball.Y, snap.Ball.Visible)
	left, right := snap.Paddles[SideLeft], snap.Paddles[SideRight]
	r.DrawSprite(SpritePaddleLeft, left.X, left.Y, left.Enabled)
	r.DrawSprite(SpritePaddleRight, right.X, right.Y, right.Enabled)

	r.SetText(TextScoreLeft, strconv.Itoa(snap.Scores[SideLeft]))
	r.SetText(TextScoreRight, strconv.Itoa(snap.Scores[SideRight]))
	instructions := ""
	if snap.Instructions {
		instructions = InstructionsText
	}
	r.SetText(TextInstructions, instructions)
	r.SetText(TextWinnerLeft, WinnerText(snap.Winner, SideLeft))
	r.SetText(TextWinnerRight, WinnerText(snap.Winner, SideRight))
}

// WinnerText is the banner for side, empty unless side won the last game.
func WinnerText(winner, side Side) string {
	if winner != side || side == SideNone {
		return ""
	}
	if side == SideLeft {
		return "Left player wins!"
	}
	return "Right player wins!"
}
