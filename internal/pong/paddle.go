package pong

import (
	"math"
	"time"
)

// Side identifies a paddle, a score slot, or the edge a ball left through.
type Side int

const (
	SideNone  Side = -1
	SideLeft  Side = 0
	SideRight Side = 1
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "none"
}

// Opposite returns the other side. SideNone has no opposite.
func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return SideNone
}

// Paddle is one bat. X is fixed by the Field; Y is the centre of the paddle.
type Paddle struct {
	Side    Side
	X       float64
	Y       float64
	VY      float64 // set directly from input every tick, never integrated
	Width   float64
	Height  float64
	Enabled bool
}

// NewPaddle places a disabled paddle at the vertical centre of its side.
func NewPaddle(side Side, f Field) Paddle {
	x := f.PaddleLeftX
	if side == SideRight {
		x = f.PaddleRightX
	}
	return Paddle{
		Side:   side,
		X:      x,
		Y:      f.CenterY(),
		Width:  f.PaddleWidth,
		Height: f.PaddleHeight,
	}
}

// SetEnabled toggles input handling and collisions. Either way the paddle is
// recentred and stopped.
func (p *Paddle) SetEnabled(enabled bool, f Field) {
	p.Enabled = enabled
	p.Y = f.CenterY()
	p.VY = 0
}

// Top and Bottom are the vertical extents of the paddle.
func (p Paddle) Top() float64 { return p.Y - p.Height/2 }
func (p Paddle) Bottom() float64 { return p.Y + p.Height/2 }

// UpdatePaddle moves a paddle for one tick from the current input snapshot.
// Up and down together cancel out. The result always lies in [TopGap, Height].
func UpdatePaddle(p Paddle, f Field, up, down bool, dt time.Duration) Paddle {
	p.VY = 0
	if p.Enabled {
		switch {
		case up && !down:
			p.VY = -f.PaddleSpeed
		case down && !up:
			p.VY = f.PaddleSpeed
		}
	}
	p.Y = clampPaddleY(p.Y+p.VY*dt.Seconds(), f)
	return p
}

// clampPaddleY keeps y inside the field even when the field is not sized yet.
func clampPaddleY(y float64, f Field) float64 {
	lo := f.TopGap
	if math.IsNaN(lo) || lo < 0 {
		lo = 0
	}
	hi := f.Height
	if math.IsNaN(hi) || hi < lo {
		hi = lo
	}
	switch {
	case math.IsNaN(y), y < lo:
		return lo
	case y > hi:
		return hi
	}
	return y
}
