package pong

import (
	"math"
	"time"
)

// Ball is the single ball of a match. The velocity magnitude is Speed at the
// moment of the last serve or return.
type Ball struct {
	X, Y    float64
	VX, VY  float64
	Speed   float64
	Visible bool

	Returns   int // paddle hits since the last speed increase
	RallyHits int // paddle hits since the serve
}

// SegmentHit discretises the vertical offset between ball and paddle centre.
// The result is always within [-(segmentsMax-1), segmentsMax-1].
func SegmentHit(offset, segmentHeight float64, segmentsMax int) int {
	limit := segmentsMax - 1
	if limit < 0 {
		limit = 0
	}
	if math.IsNaN(offset) || !(segmentHeight > 0) {
		return 0
	}
	seg := math.Floor(offset / segmentHeight)
	switch {
	case seg > float64(limit):
		return limit
	case seg < float64(-limit):
		return -limit
	}
	return int(seg)
}

// ReturnAngle is the outgoing direction in degrees after a paddle hit on the
// given segment. 0 is straight right; the result is in (-180, 180].
func ReturnAngle(side Side, segment int, segmentAngle float64) float64 {
	a := float64(segment) * segmentAngle
	if side == SideRight {
		return NormalizeAngle(180 - a)
	}
	return NormalizeAngle(a)
}

// NormalizeAngle maps any angle in degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	}
	if deg > 180 {
		deg -= 360
	}
	return deg
}

// VelocityFromAngle converts a direction in degrees and a speed into a velocity
// in screen space (y grows downward).
func VelocityFromAngle(deg, speed float64) (vx, vy float64) {
	rad := deg * math.Pi / 180
	return speed * math.Cos(rad), speed * math.Sin(rad)
}

// UpdateBall advances the ball one tick and resolves its collisions. The mode
// decides the side edges: Demo bounces the ball back, Playing lets it leave and
// reports an EventOut for the side it left through.
func UpdateBall(b Ball, f Field, cfg Config, paddles [2]Paddle, mode Mode, dt time.Duration) (Ball, []Event) {
	if !b.Visible {
		return b, nil
	}
	var events []Event
	secs := dt.Seconds()
	prevX := b.X
	b.X += b.VX * secs
	b.Y += b.VY * secs
	r := f.BallSize / 2

	// Top and bottom walls.
	if b.Y < r {
		b.Y = r
		b.VY = math.Abs(b.VY)
		events = append(events, Event{Kind: EventBounce, Side: SideNone, X: b.X, Y: b.Y, Speed: b.Speed})
	} else if b.Y > f.Height-r {
		b.Y = f.Height - r
		b.VY = -math.Abs(b.VY)
		events = append(events, Event{Kind: EventBounce, Side: SideNone, X: b.X, Y: b.Y, Speed: b.Speed})
	}

	// Paddles.
	for _, p := range paddles {
		if !p.Enabled || !headingToward(b, p) || !sweptOverlap(prevX, b, r, p) {
			continue
		}
		var hit Event
		b, hit = hitPaddle(b, p, f, cfg)
		events = append(events, hit)
		break
	}

	// Side edges.
	switch mode {
	case ModeDemo:
		if b.X < r {
			b.X = r
			b.VX = math.Abs(b.VX)
			events = append(events, Event{Kind: EventBounce, Side: SideNone, X: b.X, Y: b.Y, Speed: b.Speed})
		} else if b.X > f.Width-r {
			b.X = f.Width - r
			b.VX = -math.Abs(b.VX)
			events = append(events, Event{Kind: EventBounce, Side: SideNone, X: b.X, Y: b.Y, Speed: b.Speed})
		}
	case ModePlaying:
		if b.X < 0 {
			events = append(events, Event{Kind: EventOut, Side: SideLeft, X: b.X, Y: b.Y, Speed: b.Speed})
		} else if b.X > f.Width {
			events = append(events, Event{Kind: EventOut, Side: SideRight, X: b.X, Y: b.Y, Speed: b.Speed})
		}
	}
	return b, events
}

func headingToward(b Ball, p Paddle) bool {
	if p.Side == SideLeft {
		return b.VX < 0
	}
	return b.VX > 0
}

// sweptOverlap tests the box the ball covered horizontally this tick against
// the paddle, so a fast ball cannot tunnel through it.
func sweptOverlap(prevX float64, b Ball, r float64, p Paddle) bool {
	x0, x1 := math.Min(prevX, b.X)-r, math.Max(prevX, b.X)+r
	if x1 < p.X-p.Width/2 || x0 > p.X+p.Width/2 {
		return false
	}
	return b.Y+r >= p.Top() && b.Y-r <= p.Bottom()
}

// hitPaddle applies a paddle return: segment angle, current speed, push-out,
// and the speed-up every ReturnsPerIncrement hits.
func hitPaddle(b Ball, p Paddle, f Field, cfg Config) (Ball, Event) {
	seg := SegmentHit(b.Y-p.Y, cfg.SegmentHeight, cfg.SegmentsMax)
	angle := ReturnAngle(p.Side, seg, cfg.SegmentAngle)
	b.VX, b.VY = VelocityFromAngle(angle, b.Speed)

	r := f.BallSize / 2
	if p.Side == SideLeft {
		b.X = p.X + p.Width/2 + r
	} else {
		b.X = p.X - p.Width/2 - r
	}

	b.Returns++
	b.RallyHits++
	if b.Returns >= cfg.ReturnsPerIncrement {
		b.Speed += f.SpeedIncrement
		b.Returns = 0
	}
	return b, Event{Kind: EventHit, Side: p.Side, X: b.X, Y: b.Y, Angle: angle, Speed: b.Speed}
}
