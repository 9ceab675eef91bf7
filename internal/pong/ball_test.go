package pong

import (
	"math"
	"testing"
)

func TestSegmentHit_Table(t *testing.T) {
	cases := []struct {
		offset float64
		want   int
	}{
		{0, 0},
		{3.9, 0},
		{4, 1},
		{-0.1, -1},
		{-4, -1},
		{-4.1, -2},
		{13, 3},
		{-13, -3},
		{100, 3},
		{-100, -3},
		{math.Inf(1), 3},
		{math.Inf(-1), -3},
		{math.NaN(), 0},
	}
	for _, tc := range cases {
		if got := SegmentHit(tc.offset, 4, 4); got != tc.want {
			t.Fatalf("SegmentHit(%v) = %d, want %d", tc.offset, got, tc.want)
		}
	}
}

func TestSegmentHit_AlwaysClamped(t *testing.T) {
	for _, max := range []int{1, 2, 4, 7} {
		limit := max - 1
		for off := -500.0; off <= 500; off += 0.37 {
			seg := SegmentHit(off, 4, max)
			if seg < -limit || seg > limit {
				t.Fatalf("max=%d offset=%.2f: segment %d outside [-%d,%d]", max, off, seg, limit, limit)
			}
		}
	}
	if SegmentHit(10, 0, 4) != 0 {
		t.Fatal("zero segment height must not divide")
	}
}

func TestReturnAngle_Left(t *testing.T) {
	if got := ReturnAngle(SideLeft, 3, 15); got != 45 {
		t.Fatalf("left segment 3 = %.1f, want 45", got)
	}
	if got := ReturnAngle(SideLeft, -2, 15); got != -30 {
		t.Fatalf("left segment -2 = %.1f, want -30", got)
	}
}

func TestReturnAngle_RightNormalises(t *testing.T) {
	cases := map[int]float64{-3: -135, -1: -165, 0: 180, 1: 165, 3: 135}
	for seg, want := range cases {
		if got := ReturnAngle(SideRight, seg, 15); got != want {
			t.Fatalf("right segment %d = %.1f, want %.1f", seg, got, want)
		}
	}
}

func TestNormalizeAngle_Range(t *testing.T) {
	for a := -1080.0; a <= 1080; a += 7.3 {
		n := NormalizeAngle(a)
		if n <= -180 || n > 180 {
			t.Fatalf("NormalizeAngle(%.1f) = %.1f outside (-180,180]", a, n)
		}
	}
	if NormalizeAngle(-180) != 180 {
		t.Fatal("-180 should map to 180")
	}
	if NormalizeAngle(math.NaN()) != 0 {
		t.Fatal("NaN should map to 0")
	}
}

func TestUpdateBall_InvisibleStaysPut(t *testing.T) {
	f := mustField(t)
	b := Ball{X: 100, Y: 100, VX: 500, VY: 500}
	got, events := UpdateBall(b, f, DefaultConfig(), [2]Paddle{}, ModePlaying, testDT)
	if got != b || len(events) != 0 {
		t.Fatalf("invisible ball changed: %+v events=%v", got, events)
	}
}

func TestUpdateBall_TopWallBounce(t *testing.T) {
	f := mustField(t)
	b := Ball{X: 320, Y: 5, VY: -300, Speed: 300, Visible: true}
	got, events := UpdateBall(b, f, DefaultConfig(), [2]Paddle{}, ModePlaying, testDT)
	if got.Y != 4 || got.VY != 300 {
		t.Fatalf("after top bounce y=%.1f vy=%.1f, want 4/300", got.Y, got.VY)
	}
	if len(events) != 1 || events[0].Kind != EventBounce {
		t.Fatalf("expected one bounce event, got %v", events)
	}
}

func TestUpdateBall_BottomWallBounce(t *testing.T) {
	f := mustField(t)
	b := Ball{X: 320, Y: 475, VY: 300, Speed: 300, Visible: true}
	got, events := UpdateBall(b, f, DefaultConfig(), [2]Paddle{}, ModeDemo, testDT)
	if got.Y != 476 || got.VY != -300 {
		t.Fatalf("after bottom bounce y=%.1f vy=%.1f, want 476/-300", got.Y, got.VY)
	}
	if len(events) != 1 || events[0].Kind != EventBounce {
		t.Fatalf("expected one bounce event, got %v", events)
	}
}

func TestUpdateBall_LeftPaddleHit(t *testing.T) {
	f := mustField(t)
	paddles := [2]Paddle{enabledPaddle(SideLeft, f), enabledPaddle(SideRight, f)}
	b := Ball{X: 56, Y: 253, VX: -500, Speed: 500, Visible: true}
	got, events := UpdateBall(b, f, DefaultConfig(), paddles, ModePlaying, testDT)
	if len(events) != 1 || events[0].Kind != EventHit || events[0].Side != SideLeft {
		t.Fatalf("expected one left hit, got %v", events)
	}
	if events[0].Angle != 45 {
		t.Fatalf("hit angle %.1f, want 45", events[0].Angle)
	}
	want := 500 * math.Cos(math.Pi/4)
	if math.Abs(got.VX-want) > 1e-9 || math.Abs(got.VY-want) > 1e-9 {
		t.Fatalf("velocity (%.3f,%.3f), want (%.3f,%.3f)", got.VX, got.VY, want, want)
	}
	if got.X != 58 {
		t.Fatalf("ball should be pushed to the paddle face, x=%.1f", got.X)
	}
	if got.Returns != 1 || got.RallyHits != 1 {
		t.Fatalf("returns=%d rally=%d, want 1/1", got.Returns, got.RallyHits)
	}
}

func TestUpdateBall_RightPaddleHitUpperEdge(t *testing.T) {
	f := mustField(t)
	paddles := [2]Paddle{enabledPaddle(SideLeft, f), enabledPaddle(SideRight, f)}
	b := Ball{X: 584, Y: 227, VX: 500, Speed: 500, Visible: true}
	got, events := UpdateBall(b, f, DefaultConfig(), paddles, ModePlaying, testDT)
	if len(events) != 1 || events[0].Kind != EventHit || events[0].Side != SideRight {
		t.Fatalf("expected one right hit, got %v", events)
	}
	if events[0].Angle != -135 {
		t.Fatalf("hit angle %.1f, want -135", events[0].Angle)
	}
	if got.VX >= 0 || got.VY >= 0 {
		t.Fatalf("ball should leave up and to the left, v=(%.1f,%.1f)", got.VX, got.VY)
	}
	if got.X != 582 {
		t.Fatalf("ball should be pushed to the paddle face, x=%.1f", got.X)
	}
}

func TestUpdateBall_NoHitWhenMovingAway(t *testing.T) {
	f := mustField(t)
	paddles := [2]Paddle{enabledPaddle(SideLeft, f), enabledPaddle(SideRight, f)}
	b := Ball{X: 50, Y: 240, VX: 500, Speed: 500, Visible: true}
	_, events := UpdateBall(b, f, DefaultConfig(), paddles, ModePlaying, testDT)
	if len(events) != 0 {
		t.Fatalf("ball leaving the paddle must not be hit again, got %v", events)
	}
}

func TestUpdateBall_DisabledPaddleIsTransparent(t *testing.T) {
	f := mustField(t)
	paddles := [2]Paddle{NewPaddle(SideLeft, f), NewPaddle(SideRight, f)}
	b := Ball{X: 56, Y: 240, VX: -500, Speed: 500, Visible: true}
	got, events := UpdateBall(b, f, DefaultConfig(), paddles, ModeDemo, testDT)
	if len(events) != 0 || got.X != 51 {
		t.Fatalf("disabled paddle collided: x=%.1f events=%v", got.X, events)
	}
}

func TestUpdateBall_FastBallDoesNotTunnel(t *testing.T) {
	f := mustField(t)
	paddles := [2]Paddle{enabledPaddle(SideLeft, f), enabledPaddle(SideRight, f)}
	// 3000 px/s moves 30px per tick: from 70 to 40, straight through the paddle.
	b := Ball{X: 70, Y: 240, VX: -3000, Speed: 3000, Visible: true}
	_, events := UpdateBall(b, f, DefaultConfig(), paddles, ModePlaying, testDT)
	if len(events) != 1 || events[0].Kind != EventHit {
		t.Fatalf("expected a hit, got %v", events)
	}
}

func TestUpdateBall_EdgeOverlapReturns(t *testing.T) {
	f := mustField(t)
	paddles := [2]Paddle{enabledPaddle(SideLeft, f), enabledPaddle(SideRight, f)}
	// Centre already behind the back face (46) but the ball's edge still touches it.
	b := Ball{X: 45, Y: 240, VX: -500, Speed: 500, Visible: true}
	got, events := UpdateBall(b, f, DefaultConfig(), paddles, ModePlaying, testDT)
	if len(events) != 1 || events[0].Kind != EventHit || events[0].Side != SideLeft {
		t.Fatalf("expected an edge return, got %v", events)
	}
	if got.X != 58 || got.VX <= 0 {
		t.Fatalf("edge return should come out of the front face, x=%.1f vx=%.1f", got.X, got.VX)
	}

	// Clear of the paddle box for the whole tick: the point is lost.
	b = Ball{X: 41, Y: 240, VX: -500, Speed: 500, Visible: true}
	got, events = UpdateBall(b, f, DefaultConfig(), paddles, ModePlaying, testDT)
	if len(events) != 0 || got.X != 36 {
		t.Fatalf("ball past the paddle must not be returned: x=%.1f events=%v", got.X, events)
	}
}

func TestHitPaddle_SpeedIncrementEveryFourthReturn(t *testing.T) {
	f := mustField(t)
	cfg := DefaultConfig()
	p := enabledPaddle(SideLeft, f)
	b := Ball{X: 60, Y: 240, VX: -500, Speed: 500, Visible: true}
	for hit := 1; hit <= 12; hit++ {
		b, _ = hitPaddle(b, p, f, cfg)
		wantSpeed := 500 + 25*float64(hit/4)
		if b.Speed != wantSpeed {
			t.Fatalf("after hit %d speed=%.1f, want %.1f", hit, b.Speed, wantSpeed)
		}
		if b.Returns != hit%4 {
			t.Fatalf("after hit %d returns=%d, want %d", hit, b.Returns, hit%4)
		}
	}
	if b.RallyHits != 12 {
		t.Fatalf("rally hits=%d, want 12", b.RallyHits)
	}
}

func TestHitPaddle_UsesCurrentSpeed(t *testing.T) {
	f := mustField(t)
	p := enabledPaddle(SideLeft, f)
	b := Ball{X: 60, Y: 240, VX: -100, Speed: 725, Visible: true}
	b, _ = hitPaddle(b, p, f, DefaultConfig())
	if math.Abs(math.Hypot(b.VX, b.VY)-725) > 1e-9 {
		t.Fatalf("return speed %.3f, want 725", math.Hypot(b.VX, b.VY))
	}
}

func TestUpdateBall_DemoSidesBounce(t *testing.T) {
	f := mustField(t)
	b := Ball{X: 2, Y: 240, VX: -300, Speed: 300, Visible: true}
	got, events := UpdateBall(b, f, DefaultConfig(), [2]Paddle{}, ModeDemo, testDT)
	if got.X != 4 || got.VX != 300 {
		t.Fatalf("demo left wall: x=%.1f vx=%.1f, want 4/300", got.X, got.VX)
	}
	for _, e := range events {
		if e.Kind == EventOut {
			t.Fatal("demo must never report out of bounds")
		}
	}

	b = Ball{X: 638, Y: 240, VX: 300, Speed: 300, Visible: true}
	got, _ = UpdateBall(b, f, DefaultConfig(), [2]Paddle{}, ModeDemo, testDT)
	if got.X != 636 || got.VX != -300 {
		t.Fatalf("demo right wall: x=%.1f vx=%.1f, want 636/-300", got.X, got.VX)
	}
}

func TestUpdateBall_PlayingOutOfBounds(t *testing.T) {
	f := mustField(t)
	b := Ball{X: 1, Y: 240, VX: -300, Speed: 300, Visible: true}
	_, events := UpdateBall(b, f, DefaultConfig(), [2]Paddle{}, ModePlaying, testDT)
	if len(events) != 1 || events[0].Kind != EventOut || events[0].Side != SideLeft {
		t.Fatalf("expected out on the left, got %v", events)
	}

	b = Ball{X: 639, Y: 240, VX: 300, Speed: 300, Visible: true}
	_, events = UpdateBall(b, f, DefaultConfig(), [2]Paddle{}, ModePlaying, testDT)
	if len(events) != 1 || events[0].Kind != EventOut || events[0].Side != SideRight {
		t.Fatalf("expected out on the right, got %v", events)
	}
}
