package pong

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// Mode is the current top-level loop. Exactly one mode is current, and it alone
// decides whether the side edges bounce the ball (Demo) or score (Playing).
type Mode int

const (
	ModeDemo Mode = iota
	ModePlaying
)

func (m Mode) String() string {
	if m == ModePlaying {
		return "playing"
	}
	return "demo"
}

// State is the fine-grained state reported to observers.
type State int

const (
	StateDemo          State = iota // attract loop, ball in flight
	StateAwaitingServe              // ball reset, serve timer pending
	StatePlaying                    // scored game, ball in flight
	StateRoundOver                  // target score reached; left immediately for Demo
)

func (s State) String() string {
	switch s {
	case StateDemo:
		return "demo"
	case StateAwaitingServe:
		return "awaiting_serve"
	case StatePlaying:
		return "playing"
	case StateRoundOver:
		return "round_over"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Input is the polled control state for one tick.
type Input struct {
	LeftUp    bool
	LeftDown  bool
	RightUp   bool
	RightDown bool
	Start     bool // edge-triggered start request (click, space)
}

// serveTimer is a one-shot deadline on the match clock. Only the timer whose
// generation matches the match's current generation may fire.
type serveTimer struct {
	gen      uint64
	deadline time.Duration
	armed    bool
}

// Match owns all simulation state. It is not safe for concurrent use; a single
// caller drives it one tick at a time.
type Match struct {
	cfg   Config
	field Field
	rng   *rand.Rand

	mode  Mode
	state State
	tick  int
	now   time.Duration

	ball    Ball
	paddles [2]Paddle
	scores  [2]int
	missed  Side
	winner  Side

	instructions bool
	gameID       uuid.UUID

	gen     uint64
	timer   serveTimer
	pending []Event
}

// MatchOption customises a Match at construction.
type MatchOption func(*Match)

// WithSeed makes serve positions and angles reproducible.
func WithSeed(seed uint64) MatchOption {
	return func(m *Match) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// NewMatch validates the config, builds the field, and enters Demo.
func NewMatch(cfg Config, opts ...MatchOption) (*Match, error) {
	f, err := NewField(cfg)
	if err != nil {
		return nil, err
	}
	m := &Match{
		cfg:    cfg,
		field:  f,
		rng:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		state:  StateDemo,
		missed: SideNone,
		winner: SideNone,
		paddles: [2]Paddle{
			NewPaddle(SideLeft, f),
			NewPaddle(SideRight, f),
		},
	}
	for _, o := range opts {
		o(m)
	}
	m.startDemo()
	// Nothing has ticked yet; observers start from Snapshot, not from events.
	m.pending = nil
	return m, nil
}

// Tick runs one simulation step in the fixed order
// input → paddles → serve timer → ball → scoring, and returns every event
// produced since the previous Tick.
func (m *Match) Tick(in Input, dt time.Duration) []Event {
	if dt < 0 {
		dt = 0
	}
	m.tick++
	m.now += dt

	// 1. Start trigger, only listened to in Demo.
	if in.Start && m.mode == ModeDemo {
		m.StartGame()
	}

	// 2. Paddles.
	m.paddles[SideLeft] = UpdatePaddle(m.paddles[SideLeft], m.field, in.LeftUp, in.LeftDown, dt)
	m.paddles[SideRight] = UpdatePaddle(m.paddles[SideRight], m.field, in.RightUp, in.RightDown, dt)

	// 3. Serve.
	if m.timer.armed && m.timer.gen == m.gen && m.now >= m.timer.deadline {
		m.serve()
	}

	// 4. Ball and collisions.
	var ballEvents []Event
	m.ball, ballEvents = UpdateBall(m.ball, m.field, m.cfg, m.paddles, m.mode, dt)
	m.emit(ballEvents...)

	// 5. Scoring.
	for _, e := range ballEvents {
		if e.Kind == EventOut {
			m.point(e.Side.Opposite(), e.Side)
			break
		}
	}
	return m.drain()
}

// StartGame leaves Demo for a scored game. It is a no-op while playing.
func (m *Match) StartGame() {
	if m.mode == ModePlaying {
		return
	}
	m.mode = ModePlaying
	m.gameID = uuid.New()
	m.paddles[SideLeft].SetEnabled(true, m.field)
	m.paddles[SideRight].SetEnabled(true, m.field)
	m.missed = SideNone
	m.emit(Event{Kind: EventStart, Side: SideNone})
	m.ResetBall()
	m.scores = [2]int{}
	m.instructions = false
	m.winner = SideNone
}

// ResetBall hides the ball at the centre column and a random height, and arms
// a fresh serve timer. Any earlier unfired timer is discarded.
func (m *Match) ResetBall() {
	m.ball = Ball{
		X:     m.field.CenterX(),
		Y:     m.rng.Float64() * m.field.Height,
		Speed: m.field.BallSpeed,
	}
	m.gen++
	m.timer = serveTimer{gen: m.gen, deadline: m.now + m.cfg.ServeDelay, armed: true}
	m.setState(StateAwaitingServe)
}

func (m *Match) startDemo() {
	m.mode = ModeDemo
	m.paddles[SideLeft].SetEnabled(false, m.field)
	m.paddles[SideRight].SetEnabled(false, m.field)
	m.missed = SideNone
	m.instructions = true
	m.ResetBall()
}

// serve launches the ball toward the side that missed last, or in either
// direction when nobody has missed yet.
func (m *Match) serve() {
	m.timer.armed = false
	angles := m.serveAngles()
	angle := angles[m.rng.Intn(len(angles))]

	m.ball.Visible = true
	m.ball.Speed = m.field.BallSpeed
	m.ball.Returns = 0
	m.ball.RallyHits = 0
	m.ball.VX, m.ball.VY = VelocityFromAngle(angle, m.ball.Speed)
	m.emit(Event{Kind: EventServe, Side: m.missed, X: m.ball.X, Y: m.ball.Y, Angle: angle, Speed: m.ball.Speed})

	if m.mode == ModePlaying {
		m.setState(StatePlaying)
	} else {
		m.setState(StateDemo)
	}
}

func (m *Match) serveAngles() []float64 {
	switch m.missed {
	case SideLeft:
		return m.cfg.ServeAnglesLeft
	case SideRight:
		return m.cfg.ServeAnglesRight
	}
	all := make([]float64, 0, len(m.cfg.ServeAnglesLeft)+len(m.cfg.ServeAnglesRight))
	all = append(all, m.cfg.ServeAnglesRight...)
	return append(all, m.cfg.ServeAnglesLeft...)
}

// point awards one point and either re-serves or ends the game. The win check
// runs after the increment, so exact equality with the target ends the game.
func (m *Match) point(scorer, missed Side) {
	if m.mode != ModePlaying || scorer == SideNone {
		return
	}
	m.ball.Visible = false
	m.scores[scorer]++
	m.missed = missed
	m.emit(Event{Kind: EventScore, Side: scorer, Score: m.scores[scorer]})

	if m.scores[scorer] == m.cfg.ScoreToWin {
		m.winner = scorer
		m.emit(Event{Kind: EventWin, Side: scorer, Score: m.scores[scorer]})
		m.setState(StateRoundOver)
		m.startDemo()
		return
	}
	m.ResetBall()
}

func (m *Match) setState(s State) {
	if s == m.state {
		return
	}
	m.emit(Event{Kind: EventState, Side: SideNone, From: m.state, To: s})
	m.state = s
}

func (m *Match) emit(events ...Event) {
	for _, e := range events {
		e.Tick = m.tick
		m.pending = append(m.pending, e)
	}
}

func (m *Match) drain() []Event {
	out := m.pending
	m.pending = nil
	return out
}

// Snapshot is a value copy of everything a presenter needs.
type Snapshot struct {
	Tick         int
	Now          time.Duration
	Mode         Mode
	State        State
	Field        Field
	Ball         Ball
	Paddles      [2]Paddle
	Scores       [2]int
	MissedSide   Side
	Winner       Side
	Instructions bool
	ServePending bool
	GameID       string
}

// Snapshot copies the current state.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         m.tick,
		Now:          m.now,
		Mode:         m.mode,
		State:        m.state,
		Field:        m.field,
		Ball:         m.ball,
		Paddles:      m.paddles,
		Scores:       m.scores,
		MissedSide:   m.missed,
		Winner:       m.winner,
		Instructions: m.instructions,
		ServePending: m.timer.armed,
	}
	if m.gameID != uuid.Nil {
		s.GameID = m.gameID.String()
	}
	return s
}

// Mode is the current top-level loop.
func (m *Match) Mode() Mode { return m.mode }

// State is the fine-grained state last reported through EventState.
func (m *Match) State() State { return m.state }

// Field is the geometry built from the config at construction.
func (m *Match) Field() Field { return m.field }

// Config is the config the match was built from.
func (m *Match) Config() Config { return m.cfg }

// Ball returns a copy of the ball.
func (m *Match) Ball() Ball { return m.ball }

// Paddle returns a copy of the paddle on side s. s must be SideLeft or SideRight.
func (m *Match) Paddle(s Side) Paddle { return m.paddles[s] }

// Score is the current score of side s. s must be SideLeft or SideRight.
func (m *Match) Score(s Side) int { return m.scores[s] }

// MissedSide is the side that conceded the last point, or SideNone since the
// last game start or demo entry.
func (m *Match) MissedSide() Side { return m.missed }

// Winner is the side that won the last game, or SideNone.
func (m *Match) Winner() Side { return m.winner }

// Now is the simulated time: the sum of every dt passed to Tick.
func (m *Match) Now() time.Duration { return m.now }

// TickCount is the number of ticks run so far.
func (m *Match) TickCount() int { return m.tick }

// ServePending reports whether a serve timer is armed and not yet fired.
func (m *Match) ServePending() bool { return m.timer.armed }

// InstructionsVisible reports whether the start instructions should show.
func (m *Match) InstructionsVisible() bool { return m.instructions }
