package pong

import "time"

// TestSim is a headless harness around a Match. It drives the same Tick the
// windowed game uses, with deterministic seeding, scripted input, and a
// structured log of every event.
type TestSim struct {
	Match *Match
	Log   *MatchLog
	Stats Stats

	cfg     Config
	seed    uint64
	dt      time.Duration
	startAt int
	script  func(tick int, snap Snapshot) Input
}

// SimOption is a builder function applied to a TestSim during construction.
type SimOption func(*TestSim)

// WithFieldSize sets the playfield dimensions.
func WithFieldSize(w, h float64) SimOption {
	return func(ts *TestSim) {
		ts.cfg.Width = w
		ts.cfg.Height = h
	}
}

// WithConfig replaces the whole match config. Apply before WithFieldSize to
// combine the two.
func WithConfig(cfg Config) SimOption {
	return func(ts *TestSim) {
		ts.cfg = cfg
	}
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return func(ts *TestSim) {
		ts.seed = uint64(seed)
	}
}

// WithTickRate sets the number of ticks per simulated second.
func WithTickRate(tps int) SimOption {
	return func(ts *TestSim) {
		if tps > 0 {
			ts.dt = time.Second / time.Duration(tps)
		}
	}
}

// WithStartAt presses start on the given tick (1-based). Zero never starts a game.
func WithStartAt(tick int) SimOption {
	return func(ts *TestSim) {
		ts.startAt = tick
	}
}

// WithScript supplies paddle input for every tick.
func WithScript(fn func(tick int, snap Snapshot) Input) SimOption {
	return func(ts *TestSim) {
		ts.script = fn
	}
}

// NewTestSim builds the harness. It fails only on an invalid config.
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		cfg:  DefaultConfig(),
		seed: 1,
		dt:   time.Second / 60,
		Log:  NewMatchLog(0),
	}
	for _, o := range opts {
		o(ts)
	}
	m, err := NewMatch(ts.cfg, WithSeed(ts.seed))
	if err != nil {
		return nil, err
	}
	ts.Match = m
	return ts, nil
}

// RunTicks advances the simulation n ticks and returns the events produced.
func (ts *TestSim) RunTicks(n int) []Event {
	var all []Event
	for i := 0; i < n; i++ {
		all = append(all, ts.step()...)
	}
	return all
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.step()
		if predicate(ts) {
			return ts.Match.TickCount()
		}
	}
	return -1
}

func (ts *TestSim) step() []Event {
	tick := ts.Match.TickCount() + 1
	var in Input
	if ts.script != nil {
		in = ts.script(tick, ts.Match.Snapshot())
	}
	if ts.startAt > 0 && tick == ts.startAt {
		in.Start = true
	}
	events := ts.Match.Tick(in, ts.dt)
	ts.Log.Record(events...)
	ts.Stats.Observe(events)
	return events
}

// CurrentTick returns the number of ticks run so far.
func (ts *TestSim) CurrentTick() int {
	return ts.Match.TickCount()
}

// TickDuration is the simulated time per tick.
func (ts *TestSim) TickDuration() time.Duration {
	return ts.dt
}
