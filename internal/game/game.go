package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Garsondee/Pong/internal/config"
	"github.com/Garsondee/Pong/internal/pong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// statusTicks is how long a status message stays on screen (~2s at 60 TPS).
const statusTicks = 120

// matchLogLimit bounds the in-memory event log used for reports.
const matchLogLimit = 2000

// Game adapts a pong.Match to ebiten's Update/Draw loop.
type Game struct {
	cfg   config.Config
	seed  uint64
	match *pong.Match

	input  pong.InputSource
	screen *screenRenderer
	sounds *soundBank

	log   *pong.MatchLog
	stats pong.Stats
	feed  *EventFeed

	showFeed    bool
	status      string
	statusUntil int
}

// New builds the match from cfg. A zero seed picks one from the clock.
func New(cfg config.Config, seed uint64) (*Game, error) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	m, err := pong.NewMatch(cfg.Match, pong.WithSeed(seed))
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	g := &Game{
		cfg:    cfg,
		seed:   seed,
		match:  m,
		input:  keyInput{},
		screen: newScreenRenderer(m.Field()),
		sounds: newSoundBank(cfg.Muted),
		log:    pong.NewMatchLog(matchLogLimit),
		feed:   NewEventFeed(),
	}
	pong.Present(m.Snapshot(), g.screen)
	slog.Info("match ready", "seed", seed, "width", cfg.Match.Width, "height", cfg.Match.Height, "scoreToWin", cfg.Match.ScoreToWin)
	return g, nil
}

func (g *Game) Update() error {
	if err := g.handleShellKeys(); err != nil {
		return err
	}
	dt := time.Second / time.Duration(ebiten.TPS())
	events := pong.Step(g.match, g.input, g.screen, g.sounds, dt)
	g.observe(events)
	return nil
}

// observe feeds the tick's events to the log, the stats, the on-screen feed,
// and slog.
func (g *Game) observe(events []pong.Event) {
	if len(events) == 0 {
		return
	}
	g.log.Record(events...)
	g.stats.Observe(events)
	g.feed.Record(events)
	for _, e := range events {
		switch e.Kind {
		case pong.EventStart:
			slog.Info("game started", "game", g.match.Snapshot().GameID)
		case pong.EventScore:
			slog.Info("point", "side", e.Side, "score", e.Score)
		case pong.EventWin:
			slog.Info("game won", "side", e.Side, "score", e.Score, "longestRally", g.stats.LongestRally)
		case pong.EventState:
			slog.Debug("state", "from", e.From, "to", e.To, "tick", e.Tick)
		}
	}
}

// handleShellKeys processes the keys that belong to the window rather than
// to the match. Esc ends the run loop.
func (g *Game) handleShellKeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if g.sounds.ToggleMute() {
			g.setStatus("sound off")
		} else {
			g.setStatus("sound on")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.showFeed = !g.showFeed
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		report := matchReport(g.match.Snapshot(), g.stats, g.log, g.seed, reportTicks)
		if err := copyToClipboard(report); err != nil {
			slog.Warn("copy report", "err", err)
			g.setStatus("clipboard unavailable")
		} else {
			g.setStatus("report copied")
		}
	}
	return nil
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.match.TickCount() + statusTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.draw(screen)
	f := g.match.Field()
	if g.showFeed {
		g.feed.Draw(screen, int(f.Width)-feedPanelWidth, int(f.TopGap), int(f.Height-f.TopGap))
	}
	if g.status != "" && g.match.TickCount() < g.statusUntil {
		ebitenutil.DebugPrintAt(screen, g.status, 6, int(f.Height)-18)
	}
}

// Layout keeps the logical screen at the field size; ebiten scales it to
// the window.
func (g *Game) Layout(_, _ int) (int, int) {
	f := g.match.Field()
	return int(f.Width), int(f.Height)
}
