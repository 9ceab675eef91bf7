package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Garsondee/Pong/internal/pong"
	"golang.org/x/term"
)

type runStats struct {
	runIndex int
	seed     int64
	mode     string

	firstServeTick int
	firstHitTick   int
	firstPointTick int
	winTick        int

	stats      pong.Stats
	finalScore [2]int
	winner     pong.Side
}

// ANSI colours, applied only when stdout is a terminal.
const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiBold  = "\033[1m"
)

var useColor bool

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var mode string
	var noColor bool

	flag.IntVar(&runs, "runs", 5, "number of headless match runs")
	flag.IntVar(&ticks, "ticks", 36000, "ticks per run (60 ticks = 1s)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&mode, "mode", "play", "demo | play | track")
	flag.BoolVar(&noColor, "no-color", false, "disable ANSI colours")
	flag.Parse()

	useColor = !noColor && term.IsTerminal(int(os.Stdout.Fd()))

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if !validMode(mode) {
		fmt.Printf("error: unsupported mode %q (supported: demo, play, track)\n", mode)
		return
	}

	fmt.Println(paint("=== Headless Match Report ===", ansiBold))
	fmt.Printf("mode=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", mode, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runMatch(i+1, seed, ticks, mode)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

func validMode(mode string) bool {
	switch mode {
	case "demo", "play", "track":
		return true
	}
	return false
}

// runMatch drives one match with no human input. play starts a game at tick 1
// with idle paddles; track also steers both paddles toward the ball.
func runMatch(runIndex int, seed int64, ticks int, mode string) (runStats, error) {
	opts := []pong.SimOption{pong.WithSimSeed(seed)}
	switch mode {
	case "play":
		opts = append(opts, pong.WithStartAt(1))
	case "track":
		opts = append(opts, pong.WithStartAt(1), pong.WithScript(trackBall))
	}
	ts, err := pong.NewTestSim(opts...)
	if err != nil {
		return runStats{}, err
	}
	ts.RunTicks(ticks)

	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		mode:           mode,
		firstServeTick: firstTick(ts.Log, pong.Kinds(pong.EventServe)),
		firstHitTick:   firstTick(ts.Log, pong.Kinds(pong.EventHit)),
		firstPointTick: firstTick(ts.Log, pong.Kinds(pong.EventScore)),
		winTick:        firstTick(ts.Log, pong.Kinds(pong.EventWin)),
		stats:          ts.Stats,
		finalScore:     ts.Match.Snapshot().Scores,
		winner:         ts.Match.Winner(),
	}, nil
}

// trackBall follows the ball with a 6px dead zone. It misses only when the
// ball outruns the paddle.
func trackBall(_ int, s pong.Snapshot) pong.Input {
	by := s.Field.CenterY()
	if s.Ball.Visible {
		by = s.Ball.Y
	}
	l, r := s.Paddles[pong.SideLeft].Y, s.Paddles[pong.SideRight].Y
	return pong.Input{
		LeftUp:    by < l-6,
		LeftDown:  by > l+6,
		RightUp:   by < r-6,
		RightDown: by > r+6,
	}
}

// firstTick is the tick of the oldest entry q matches, or -1.
func firstTick(log *pong.MatchLog, q pong.Query) int {
	if e, ok := log.First(q); ok {
		return e.Tick
	}
	return -1
}

// detectEndless reports a run where the ball stayed in play for a long rally
// and nobody scored: either both paddles are unbeatable or the serve lines up
// with a parked paddle.
func detectEndless(rs runStats) (bool, string) {
	if rs.mode == "demo" {
		return false, "demo_never_scores"
	}
	if rs.stats.TotalPoints() > 0 {
		return false, fmt.Sprintf("points_scored=%d", rs.stats.TotalPoints())
	}
	if rs.stats.LongestRally < 20 {
		return false, fmt.Sprintf("short_rally=%d", rs.stats.LongestRally)
	}
	return true, fmt.Sprintf("no_points longest_rally=%d max_speed=%.0f", rs.stats.LongestRally, rs.stats.MaxSpeed)
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_serve=%d first_hit=%d first_point=%d win=%d\n",
		rs.firstServeTick, rs.firstHitTick, rs.firstPointTick, rs.winTick)
	fmt.Printf("final_score: %s %d - %d %s\n",
		paint("left", ansiRed), rs.finalScore[pong.SideLeft], rs.finalScore[pong.SideRight], paint("right", ansiBlue))
	if rs.winner != pong.SideNone {
		fmt.Printf("winner: %s\n", paint(rs.winner.String(), sideColor(rs.winner)))
	}
	fmt.Print(rs.stats.Format())
	if endless, reason := detectEndless(rs); endless {
		fmt.Printf("%s (%s)\n", paint("ENDLESS RALLY", ansiBold), reason)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	var total pong.Stats
	serveTicks := make([]int, 0, len(all))
	pointTicks := make([]int, 0, len(all))
	winTicks := make([]int, 0, len(all))
	endless := 0
	maxSpeed := 0.0
	longest := 0

	for _, rs := range all {
		total.Serves += rs.stats.Serves
		total.Bounces += rs.stats.Bounces
		for s := range total.Hits {
			total.Hits[s] += rs.stats.Hits[s]
			total.Points[s] += rs.stats.Points[s]
			total.Wins[s] += rs.stats.Wins[s]
		}
		if rs.stats.MaxSpeed > maxSpeed {
			maxSpeed = rs.stats.MaxSpeed
		}
		if rs.stats.LongestRally > longest {
			longest = rs.stats.LongestRally
		}
		if rs.firstServeTick >= 0 {
			serveTicks = append(serveTicks, rs.firstServeTick)
		}
		if rs.firstPointTick >= 0 {
			pointTicks = append(pointTicks, rs.firstPointTick)
		}
		if rs.winTick >= 0 {
			winTicks = append(winTicks, rs.winTick)
		}
		if ok, _ := detectEndless(rs); ok {
			endless++
		}
	}

	n := len(all)
	fmt.Println(paint("=== Aggregate ===", ansiBold))
	fmt.Printf("runs=%d endless_runs=%d\n", n, endless)
	fmt.Printf("avg_per_run: serves=%.1f bounces=%.1f hits=%.1f points=%.1f\n",
		avg(total.Serves, n), avg(total.Bounces, n), avg(total.TotalHits(), n), avg(total.TotalPoints(), n))
	fmt.Printf("points: left=%d right=%d  wins: left=%d right=%d\n",
		total.Points[pong.SideLeft], total.Points[pong.SideRight], total.Wins[pong.SideLeft], total.Wins[pong.SideRight])
	fmt.Printf("hits_per_point=%.2f longest_rally=%d max_speed=%.1f\n", total.HitsPerPoint(), longest, maxSpeed)
	fmt.Printf("phase_marker_avg_ticks: first_serve=%s first_point=%s win=%s\n",
		avgTickString(serveTicks), avgTickString(pointTicks), avgTickString(winTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func sideColor(s pong.Side) string {
	if s == pong.SideRight {
		return ansiBlue
	}
	return ansiRed
}

func paint(s, code string) string {
	if !useColor {
		return s
	}
	return code + s + ansiReset
}
