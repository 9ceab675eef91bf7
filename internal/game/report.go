package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Pong/internal/pong"
	"github.com/atotto/clipboard"
)

const reportTicks = 600

// matchReport summarises the current match and the last lastTicks of the log
// as plain text, suitable for pasting into a bug report.
func matchReport(snap pong.Snapshot, stats pong.Stats, log *pong.MatchLog, seed uint64, lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = reportTicks
	}
	toTick := snap.Tick
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Pong match report ---\n")
	gameID := snap.GameID
	if gameID == "" {
		gameID = "(demo)"
	}
	fmt.Fprintf(&b, "game=%s seed=%d tick=%d time=%s\n", gameID, seed, snap.Tick, snap.Now)
	fmt.Fprintf(&b, "mode=%s state=%s score=%d-%d missed=%s winner=%s\n",
		snap.Mode, snap.State, snap.Scores[pong.SideLeft], snap.Scores[pong.SideRight], snap.MissedSide, snap.Winner)
	fmt.Fprintf(&b, "ball: pos=(%.1f,%.1f) vel=(%.1f,%.1f) speed=%.1f visible=%v rally=%d\n",
		snap.Ball.X, snap.Ball.Y, snap.Ball.VX, snap.Ball.VY, snap.Ball.Speed, snap.Ball.Visible, snap.Ball.RallyHits)
	fmt.Fprintf(&b, "paddles: left y=%.1f right y=%.1f\n\n", snap.Paddles[pong.SideLeft].Y, snap.Paddles[pong.SideRight].Y)

	b.WriteString("== stats ==\n")
	b.WriteString(stats.Format())

	fmt.Fprintf(&b, "\n== events [%d..%d] ==\n", fromTick, toTick)
	if log == nil || log.Len() == 0 {
		b.WriteString("(no events recorded yet)\n")
		return b.String()
	}
	events := log.Format(pong.Ticks(fromTick, toTick))
	if events == "" {
		events = "(none in range)\n"
	}
	b.WriteString(events)
	return b.String()
}

// copyToClipboard writes text to the system clipboard.
func copyToClipboard(text string) error {
	if text == "" {
		text = " "
	}
	return clipboard.WriteAll(text)
}
