package pong

import (
	"fmt"
	"strings"
)

// Stats accumulates rally and score figures from a stream of events.
type Stats struct {
	Games        int
	Serves       int
	Bounces      int
	Hits         [2]int
	Points       [2]int
	Wins         [2]int
	LongestRally int
	MaxSpeed     float64

	rally int
}

// Observe folds events into the totals.
func (s *Stats) Observe(events []Event) {
	for _, e := range events {
		switch e.Kind {
		case EventStart:
			s.Games++
		case EventServe:
			s.Serves++
			s.rally = 0
			s.noteSpeed(e.Speed)
		case EventBounce:
			s.Bounces++
		case EventHit:
			if e.Side == SideLeft || e.Side == SideRight {
				s.Hits[e.Side]++
			}
			s.rally++
			if s.rally > s.LongestRally {
				s.LongestRally = s.rally
			}
			s.noteSpeed(e.Speed)
		case EventScore:
			if e.Side == SideLeft || e.Side == SideRight {
				s.Points[e.Side]++
			}
		case EventWin:
			if e.Side == SideLeft || e.Side == SideRight {
				s.Wins[e.Side]++
			}
		}
	}
}

func (s *Stats) noteSpeed(v float64) {
	if v > s.MaxSpeed {
		s.MaxSpeed = v
	}
}

// TotalHits is the number of paddle returns on both sides.
func (s Stats) TotalHits() int {
	return s.Hits[SideLeft] + s.Hits[SideRight]
}

// TotalPoints is the number of points scored on both sides.
func (s Stats) TotalPoints() int {
	return s.Points[SideLeft] + s.Points[SideRight]
}

// HitsPerPoint is the average rally length. Zero before the first point.
func (s Stats) HitsPerPoint() float64 {
	if s.TotalPoints() == 0 {
		return 0
	}
	return float64(s.TotalHits()) / float64(s.TotalPoints())
}

// Format renders the totals as a short multi-line block.
func (s Stats) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "games=%d serves=%d bounces=%d\n", s.Games, s.Serves, s.Bounces)
	fmt.Fprintf(&sb, "hits: left=%d right=%d  longest_rally=%d  hits_per_point=%.2f\n",
		s.Hits[SideLeft], s.Hits[SideRight], s.LongestRally, s.HitsPerPoint())
	fmt.Fprintf(&sb, "points: left=%d right=%d  wins: left=%d right=%d\n",
		s.Points[SideLeft], s.Points[SideRight], s.Wins[SideLeft], s.Wins[SideRight])
	fmt.Fprintf(&sb, "max_speed=%.1f\n", s.MaxSpeed)
	return sb.String()
}
