package league

import (
	"github.com/lox/streetbook/internal/lines"
)

// Score is a final score. Games carry a nil *Score until simulated.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Winner returns the winning side, or "" on a tie.
func (s Score) Winner() lines.Side {
	switch {
	case s.Home > s.Away:
		return lines.Home
	case s.Away > s.Home:
		return lines.Away
	default:
		return ""
	}
}

// Game is a single scheduled matchup. Teams are referenced by ID; the
// authoritative Team records live on the aggregate state.
type Game struct {
	ID     string `json:"id"`
	Week   int    `json:"week"`
	HomeID string `json:"homeId"`
	AwayID string `json:"awayId"`

	TrueLine   float64 `json:"trueLine"`   // derived from ratings, fixed at creation
	MarketLine float64 `json:"marketLine"` // true line shifted by revealed news
	YourLine   float64 `json:"yourLine"`   // the line the player hangs

	Final *Score     `json:"final,omitempty"`
	News  []TeamNews `json:"news"`
}

// IsComplete reports whether the game has been played.
func (g Game) IsComplete() bool {
	return g.Final != nil
}

// RevealedImpact sums the line impact of all news items that have broken.
func (g Game) RevealedImpact() float64 {
	var sum float64
	for _, n := range g.News {
		if n.IsRevealed {
			sum += n.Impact
		}
	}
	return sum
}

// RevealNews flips the reveal flag on every news item scheduled on or
// before day, then recomputes the market line. Reveal flags only move
// forward.
func (g *Game) RevealNews(day int) {
	for i := range g.News {
		if g.News[i].Day <= day {
			g.News[i].IsRevealed = true
		}
	}
	g.MarketLine = lines.MarketLine(g.TrueLine, g.RevealedImpact())
}

// Value reports whether the player's current line is mispriced against the
// true line.
func (g Game) Value() *lines.Value {
	return lines.FindValue(g.YourLine, g.TrueLine)
}
