// Package lines implements point-spread math: deriving lines from power
// ratings, tracking market moves as news breaks, spotting mispriced lines,
// and grading bets against the spread.
package lines

import (
	"fmt"
	"math"
)

// HomeAdvantage is the flat home-field edge baked into every true line,
// in points.
const HomeAdvantage = 3.0

// Side identifies which side of a matchup a bet or value edge is on.
type Side string

const (
	Home Side = "home"
	Away Side = "away"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Home {
		return Away
	}
	return Home
}

// BetOutcome is the three-valued result of grading a bet against the
// spread. The zero value means the bet has not been graded yet.
type BetOutcome string

const (
	Ungraded BetOutcome = ""
	Win      BetOutcome = "win"
	Loss     BetOutcome = "loss"
	Push     BetOutcome = "push"
)

// RoundHalf snaps a line to the nearest half point.
func RoundHalf(line float64) float64 {
	return math.Round(line*2) / 2
}

// TrueLine converts a power-rating gap into a point spread. Positive means
// the home team is favored by that many points. Roughly 2.5 rating points
// equal one point of spread.
func TrueLine(homePower, awayPower float64) float64 {
	diff := (homePower - awayPower) / 2.5
	return RoundHalf(diff + HomeAdvantage)
}

// MarketLine is the true line shifted by the cumulative impact of revealed
// news, snapped back to the half-point grid.
func MarketLine(trueLine, revealedImpact float64) float64 {
	return RoundHalf(trueLine + revealedImpact)
}

// Value describes a mispriced line: which side a sharp bettor would take
// and by how many points the line is off.
type Value struct {
	Side   Side
	Points float64
}

// FindValue reports whether a bookie's line is far enough from the true
// line to attract sharp money. Lines within 1.5 points are considered
// efficiently priced and return nil.
func FindValue(yourLine, trueLine float64) *Value {
	diff := yourLine - trueLine
	if math.Abs(diff) <= 1.5 {
		return nil
	}
	if diff > 0 {
		// Giving the home side too many points, away has value.
		return &Value{Side: Away, Points: diff}
	}
	return &Value{Side: Home, Points: -diff}
}

// Grade settles a bet against the spread. The line is from the home
// perspective. A cover margin of exactly zero is a push.
func Grade(homeScore, awayScore int, pick Side, line float64) BetOutcome {
	margin := float64(homeScore - awayScore)

	var cover float64
	if pick == Home {
		cover = margin + line
	} else {
		cover = -margin - line
	}

	switch {
	case cover == 0:
		return Push
	case cover > 0:
		return Win
	default:
		return Loss
	}
}

// FormatSpread renders a line from one side's perspective, e.g. "-7.5",
// "+3" or "PK" for a pick'em.
func FormatSpread(line float64, perspective Side) string {
	adjusted := line
	if perspective == Home {
		adjusted = -line
	}
	if adjusted == 0 {
		return "PK"
	}
	if adjusted > 0 {
		return fmt.Sprintf("+%g", adjusted)
	}
	return fmt.Sprintf("%g", adjusted)
}
