package league

import (
	"math"

	rand "math/rand/v2"

	"github.com/lox/streetbook/internal/lines"
)

const (
	baseScore     = 21.0
	scoreVariance = 10.0
	homeBoost     = 3.0
)

// Simulate plays out a matchup and returns the final score. Expected
// points come from the offense/defense gap against a league-average 75
// rating; consistency shrinks the normally-distributed variance around
// that expectation. Scores are floored at zero.
func Simulate(rng *rand.Rand, home, away Team) Score {
	homeExpected := baseScore +
		float64(home.Offense-75)/10 +
		float64(75-away.Defense)/10 +
		homeBoost

	awayExpected := baseScore +
		float64(away.Offense-75)/10 +
		float64(75-home.Defense)/10

	homeVar := scoreVariance * (1.5 - float64(home.Consistency)/100)
	awayVar := scoreVariance * (1.5 - float64(away.Consistency)/100)

	return Score{
		Home: clampScore(homeExpected + rng.NormFloat64()*homeVar),
		Away: clampScore(awayExpected + rng.NormFloat64()*awayVar),
	}
}

// SimulateFixed forces the designated winner to a blowout score that
// covers any realistic spread: winner 28-41, margin 10-19.
func SimulateFixed(rng *rand.Rand, winner lines.Side) Score {
	winScore := 28 + rng.IntN(14)
	loseScore := winScore - 10 - rng.IntN(10)

	if winner == lines.Home {
		return Score{Home: winScore, Away: loseScore}
	}
	return Score{Home: loseScore, Away: winScore}
}

func clampScore(v float64) int {
	return int(math.Max(0, math.Round(v)))
}
