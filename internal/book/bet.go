package book

import (
	"fmt"
	"math"

	rand "math/rand/v2"

	"github.com/lox/streetbook/internal/league"
	"github.com/lox/streetbook/internal/lines"
	"github.com/lox/streetbook/internal/randutil"
)

const (
	// MinBet is the smallest stake the book accepts.
	MinBet = 50

	// MaxBetMultiplier caps any single stake at this fraction of the
	// bookie's bankroll.
	MaxBetMultiplier = 0.1

	// Juice is the standard -110 commission on winning bets.
	Juice = 0.1
)

// Bet is a wager held by the book. Result is set exactly once when the
// game resolves and never changes afterwards.
type Bet struct {
	ID         string           `json:"id"`
	CustomerID string           `json:"customerId"`
	GameID     string           `json:"gameId"`
	Amount     int              `json:"amount"`
	Pick       lines.Side       `json:"pick"`
	Line       float64          `json:"line"` // the line in effect when placed
	DayPlaced  int              `json:"dayPlaced"`
	Result     lines.BetOutcome `json:"result,omitempty"`
	IsPaid     bool             `json:"isPaid"`
}

// BetRequest is a customer's intent to wager, before the book stamps the
// line and books it.
type BetRequest struct {
	GameID string
	Amount int
	Pick   lines.Side
}

// GenerateCustomerBets decides what a customer wagers across this week's
// open games. Sharps hunt mispriced lines and size up with the edge;
// everyone else splits favorite/underdog by bias. Stakes are rounded to
// the nearest $10 and rejected below the MinBet floor.
func GenerateCustomerBets(rng *rand.Rand, c Customer, games []league.Game, bookieBankroll int) []BetRequest {
	var bets []BetRequest

	bookieMax := int(math.Round(float64(bookieBankroll) * MaxBetMultiplier))
	effectiveMax := min(c.MaxBet, bookieMax, c.Bankroll)
	if effectiveMax < MinBet {
		return bets
	}

	for _, game := range games {
		betChance := 0.7
		if c.Type == Whale {
			betChance = 0.5
		}
		if !randutil.Chance(rng, betChance) {
			continue
		}

		value := game.Value()

		var pick lines.Side
		var stake int

		if value != nil && randutil.Chance(rng, c.Sharpness) {
			// Sharp enough to spot the edge; bet bigger the wider it is,
			// capping the contribution at 3 points.
			pick = value.Side
			mult := math.Min(value.Points/3, 1)
			stake = int(math.Round(MinBet + float64(effectiveMax-MinBet)*(0.5+mult*0.5)))
		} else {
			favorite := lines.Away
			if game.YourLine < 0 {
				favorite = lines.Home
			}
			if randutil.Chance(rng, c.FavoritesBias) {
				pick = favorite
			} else {
				pick = favorite.Other()
			}
			stake = int(math.Round(MinBet + rng.Float64()*float64(effectiveMax-MinBet)))
		}

		stake = (stake + 5) / 10 * 10
		if stake >= MinBet {
			bets = append(bets, BetRequest{GameID: game.ID, Amount: stake, Pick: pick})
		}
	}

	return bets
}

// ResolveBets grades every ungraded bet against a completed game's final
// score. Requesting resolution on an unfinished game is a programming
// error.
func ResolveBets(game league.Game, bets []Bet) ([]Bet, error) {
	if !game.IsComplete() {
		return nil, fmt.Errorf("cannot resolve bets for incomplete game %s", game.ID)
	}

	resolved := make([]Bet, len(bets))
	for i, bet := range bets {
		if bet.Result == lines.Ungraded {
			bet.Result = lines.Grade(game.Final.Home, game.Final.Away, bet.Pick, bet.Line)
		}
		resolved[i] = bet
	}
	return resolved, nil
}

// Payout computes the settlement for a graded bet from the bookie's
// ledger: positive means the book pays the customer, negative means the
// customer owes the book, zero on a push. A winning customer collects
// amount/(1+juice), modelling -110 odds.
func Payout(bet Bet, juice float64) float64 {
	switch bet.Result {
	case lines.Win:
		return float64(bet.Amount) / (1 + juice)
	case lines.Loss:
		return -float64(bet.Amount)
	default:
		return 0
	}
}
