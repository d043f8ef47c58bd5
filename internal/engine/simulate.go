package engine

import (
	"math"

	"github.com/lox/streetbook/internal/book"
	"github.com/lox/streetbook/internal/league"
	"github.com/lox/streetbook/internal/lines"
)

// simulateGames plays every remaining game in the current week, grades the
// open bets, settles with customers, and posts the weekly P&L. Legal only
// on game day.
func (e *Engine) simulateGames(state *GameState) *GameState {
	if state.Day != e.rules.GameDay {
		return state
	}

	next := state.Clone()

	var completed []string
	for i := range next.Games {
		g := &next.Games[i]
		if g.Week != next.Week || g.IsComplete() {
			continue
		}

		var score league.Score
		if outcome, ok := next.FixedOutcome(g.ID); ok {
			score = league.SimulateFixed(e.rng, outcome)
		} else {
			score = league.Simulate(e.rng, *next.Team(g.HomeID), *next.Team(g.AwayID))
		}
		g.Final = &score
		completed = append(completed, g.ID)

		homeWon := score.Home > score.Away
		next.Team(g.HomeID).ApplyResult(homeWon, true)
		next.Team(g.AwayID).ApplyResult(!homeWon, false)

		next.appendLog(LogInfo, "%s %d @ %s %d",
			next.Team(g.AwayID).City, score.Away, next.Team(g.HomeID).City, score.Home)
	}

	summary := e.settleBets(next, completed)
	e.logWeekSummary(next, summary)

	next.Bankroll += summary.moneyIn - summary.moneyOut
	e.checkTerminal(next)

	return next
}

type weekSummary struct {
	totalBets      int
	customerWins   int
	customerLosses int
	moneyIn        int
	moneyOut       int
	unpaid         int
	nonPayers      int
}

// settleBets grades every open bet on the freshly completed games and
// decides, per losing customer, whether they pay up or try to stiff the
// book. The debt list never grows past book.MaxDebts; overflow non-payers
// are written off as paid.
func (e *Engine) settleBets(s *GameState, completed []string) weekSummary {
	var sum weekSummary
	var potentials []NonPayerPopup

	for _, gameID := range completed {
		game := *s.Game(gameID)

		var open []book.Bet
		for _, b := range s.Bets {
			if b.GameID == gameID && b.Result == lines.Ungraded {
				open = append(open, b)
			}
		}

		// Completion was just set, so grading cannot fail.
		resolved, err := book.ResolveBets(game, open)
		if err != nil {
			panic(err)
		}

		for _, bet := range resolved {
			sum.totalBets++
			customer := s.Customer(bet.CustomerID)

			paid := true
			switch bet.Result {
			case lines.Win:
				sum.customerWins++
				sum.moneyOut += int(math.Round(book.Payout(bet, e.rules.Juice)))
			case lines.Loss:
				sum.customerLosses++
				paid = false
				stiffing := customer != nil && e.rng.Float64() > customer.Reliability
				if stiffing && len(s.Debts)+len(potentials) < book.MaxDebts {
					potentials = append(potentials, NonPayerPopup{
						CustomerID:   bet.CustomerID,
						CustomerName: customerName(customer),
						Amount:       bet.Amount,
					})
					sum.unpaid += bet.Amount
				} else {
					// They pay up, or the book is carrying too much paper
					// already and the loss is written off.
					sum.moneyIn += bet.Amount
					paid = true
				}
			}

			for i := range s.Bets {
				if s.Bets[i].ID == bet.ID {
					s.Bets[i].Result = bet.Result
					s.Bets[i].IsPaid = paid
				}
			}
		}
	}

	sum.nonPayers = len(potentials)

	// First non-payer becomes the popup; the rest go straight to the books.
	if len(potentials) > 0 {
		first := potentials[0]
		s.PendingNonPayer = &first

		for _, np := range potentials[1:] {
			if len(s.Debts) >= book.MaxDebts {
				break
			}
			s.Debts = append(s.Debts, book.Debt{
				CustomerID:   np.CustomerID,
				Amount:       np.Amount,
				WeekIncurred: s.Week,
				Location:     e.debtorLocation(s, np.CustomerID),
			})
			s.appendLog(LogDanger, "%s won't pay the $%d they owe!", np.CustomerName, np.Amount)
		}
	}

	return sum
}

func (e *Engine) logWeekSummary(s *GameState, sum weekSummary) {
	pnl := sum.moneyIn - sum.moneyOut

	s.appendLog(LogInfo, "--- WEEK %d SUMMARY ---", s.Week)
	s.appendLog(LogInfo, "Bets: %d total (%d wins, %d losses)", sum.totalBets, sum.customerWins, sum.customerLosses)
	s.appendLog(LogWin, "Money IN: +%s (from %d losing bets)", dollars(sum.moneyIn), sum.customerLosses)
	s.appendLog(LogLoss, "Money OUT: -%s (paid to %d winners)", dollars(sum.moneyOut), sum.customerWins)
	if sum.unpaid > 0 {
		s.appendLog(LogDanger, "Unpaid: %s (%d deadbeats)", dollars(sum.unpaid), sum.nonPayers)
	}

	level := LogWin
	prefix := "+"
	if pnl < 0 {
		level = LogLoss
		prefix = ""
	}
	s.appendLog(level, "NET P&L: %s%s", prefix, dollars(pnl))
}

func (e *Engine) debtorLocation(s *GameState, customerID string) string {
	if c := s.Customer(customerID); c != nil && c.Location != "" {
		return c.Location
	}
	return book.RandomLocation(e.rng)
}

func customerName(c *book.Customer) string {
	if c == nil {
		return "Unknown"
	}
	return c.Name
}
