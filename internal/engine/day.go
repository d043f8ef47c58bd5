package engine

import (
	"github.com/google/uuid"
	"github.com/lox/streetbook/internal/book"
	"github.com/lox/streetbook/internal/league"
	"github.com/lox/streetbook/internal/lines"
)

func (e *Engine) setLine(state *GameState, a SetLine) *GameState {
	game := state.Game(a.GameID)
	if game == nil || game.IsComplete() {
		return state
	}

	next := state.Clone()
	next.Game(a.GameID).YourLine = lines.RoundHalf(a.Line)
	return next
}

func (e *Engine) rest(state *GameState) *GameState {
	next := state.Clone()

	before := next.Energy
	next.Energy = clamp(next.Energy+e.rules.RestEnergyGain, 0, next.MaxEnergy)
	next.ActionsToday++
	next.appendLog(LogInfo, "Took it easy. Recovered %d energy.", next.Energy-before)

	return next
}

func (e *Engine) endDay(state *GameState) *GameState {
	if state.Day >= e.rules.GameDay {
		return e.startNewWeek(state)
	}

	next := state.Clone()
	next.Day++
	next.Energy = clamp(next.Energy+e.rules.DayEnergyGain, 0, next.MaxEnergy)
	next.Heat = clamp(next.Heat-e.rules.NightHeatDecay, 0, e.rules.HeatLimit)
	next.ActionsToday = 0
	next.BetsReceivedToday = false

	if next.Day == e.rules.GameDay {
		next.appendLog(LogInfo, "Day %d - Game Day!", next.Day)
	} else {
		next.appendLog(LogInfo, "Day %d", next.Day)
	}

	e.revealDailyNews(next)
	next.AvailableMissions = e.dailyMissions(next)

	// Lines lock on game day; no new action comes in.
	if next.Day != e.rules.GameDay {
		e.receiveBets(next)
	}

	return next
}

// startNewWeek rolls the clock to week+1/day 1: fresh schedule, full
// energy, transient weekly flags cleared.
func (e *Engine) startNewWeek(state *GameState) *GameState {
	next := state.Clone()
	next.Week++
	next.Day = 1
	next.Energy = next.MaxEnergy
	next.ActionsToday = 0
	next.BetsReceivedToday = false
	next.ScoutedThisWeek = false
	next.HedgedGameIDs = nil
	next.FixedGames = nil

	next.Games = append(next.Games, e.createWeekGames(next, next.Week)...)
	next.appendLog(LogInfo, "Week %d begins. Bankroll: %s", next.Week, dollars(next.Bankroll))

	e.revealDailyNews(next)
	next.AvailableMissions = e.dailyMissions(next)

	return next
}

// revealDailyNews breaks any news scheduled on or before the current day
// for the week's open games, moving market lines with it.
func (e *Engine) revealDailyNews(s *GameState) {
	for i := range s.Games {
		g := &s.Games[i]
		if g.Week != s.Week || g.IsComplete() {
			continue
		}

		for _, n := range g.News {
			if n.Day <= s.Day && !n.IsRevealed {
				s.appendLog(LogNews, "%s", n.Headline)
			}
		}
		g.RevealNews(s.Day)
	}
}

// receiveBets runs every active customer's wagering decisions against the
// week's open games, once per day.
func (e *Engine) receiveBets(s *GameState) {
	if s.BetsReceivedToday || s.Day == e.rules.GameDay {
		return
	}

	var open []league.Game
	linesByGame := make(map[string]float64)
	for _, g := range s.Games {
		if g.Week == s.Week && !g.IsComplete() {
			open = append(open, g)
			linesByGame[g.ID] = g.YourLine
		}
	}

	var placed []book.Bet
	for _, c := range s.Customers {
		if !c.IsActive {
			continue
		}
		for _, req := range book.GenerateCustomerBets(e.rng, c, open, s.Bankroll) {
			line, ok := linesByGame[req.GameID]
			if !ok {
				continue
			}
			placed = append(placed, book.Bet{
				ID:         uuid.NewString(),
				CustomerID: c.ID,
				GameID:     req.GameID,
				Amount:     req.Amount,
				Pick:       req.Pick,
				Line:       line,
				DayPlaced:  s.Day,
			})
		}
	}

	if len(placed) > 0 {
		total := 0
		for _, b := range placed {
			total += b.Amount
		}
		s.appendLog(LogInfo, "%d bets received totaling %s", len(placed), dollars(total))
	}

	s.Bets = append(s.Bets, placed...)
	s.BetsReceivedToday = true
}
