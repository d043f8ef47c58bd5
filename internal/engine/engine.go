package engine

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/streetbook/internal/book"
	"github.com/lox/streetbook/internal/league"
	"github.com/lox/streetbook/internal/missions"
)

// Engine evaluates actions against game state. The engine itself is
// stateless: Reduce is a pure function of (state, action) and the injected
// RNG's stream.
type Engine struct {
	rules  Rules
	rng    *rand.Rand
	logger *log.Logger
}

// New creates an engine. The RNG is the only source of randomness for
// every generator and simulator the reducer calls.
func New(rules Rules, rng *rand.Rand, logger *log.Logger) *Engine {
	return &Engine{
		rules:  rules,
		rng:    rng,
		logger: logger.WithPrefix("engine"),
	}
}

// Rules returns the engine's tuning constants.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Reduce applies an action and returns the next state snapshot. The input
// state is never mutated. Invalid actions return the input unchanged.
func (e *Engine) Reduce(state *GameState, action Action) *GameState {
	switch a := action.(type) {
	case NewGame:
		return e.NewState()
	case LoadGame:
		if a.State == nil {
			return state
		}
		return a.State.Clone()
	}

	if state == nil {
		return state
	}

	// Terminal states absorb everything except a popup dismissal.
	if state.IsGameOver {
		if _, ok := action.(DismissPopup); ok {
			next := state.Clone()
			next.PendingNonPayer = nil
			return next
		}
		e.logger.Debug("action ignored, game over", "action", actionName(action))
		return state
	}

	switch a := action.(type) {
	case SetLine:
		return e.setLine(state, a)
	case DoMission:
		return e.doMission(state, a)
	case Rest:
		return e.rest(state)
	case EndDay:
		return e.endDay(state)
	case SimulateGames:
		return e.simulateGames(state)
	case CollectDebt:
		return e.collectDebt(state, a)
	case HandleNonPayer:
		return e.handleNonPayer(state, a)
	case DismissPopup:
		next := state.Clone()
		next.PendingNonPayer = nil
		return next
	case AddLog:
		next := state.Clone()
		next.appendLog(a.Level, "%s", a.Message)
		return next
	default:
		return state
	}
}

// NewState generates a fresh week-one state: the league, the opening
// schedule with news, the starting roster, and the day's missions.
func (e *Engine) NewState() *GameState {
	teams := league.GenerateTeams()

	s := &GameState{
		Week:             1,
		Day:              1,
		Bankroll:         e.rules.StartingBankroll,
		StartingBankroll: e.rules.StartingBankroll,
		Energy:           e.rules.StartingEnergy,
		MaxEnergy:        e.rules.MaxEnergy,
		Teams:            teams,
		Customers:        book.StartingRoster(e.rng),
	}
	s.Games = e.createWeekGames(s, 1)
	s.appendLog(LogInfo, "Week 1 begins. You have $%d to start your book. Set your lines!", s.Bankroll)
	s.AvailableMissions = e.dailyMissions(s)

	return s
}

// createWeekGames builds the week's schedule with opening lines and
// unrevealed news.
func (e *Engine) createWeekGames(s *GameState, week int) []league.Game {
	matchups := league.WeeklyMatchups(e.rng, s.Teams)

	games := make([]league.Game, 0, len(matchups))
	for i, m := range matchups {
		home := *s.Team(m.HomeID)
		away := *s.Team(m.AwayID)
		trueLine := league.TrueLine(home, away)

		games = append(games, league.Game{
			ID:         gameID(week, i),
			Week:       week,
			HomeID:     home.ID,
			AwayID:     away.ID,
			TrueLine:   trueLine,
			MarketLine: trueLine,
			YourLine:   trueLine,
			News:       league.GenerateGameNews(e.rng, home, away),
		})
	}
	return games
}

func (e *Engine) dailyMissions(s *GameState) []missions.Mission {
	return missions.Daily(e.rng, missions.Input{
		Day:             s.Day,
		Heat:            s.Heat,
		Bankroll:        s.Bankroll,
		Debts:           s.Debts,
		Customers:       s.Customers,
		Games:           s.WeekGames(),
		Bets:            s.WeekBets(),
		ScoutedThisWeek: s.ScoutedThisWeek,
		HedgedGameIDs:   s.HedgedGameIDs,
		FixedGameIDs:    fixedIDs(s.FixedGames),
	})
}

// checkTerminal evaluates the absorbing end conditions against current
// bankroll and heat.
func (e *Engine) checkTerminal(s *GameState) {
	switch {
	case s.Bankroll <= e.rules.BustThreshold:
		s.IsGameOver = true
		s.GameOverReason = "You went bust! Bankroll dropped to " + dollars(s.Bankroll) + "."
	case s.Bankroll >= e.rules.WinThreshold:
		s.IsGameOver = true
		s.GameOverReason = "You made it! Bankroll: " + dollars(s.Bankroll) + "!"
	case s.Heat >= e.rules.HeatLimit:
		s.IsGameOver = true
		s.GameOverReason = "The heat got too high. Time to disappear."
	}
}

func fixedIDs(fixed []FixedGame) []string {
	out := make([]string, len(fixed))
	for i, f := range fixed {
		out[i] = f.GameID
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func actionName(a Action) string {
	switch a.(type) {
	case NewGame:
		return "new_game"
	case LoadGame:
		return "load_game"
	case SetLine:
		return "set_line"
	case DoMission:
		return "do_mission"
	case Rest:
		return "rest"
	case EndDay:
		return "end_day"
	case SimulateGames:
		return "simulate_games"
	case CollectDebt:
		return "collect_debt"
	case HandleNonPayer:
		return "handle_nonpayer"
	case DismissPopup:
		return "dismiss_popup"
	case AddLog:
		return "add_log"
	default:
		return "unknown"
	}
}
