package engine

import (
	"math"

	"github.com/lox/streetbook/internal/book"
	"github.com/lox/streetbook/internal/missions"
)

func (e *Engine) doMission(state *GameState, a DoMission) *GameState {
	var mission *missions.Mission
	for i := range state.AvailableMissions {
		if state.AvailableMissions[i].ID == a.MissionID {
			mission = &state.AvailableMissions[i]
			break
		}
	}
	if mission == nil {
		return state
	}
	if state.Energy < mission.EnergyCost || state.Bankroll < mission.MoneyCost {
		return state
	}

	result := missions.Execute(e.rng, *mission)
	e.logger.Debug("mission executed",
		"type", mission.Type, "success", result.Success, "money", result.Money, "heat", result.Heat)

	next := state.Clone()

	// Structured side effects belong to the reducer, not the executor.
	if result.Success {
		e.applyMissionReward(next, *mission)
	}
	if result.DebtCollected != "" {
		next.Debts = removeDebt(next.Debts, result.DebtCollected)
	}

	next.Bankroll += result.Money
	next.Heat = clamp(next.Heat+result.Heat, 0, e.rules.HeatLimit)
	next.Energy = clamp(next.Energy+result.Energy, 0, next.MaxEnergy)
	next.ActionsToday++
	next.AvailableMissions = removeMission(next.AvailableMissions, mission.ID)

	level := LogInfo
	if !result.Success {
		level = LogWarning
	}
	next.appendLog(level, "%s", result.Message)

	e.checkTerminal(next)
	return next
}

func (e *Engine) applyMissionReward(s *GameState, m missions.Mission) {
	r := m.Reward

	switch {
	case r.NewCustomer != "":
		customer := book.GenerateCustomer(e.rng, r.NewCustomer)
		customer.Location = m.Location
		s.Customers = append(s.Customers, customer)

	case r.HedgeGameID != "":
		s.HedgedGameIDs = append(s.HedgedGameIDs, r.HedgeGameID)

	case r.RevealMarketLines:
		s.ScoutedThisWeek = true

	case r.ImproveCustomerID != "":
		if c := s.Customer(r.ImproveCustomerID); c != nil {
			c.Reliability = math.Min(1, c.Reliability+0.1)
			c.MaxBet = int(math.Round(float64(c.MaxBet) * 1.25))
		}

	case r.FixGameID != "":
		s.FixedGames = append(s.FixedGames, FixedGame{GameID: r.FixGameID, Outcome: r.FixOutcome})
	}
}

func (e *Engine) collectDebt(state *GameState, a CollectDebt) *GameState {
	var debt *book.Debt
	for i := range state.Debts {
		if state.Debts[i].CustomerID == a.CustomerID {
			debt = &state.Debts[i]
			break
		}
	}
	customer := state.Customer(a.CustomerID)
	if debt == nil || customer == nil {
		return state
	}
	if state.Energy < e.rules.CollectEnergy {
		return state
	}

	next := state.Clone()

	// Each failed attempt makes the next one stick better.
	chance := math.Min(0.95, 0.8+float64(debt.Attempts)*0.05)
	if e.rng.Float64() < chance {
		next.Bankroll += debt.Amount
		next.Debts = removeDebt(next.Debts, a.CustomerID)
		next.appendLog(LogWin, "Collected $%d from %s.", debt.Amount, customer.Name)
	} else {
		for i := range next.Debts {
			if next.Debts[i].CustomerID == a.CustomerID {
				next.Debts[i].Attempts++
			}
		}
		next.appendLog(LogWarning, "%s dodged you. Try again later.", customer.Name)
	}

	next.Heat = clamp(next.Heat+e.rules.CollectHeatBump, 0, e.rules.HeatLimit)
	next.Energy -= e.rules.CollectEnergy
	next.ActionsToday++

	return next
}

func removeDebt(debts []book.Debt, customerID string) []book.Debt {
	out := debts[:0]
	for _, d := range debts {
		if d.CustomerID != customerID {
			out = append(out, d)
		}
	}
	return out
}

func removeMission(ms []missions.Mission, id string) []missions.Mission {
	out := ms[:0]
	for _, m := range ms {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}
