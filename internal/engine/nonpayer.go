package engine

import (
	"github.com/lox/streetbook/internal/book"
)

// handleNonPayer resolves the pending popup through one of the four
// collection branches. The popup is cleared unconditionally.
func (e *Engine) handleNonPayer(state *GameState, a HandleNonPayer) *GameState {
	popup := state.PendingNonPayer
	if popup == nil || popup.CustomerID != a.CustomerID {
		return state
	}

	next := state.Clone()
	next.PendingNonPayer = nil

	customer := next.Customer(a.CustomerID)
	if customer == nil {
		return next
	}

	switch a.Choice {
	case LetSlide:
		// A civil conversation. They pay.
		next.Bankroll += popup.Amount
		next.appendLog(LogWin, "Talked to %s. They paid up the $%d.", customer.Name, popup.Amount)

	case Pressure:
		next.Energy = clamp(next.Energy-1, 0, next.MaxEnergy)
		next.Heat = clamp(next.Heat+5, 0, e.rules.HeatLimit)
		if e.rng.Float64() < 0.8 {
			next.Bankroll += popup.Amount
			next.appendLog(LogWin, "Put pressure on %s. They paid the $%d.", customer.Name, popup.Amount)
		} else {
			if len(next.Debts) < book.MaxDebts {
				next.Debts = append(next.Debts, book.Debt{
					CustomerID:   popup.CustomerID,
					Amount:       popup.Amount,
					WeekIncurred: next.Week,
					Attempts:     1,
					Location:     e.debtorLocation(next, popup.CustomerID),
				})
			}
			next.appendLog(LogDanger, "%s still won't pay. They owe $%d.", customer.Name, popup.Amount)
		}

	case Enforce:
		next.Energy = clamp(next.Energy-2, 0, next.MaxEnergy)
		next.Heat = clamp(next.Heat+15, 0, e.rules.HeatLimit)
		next.Bankroll += popup.Amount
		next.appendLog(LogWarning, "Roughed up %s. Got the $%d. Word gets around.", customer.Name, popup.Amount)

	case CutOff:
		// Eat the loss, drop the customer for good.
		customer.IsActive = false
		next.appendLog(LogLoss, "Cut off %s. Lost $%d but won't deal with them again.", customer.Name, popup.Amount)

	default:
		return state
	}

	e.checkTerminal(next)
	return next
}
