package missions

import (
	rand "math/rand/v2"

	"github.com/lox/streetbook/internal/randutil"
)

// Result is the generic outcome of running a mission. Structured side
// effects (recruits, hedges, fixes, scout reveals, schmooze buffs) are
// applied by the reducer reading the mission's reward after a success.
type Result struct {
	Success bool
	Message string

	Money  int // net bankroll delta, cost already deducted
	Heat   int
	Energy int // net energy delta, cost already deducted

	DebtCollected string // customer id whose debt cleared
}

// Execute rolls the mission's single risk check and computes the generic
// deltas. Money cost is sunk on failure; the mission is consumed either
// way.
func Execute(rng *rand.Rand, m Mission) Result {
	if randutil.Chance(rng, m.Risk) {
		return Result{
			Success: false,
			Message: failureMessage(m),
			Money:   -m.MoneyCost,
			Heat:    m.FailHeat,
			Energy:  -m.EnergyCost,
		}
	}

	return Result{
		Success:       true,
		Message:       successMessage(m),
		Money:         m.Reward.Money - m.MoneyCost,
		Heat:          m.Reward.Heat,
		Energy:        m.Reward.Energy - m.EnergyCost,
		DebtCollected: m.Reward.DebtCustomerID,
	}
}

func successMessage(m Mission) string {
	switch m.Type {
	case TypeCollect:
		return "Collection successful! Got the money."
	case TypeRecruit:
		return "Found a new customer at " + m.Location + "!"
	case TypeAvoidHeat:
		return "Managed to reduce some heat."
	case TypeRest:
		return "Feeling rested and ready."
	case TypeHedge:
		return "Laid off the heavy side. Exposure covered."
	case TypeScout:
		return "Got the market numbers. Check your lines."
	case TypeSchmooze:
		return "A few rounds and some laughs. They're betting bigger now."
	case TypeFixGame:
		return "It's done. Sunday's result is already decided."
	default:
		return "Mission complete."
	}
}

func failureMessage(m Mission) string {
	switch m.Type {
	case TypeCollect:
		return "Things got heated. They got away and now there's more attention on you."
	case TypeRecruit:
		return "The contact was a bust. Wasted trip."
	case TypeAvoidHeat:
		return "Your contact got cold feet. Money wasted."
	case TypeHedge:
		return "The other book wouldn't take the action. Vig wasted."
	case TypeFixGame:
		return "The player talked. Money gone and people are asking questions."
	default:
		return "Something went wrong."
	}
}
