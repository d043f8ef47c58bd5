package book

import (
	rand "math/rand/v2"

	"github.com/lox/streetbook/internal/randutil"
)

// MaxDebts is the hard cap on concurrent outstanding debts. Every
// debt-creating path checks this; overflow non-payers are written off.
const MaxDebts = 4

// Debt is an unpaid losing wager. Removed on collection or when the
// customer is cut off.
type Debt struct {
	CustomerID   string `json:"customerId"`
	Amount       int    `json:"amount"`
	WeekIncurred int    `json:"weekIncurred"`
	Attempts     int    `json:"attempts"`
	Location     string `json:"location"`
}

// Locations where debtors (and prospective customers) hang out.
var Locations = []string{
	"Downtown Bar",
	"Sports Bar",
	"Pool Hall",
	"Poker Room",
	"Country Club",
	"Warehouse District",
	"Industrial Park",
	"The Docks",
}

// RecruitLocations maps each archetype to the spots where that kind of
// bettor can be found.
var RecruitLocations = map[CustomerType][]string{
	Square:   {"Downtown Bar", "Sports Bar", "Country Club"},
	Sharp:    {"Poker Room", "Country Club"},
	Whale:    {"Country Club", "Poker Room"},
	Deadbeat: {"Pool Hall", "The Docks", "Warehouse District"},
}

// RandomLocation picks a fallback location for a debtor with no known
// hangout.
func RandomLocation(rng *rand.Rand) string {
	return randutil.Pick(rng, Locations)
}
