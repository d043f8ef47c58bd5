// Package book models the bookie's side of the operation: the customer
// roster, the wagers they place, settlement math, and outstanding debts.
package book

import (
	"math"

	rand "math/rand/v2"

	"github.com/google/uuid"
	"github.com/lox/streetbook/internal/randutil"
)

// CustomerType is one of the four bettor archetypes.
type CustomerType string

const (
	Square   CustomerType = "square"
	Sharp    CustomerType = "sharp"
	Whale    CustomerType = "whale"
	Deadbeat CustomerType = "deadbeat"
)

// Customer is a persistent bettor. Customers are never deleted; cutting
// one off clears IsActive permanently.
type Customer struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type CustomerType `json:"type"`

	Bankroll int `json:"bankroll"`
	MaxBet   int `json:"maxBet"`

	Reliability   float64 `json:"reliability"`   // 0-1, chance they pay when they lose
	Sharpness     float64 `json:"sharpness"`     // 0-1, how good they are at finding value
	FavoritesBias float64 `json:"favoritesBias"` // 0-1, tendency to bet favorites

	IsActive bool   `json:"isActive"`
	Location string `json:"location,omitempty"` // where they hang out
}

type floatRange struct{ lo, hi float64 }

type customerTemplate struct {
	reliability   floatRange
	sharpness     floatRange
	favoritesBias floatRange
	bankroll      floatRange
	maxBetPct     floatRange
}

var customerTemplates = map[CustomerType]customerTemplate{
	Square: {
		reliability:   floatRange{0.95, 1.0}, // almost always pay
		sharpness:     floatRange{0.1, 0.3},
		favoritesBias: floatRange{0.6, 0.9}, // love betting favorites
		bankroll:      floatRange{500, 2000},
		maxBetPct:     floatRange{0.1, 0.2},
	},
	Sharp: {
		reliability:   floatRange{1.0, 1.0}, // reputation matters
		sharpness:     floatRange{0.7, 0.95},
		favoritesBias: floatRange{0.4, 0.6},
		bankroll:      floatRange{2000, 10000},
		maxBetPct:     floatRange{0.15, 0.3},
	},
	Whale: {
		reliability:   floatRange{0.95, 1.0},
		sharpness:     floatRange{0.3, 0.6},
		favoritesBias: floatRange{0.4, 0.6},
		bankroll:      floatRange{10000, 50000},
		maxBetPct:     floatRange{0.2, 0.4},
	},
	Deadbeat: {
		reliability:   floatRange{0.75, 0.9}, // occasionally stiff you
		sharpness:     floatRange{0.2, 0.5},
		favoritesBias: floatRange{0.5, 0.7},
		bankroll:      floatRange{200, 1000},
		maxBetPct:     floatRange{0.3, 0.5}, // bet big relative to bankroll
	},
}

var firstNames = []string{
	"Tony", "Vinnie", "Joey", "Sal", "Mike", "Frank", "Eddie", "Bobby",
	"Jimmy", "Tommy", "Paulie", "Richie", "Danny", "Lou", "Ray",
}

var lastInitials = []string{"M", "S", "D", "C", "B", "T", "R", "G", "P", "L"}

// GenerateCustomer draws a new bettor from the archetype's attribute
// ranges.
func GenerateCustomer(rng *rand.Rand, kind CustomerType) Customer {
	tpl := customerTemplates[kind]

	bankroll := int(math.Round(randutil.Between(rng, tpl.bankroll.lo, tpl.bankroll.hi)))
	maxBetPct := randutil.Between(rng, tpl.maxBetPct.lo, tpl.maxBetPct.hi)

	return Customer{
		ID:            uuid.NewString(),
		Name:          randutil.Pick(rng, firstNames) + " " + randutil.Pick(rng, lastInitials) + ".",
		Type:          kind,
		Bankroll:      bankroll,
		MaxBet:        int(math.Round(float64(bankroll) * maxBetPct)),
		Reliability:   randutil.Between(rng, tpl.reliability.lo, tpl.reliability.hi),
		Sharpness:     randutil.Between(rng, tpl.sharpness.lo, tpl.sharpness.hi),
		FavoritesBias: randutil.Between(rng, tpl.favoritesBias.lo, tpl.favoritesBias.hi),
		IsActive:      true,
	}
}

// StartingRoster generates the opening book: mostly squares, one sharp,
// one whale, no deadbeats.
func StartingRoster(rng *rand.Rand) []Customer {
	roster := make([]Customer, 0, 7)
	for i := 0; i < 5; i++ {
		roster = append(roster, GenerateCustomer(rng, Square))
	}
	roster = append(roster, GenerateCustomer(rng, Sharp))
	roster = append(roster, GenerateCustomer(rng, Whale))
	return roster
}

// TypeLabel returns the display name for an archetype.
func TypeLabel(kind CustomerType) string {
	switch kind {
	case Square:
		return "Square"
	case Sharp:
		return "Sharp"
	case Whale:
		return "Whale"
	case Deadbeat:
		return "Deadbeat"
	}
	return string(kind)
}

// TypeDescription returns the one-line pitch for an archetype.
func TypeDescription(kind CustomerType) string {
	switch kind {
	case Square:
		return "Casual bettor, loves favorites, always pays"
	case Sharp:
		return "Smart money, finds value, reliable"
	case Whale:
		return "Big bettor, high stakes"
	case Deadbeat:
		return "May not pay when they lose"
	}
	return ""
}
