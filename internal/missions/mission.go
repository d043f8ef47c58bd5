// Package missions generates the day's available player actions and
// resolves their probabilistic outcomes. Every cost, risk and reward
// magnitude lives on the Mission descriptor; the executor only rolls the
// dice and reads it.
package missions

import (
	"github.com/lox/streetbook/internal/book"
	"github.com/lox/streetbook/internal/lines"
)

// Type tags the kind of mission on offer.
type Type string

const (
	TypeCollect   Type = "collect"
	TypeRecruit   Type = "recruit"
	TypeAvoidHeat Type = "avoid_heat"
	TypeRest      Type = "rest"
	TypeHedge     Type = "hedge"
	TypeScout     Type = "scout"
	TypeSchmooze  Type = "schmooze"
	TypeFixGame   Type = "fix_game"
)

// Reward describes what a successful mission delivers. Money/Heat/Energy
// are deltas; the remaining fields are structured effects applied by the
// reducer.
type Reward struct {
	Money  int `json:"money,omitempty"`
	Heat   int `json:"heat,omitempty"` // negative reduces heat
	Energy int `json:"energy,omitempty"`

	NewCustomer       book.CustomerType `json:"newCustomer,omitempty"`
	DebtCustomerID    string            `json:"debtCustomerId,omitempty"`
	HedgeGameID       string            `json:"hedgeGameId,omitempty"`
	FixGameID         string            `json:"fixGameId,omitempty"`
	FixOutcome        lines.Side        `json:"fixOutcome,omitempty"`
	ImproveCustomerID string            `json:"improveCustomerId,omitempty"`
	RevealMarketLines bool              `json:"revealMarketLines,omitempty"`
}

// Mission is an ephemeral, day-scoped offer. Executing it consumes it
// whether or not the roll succeeds.
type Mission struct {
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`

	EnergyCost int     `json:"energyCost"`
	MoneyCost  int     `json:"moneyCost"`
	Risk       float64 `json:"risk"`     // 0-1, chance the mission goes bad
	FailHeat   int     `json:"failHeat"` // heat penalty when it does

	Reward Reward `json:"reward"`
}
