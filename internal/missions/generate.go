package missions

import (
	"fmt"

	rand "math/rand/v2"

	"github.com/google/uuid"
	"github.com/lox/streetbook/internal/book"
	"github.com/lox/streetbook/internal/league"
	"github.com/lox/streetbook/internal/lines"
	"github.com/lox/streetbook/internal/randutil"
)

const (
	// GameDay is the day of the week games are played; several offers are
	// gated off it.
	GameDay = 7

	hedgeMinAction    = 500
	hedgeMinImbalance = 0.2
	hedgeVigRate      = 0.1

	fixMinAction   = 1000
	fixMinBankroll = 2500
	fixCost        = 2500
	fixHeat        = 35

	collectSuccessHeat = 5
	collectFailHeat    = 15
	recruitFailHeat    = 5
)

// Input carries the slice of game state the generator reads. Games and
// Bets should be limited to the current week.
type Input struct {
	Day      int
	Heat     int
	Bankroll int

	Debts     []book.Debt
	Customers []book.Customer
	Games     []league.Game
	Bets      []book.Bet

	ScoutedThisWeek bool
	HedgedGameIDs   []string
	FixedGameIDs    []string
}

// Daily regenerates the full mission offer list for a day. Order is not
// significant.
func Daily(rng *rand.Rand, in Input) []Mission {
	var out []Mission

	out = append(out, collectionMissions(in.Debts, in.Customers)...)

	if in.Day < GameDay {
		out = append(out, recruitmentMissions(rng)...)
	}

	out = append(out, heatMissions(in.Heat)...)

	if in.Day == 1 {
		out = append(out, restMission())
	}

	out = append(out, schmoozeMissions(rng, in.Customers)...)

	if in.Day < GameDay && !in.ScoutedThisWeek {
		out = append(out, scoutMission())
	}

	if in.Day >= 2 && in.Day < GameDay {
		out = append(out, hedgeMissions(in)...)
	}

	if in.Day >= 5 && in.Day < GameDay {
		if m := fixMission(in); m != nil {
			out = append(out, *m)
		}
	}

	return out
}

func collectionMissions(debts []book.Debt, customers []book.Customer) []Mission {
	if len(debts) > book.MaxDebts {
		debts = debts[:book.MaxDebts]
	}

	out := make([]Mission, 0, len(debts))
	for _, debt := range debts {
		name := "Unknown"
		for _, c := range customers {
			if c.ID == debt.CustomerID {
				name = c.Name
				break
			}
		}

		// First visit is a conversation; after a dodge it takes muscle.
		energy := 1
		description := fmt.Sprintf("%s owes you $%d. Find them and get your money.", name, debt.Amount)
		if debt.Attempts > 0 {
			energy = 2
			description = fmt.Sprintf("%s dodged you before. Time to rough them up. ($%d)", name, debt.Amount)
		}

		out = append(out, Mission{
			ID:          uuid.NewString(),
			Type:        TypeCollect,
			Title:       "Collect from " + name,
			Description: description,
			Location:    debt.Location,
			EnergyCost:  energy,
			Risk:        0.05,
			FailHeat:    collectFailHeat,
			Reward: Reward{
				Money:          debt.Amount,
				Heat:           collectSuccessHeat,
				DebtCustomerID: debt.CustomerID,
			},
		})
	}
	return out
}

var recruitPool = []book.CustomerType{book.Square, book.Square, book.Sharp, book.Whale, book.Deadbeat}

var recruitPitch = map[book.CustomerType]string{
	book.Square:   "casual bettor who loves favorites",
	book.Sharp:    "sharp player who knows value",
	book.Whale:    "high roller with deep pockets",
	book.Deadbeat: "sketchy character who might not pay",
}

func recruitmentMissions(rng *rand.Rand) []Mission {
	count := rng.IntN(2) + 1
	out := make([]Mission, 0, count)

	for i := 0; i < count; i++ {
		kind := randutil.Pick(rng, recruitPool)
		location := randutil.Pick(rng, book.RecruitLocations[kind])

		money := 0
		if kind == book.Whale {
			money = 100 // drinks aren't free at the country club
		}
		risk := 0.1
		if kind == book.Deadbeat {
			risk = 0.3
		}

		out = append(out, Mission{
			ID:          uuid.NewString(),
			Type:        TypeRecruit,
			Title:       "Find new customer at " + location,
			Description: fmt.Sprintf("Word is there's a %s looking for a book.", recruitPitch[kind]),
			Location:    location,
			EnergyCost:  2,
			MoneyCost:   money,
			Risk:        risk,
			FailHeat:    recruitFailHeat,
			Reward:      Reward{NewCustomer: kind},
		})
	}
	return out
}

func heatMissions(heat int) []Mission {
	var out []Mission

	if heat > 20 {
		out = append(out, Mission{
			ID:          uuid.NewString(),
			Type:        TypeAvoidHeat,
			Title:       "Lay low",
			Description: "Stay home and keep a low profile. Reduce police attention.",
			Location:    "Home",
			EnergyCost:  1,
			Reward:      Reward{Heat: -10},
		})
	}
	if heat > 40 {
		out = append(out, Mission{
			ID:          uuid.NewString(),
			Type:        TypeAvoidHeat,
			Title:       "Grease some palms",
			Description: "Pay off a contact to make some attention go away.",
			Location:    "Downtown",
			EnergyCost:  1,
			MoneyCost:   500,
			Risk:        0.1,
			Reward:      Reward{Heat: -25},
		})
	}
	if heat > 60 {
		out = append(out, Mission{
			ID:          uuid.NewString(),
			Type:        TypeAvoidHeat,
			Title:       "Get out of town",
			Description: "Take a quick trip until things cool down.",
			Location:    "Out of Town",
			EnergyCost:  2,
			MoneyCost:   1000,
			Reward:      Reward{Heat: -40},
		})
	}
	return out
}

func restMission() Mission {
	return Mission{
		ID:          uuid.NewString(),
		Type:        TypeRest,
		Title:       "Take it easy",
		Description: "Rest up and recover your energy for tomorrow.",
		Location:    "Home",
		Reward:      Reward{Energy: 1},
	}
}

func schmoozeMissions(rng *rand.Rand, customers []book.Customer) []Mission {
	var improvable []book.Customer
	for _, c := range customers {
		if c.IsActive && c.Reliability < 0.99 {
			improvable = append(improvable, c)
		}
	}
	if len(improvable) == 0 {
		return nil
	}

	rng.Shuffle(len(improvable), func(i, j int) {
		improvable[i], improvable[j] = improvable[j], improvable[i]
	})
	if len(improvable) > 2 {
		improvable = improvable[:2]
	}

	out := make([]Mission, 0, len(improvable))
	for _, c := range improvable {
		money := 50
		if c.Type == book.Whale {
			money = 200
		}
		out = append(out, Mission{
			ID:          uuid.NewString(),
			Type:        TypeSchmooze,
			Title:       "Wine and dine " + c.Name,
			Description: fmt.Sprintf("Buy %s a few rounds. Loyal customers pay up and bet bigger.", c.Name),
			Location:    locationOr(rng, c.Location),
			EnergyCost:  1,
			MoneyCost:   money,
			Reward:      Reward{ImproveCustomerID: c.ID},
		})
	}
	return out
}

func scoutMission() Mission {
	return Mission{
		ID:          uuid.NewString(),
		Type:        TypeScout,
		Title:       "Scout the market",
		Description: "Call around to the other books and find out where the smart lines are.",
		Location:    "Poker Room",
		EnergyCost:  2,
		Reward:      Reward{RevealMarketLines: true},
	}
}

// gameAction totals a game's handle by side.
type gameAction struct {
	home, away int
}

func actionByGame(bets []book.Bet) map[string]gameAction {
	totals := make(map[string]gameAction)
	for _, b := range bets {
		a := totals[b.GameID]
		if b.Pick == lines.Home {
			a.home += b.Amount
		} else {
			a.away += b.Amount
		}
		totals[b.GameID] = a
	}
	return totals
}

func hedgeMissions(in Input) []Mission {
	totals := actionByGame(in.Bets)

	var out []Mission
	for _, game := range in.Games {
		if game.IsComplete() || contains(in.HedgedGameIDs, game.ID) {
			continue
		}
		a := totals[game.ID]
		total := a.home + a.away
		if total < hedgeMinAction {
			continue
		}
		imbalance := a.home - a.away
		if imbalance < 0 {
			imbalance = -imbalance
		}
		if float64(imbalance) < float64(total)*hedgeMinImbalance {
			continue
		}

		vig := int(float64(imbalance) * hedgeVigRate)
		out = append(out, Mission{
			ID:    uuid.NewString(),
			Type:  TypeHedge,
			Title: "Lay off action",
			Description: fmt.Sprintf(
				"You're $%d lopsided on a game. Lay it off with another book for a $%d vig.",
				imbalance, vig),
			Location:   "Sports Bar",
			EnergyCost: 1,
			MoneyCost:  vig,
			Risk:       0.05,
			Reward:     Reward{HedgeGameID: game.ID},
		})
	}
	return out
}

func fixMission(in Input) *Mission {
	if in.Bankroll < fixMinBankroll {
		return nil
	}

	totals := actionByGame(in.Bets)

	// Pick the eligible game with the biggest handle.
	var target *league.Game
	var targetAction gameAction
	best := 0
	for i, game := range in.Games {
		if game.IsComplete() || contains(in.FixedGameIDs, game.ID) {
			continue
		}
		a := totals[game.ID]
		if total := a.home + a.away; total >= fixMinAction && total > best {
			best = total
			target = &in.Games[i]
			targetAction = a
		}
	}
	if target == nil {
		return nil
	}

	// Force the side holding less action so the heavy side's bets lose.
	outcome := lines.Home
	if targetAction.home > targetAction.away {
		outcome = lines.Away
	}

	return &Mission{
		ID:          uuid.NewString(),
		Type:        TypeFixGame,
		Title:       "Fix the game",
		Description: "For the right price, the outcome is no longer in doubt. Risky as hell.",
		Location:    "The Docks",
		EnergyCost:  4,
		MoneyCost:   fixCost,
		Risk:        0.15,
		FailHeat:    fixHeat,
		Reward: Reward{
			Heat:       fixHeat,
			FixGameID:  target.ID,
			FixOutcome: outcome,
		},
	}
}

func locationOr(rng *rand.Rand, loc string) string {
	if loc != "" {
		return loc
	}
	return book.RandomLocation(rng)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
