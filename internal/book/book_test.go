package book

import (
	"testing"

	"github.com/lox/streetbook/internal/league"
	"github.com/lox/streetbook/internal/lines"
	"github.com/lox/streetbook/internal/randutil"
)

func TestGenerateCustomerRanges(t *testing.T) {
	t.Parallel()
	rng := randutil.New(1)

	for kind, tpl := range customerTemplates {
		for i := 0; i < 100; i++ {
			c := GenerateCustomer(rng, kind)

			if !c.IsActive {
				t.Errorf("%s: new customers start active", kind)
			}
			if c.Name == "" || c.ID == "" {
				t.Errorf("%s: missing identity", kind)
			}
			if c.Reliability < tpl.reliability.lo || c.Reliability > tpl.reliability.hi {
				t.Errorf("%s: reliability %f outside template", kind, c.Reliability)
			}
			if c.Sharpness < tpl.sharpness.lo || c.Sharpness > tpl.sharpness.hi {
				t.Errorf("%s: sharpness %f outside template", kind, c.Sharpness)
			}
			if float64(c.Bankroll) < tpl.bankroll.lo || float64(c.Bankroll) > tpl.bankroll.hi {
				t.Errorf("%s: bankroll %d outside template", kind, c.Bankroll)
			}
			if c.MaxBet > c.Bankroll {
				t.Errorf("%s: max bet %d exceeds bankroll %d", kind, c.MaxBet, c.Bankroll)
			}
		}
	}
}

func TestStartingRosterComposition(t *testing.T) {
	t.Parallel()
	roster := StartingRoster(randutil.New(2))

	if len(roster) != 7 {
		t.Fatalf("expected 7 starting customers, got %d", len(roster))
	}

	counts := map[CustomerType]int{}
	for _, c := range roster {
		counts[c.Type]++
	}
	if counts[Square] != 5 || counts[Sharp] != 1 || counts[Whale] != 1 {
		t.Errorf("roster mix %v, want 5 square / 1 sharp / 1 whale", counts)
	}
	if counts[Deadbeat] != 0 {
		t.Error("no deadbeats in the starting roster")
	}
}

func weekGames() []league.Game {
	teams := league.GenerateTeams()
	return []league.Game{
		{ID: "g1", Week: 1, HomeID: teams[0].ID, AwayID: teams[1].ID, TrueLine: 3, MarketLine: 3, YourLine: 3},
		{ID: "g2", Week: 1, HomeID: teams[2].ID, AwayID: teams[3].ID, TrueLine: -2, MarketLine: -2, YourLine: -2},
	}
}

func TestGenerateCustomerBetsStakes(t *testing.T) {
	t.Parallel()
	rng := randutil.New(4)
	c := GenerateCustomer(rng, Square)
	games := weekGames()

	for i := 0; i < 200; i++ {
		for _, bet := range GenerateCustomerBets(rng, c, games, 10000) {
			if bet.Amount < MinBet {
				t.Fatalf("stake %d below floor", bet.Amount)
			}
			if bet.Amount%10 != 0 {
				t.Fatalf("stake %d not rounded to $10", bet.Amount)
			}
			if bet.Amount > 1000 { // bookie cap at 10% of 10k
				t.Fatalf("stake %d above bookie cap", bet.Amount)
			}
			if bet.Pick != lines.Home && bet.Pick != lines.Away {
				t.Fatalf("bad pick %q", bet.Pick)
			}
		}
	}
}

func TestGenerateCustomerBetsRespectsFloor(t *testing.T) {
	t.Parallel()
	rng := randutil.New(5)
	c := GenerateCustomer(rng, Square)
	c.Bankroll = 30 // below MinBet

	if bets := GenerateCustomerBets(rng, c, weekGames(), 10000); len(bets) != 0 {
		t.Errorf("broke customer should place no bets, got %d", len(bets))
	}

	// A broke book takes no action either.
	c = GenerateCustomer(rng, Whale)
	if bets := GenerateCustomerBets(rng, c, weekGames(), 100); len(bets) != 0 {
		t.Errorf("tiny bookie bankroll should reject all bets, got %d", len(bets))
	}
}

func TestSharpBetsValueSide(t *testing.T) {
	t.Parallel()
	rng := randutil.New(6)

	c := GenerateCustomer(rng, Sharp)
	c.Sharpness = 1.0 // always spots the edge

	games := weekGames()
	games[0].YourLine = 8 // 5 points above true: away side has value
	games = games[:1]

	for i := 0; i < 100; i++ {
		for _, bet := range GenerateCustomerBets(rng, c, games, 100000) {
			if bet.Pick != lines.Away {
				t.Fatalf("sharp with certainty took %q, want away", bet.Pick)
			}
		}
	}
}

func TestResolveBetsRequiresCompleteGame(t *testing.T) {
	t.Parallel()
	game := weekGames()[0]

	if _, err := ResolveBets(game, nil); err == nil {
		t.Fatal("expected error resolving an incomplete game")
	}

	game.Final = &league.Score{Home: 24, Away: 20}
	bets := []Bet{
		{ID: "b1", GameID: game.ID, Amount: 100, Pick: lines.Home, Line: -3},
		{ID: "b2", GameID: game.ID, Amount: 100, Pick: lines.Away, Line: -3},
		{ID: "b3", GameID: game.ID, Amount: 100, Pick: lines.Home, Line: -4},
	}
	resolved, err := ResolveBets(game, bets)
	if err != nil {
		t.Fatal(err)
	}
	if resolved[0].Result != lines.Win {
		t.Errorf("home -3 with a 4-point win should cover, got %s", resolved[0].Result)
	}
	if resolved[1].Result != lines.Loss {
		t.Errorf("away side should lose, got %s", resolved[1].Result)
	}
	if resolved[2].Result != lines.Push {
		t.Errorf("exact cover should push, got %s", resolved[2].Result)
	}
}

func TestResolveBetsGradesOnce(t *testing.T) {
	t.Parallel()
	game := weekGames()[0]
	game.Final = &league.Score{Home: 10, Away: 30}

	bets := []Bet{{ID: "b", GameID: game.ID, Amount: 50, Pick: lines.Home, Line: 0, Result: lines.Win}}
	resolved, _ := ResolveBets(game, bets)
	if resolved[0].Result != lines.Win {
		t.Error("already-graded bets must not be regraded")
	}
}

func TestPayout(t *testing.T) {
	t.Parallel()

	win := Bet{Amount: 110, Result: lines.Win}
	if got := Payout(win, Juice); got < 99.9 || got > 100.1 {
		t.Errorf("win payout %f, want ~100", got)
	}

	loss := Bet{Amount: 110, Result: lines.Loss}
	if got := Payout(loss, Juice); got != -110 {
		t.Errorf("loss payout %f, want -110", got)
	}

	push := Bet{Amount: 110, Result: lines.Push}
	if got := Payout(push, Juice); got != 0 {
		t.Errorf("push payout %f, want 0", got)
	}
}
