package league

import (
	"testing"

	"github.com/lox/streetbook/internal/lines"
	"github.com/lox/streetbook/internal/randutil"
)

func TestGenerateTeams(t *testing.T) {
	t.Parallel()
	teams := GenerateTeams()

	if len(teams) != 8 {
		t.Fatalf("expected 8 teams, got %d", len(teams))
	}

	seen := map[string]bool{}
	for _, team := range teams {
		if seen[team.ID] {
			t.Errorf("duplicate team id %s", team.ID)
		}
		seen[team.ID] = true

		if team.Offense < 55 || team.Offense > 90 {
			t.Errorf("%s offense %d outside [55,90]", team.Abbreviation, team.Offense)
		}
		if team.Defense < 55 || team.Defense > 90 {
			t.Errorf("%s defense %d outside [55,90]", team.Abbreviation, team.Defense)
		}
		if team.Record.Wins != 0 || team.Record.Losses != 0 || team.Streak != 0 {
			t.Errorf("%s should start with a clean record", team.Abbreviation)
		}
	}
}

func TestWeeklyMatchupsPartitionLeague(t *testing.T) {
	t.Parallel()
	teams := GenerateTeams()

	for seed := int64(0); seed < 50; seed++ {
		rng := randutil.New(seed)
		matchups := WeeklyMatchups(rng, teams)

		if len(matchups) != 4 {
			t.Fatalf("seed %d: expected 4 matchups, got %d", seed, len(matchups))
		}

		seen := map[string]bool{}
		for _, m := range matchups {
			if seen[m.HomeID] || seen[m.AwayID] {
				t.Fatalf("seed %d: team scheduled twice", seed)
			}
			seen[m.HomeID] = true
			seen[m.AwayID] = true
		}
		if len(seen) != 8 {
			t.Fatalf("seed %d: expected all 8 teams scheduled, got %d", seed, len(seen))
		}
	}
}

func TestGenerateGameNews(t *testing.T) {
	t.Parallel()
	teams := GenerateTeams()
	rng := randutil.New(3)

	for i := 0; i < 200; i++ {
		news := GenerateGameNews(rng, teams[0], teams[1])

		if len(news) < 1 || len(news) > 3 {
			t.Fatalf("expected 1-3 items, got %d", len(news))
		}
		for _, n := range news {
			if n.IsRevealed {
				t.Error("news must start unrevealed")
			}
			if n.Day != 1 && n.Day != 3 && n.Day != 5 {
				t.Errorf("reveal day %d not in {1,3,5}", n.Day)
			}
			if n.TeamID != teams[0].ID && n.TeamID != teams[1].ID {
				t.Errorf("news targets team %s outside the matchup", n.TeamID)
			}
			if n.Headline == "" {
				t.Error("empty headline")
			}
		}
	}
}

func TestRevealNewsMovesMarketLine(t *testing.T) {
	t.Parallel()
	teams := GenerateTeams()
	game := Game{
		ID:         "g",
		Week:       1,
		HomeID:     teams[0].ID,
		AwayID:     teams[1].ID,
		TrueLine:   3,
		MarketLine: 3,
		YourLine:   3,
		News: []TeamNews{
			{TeamID: teams[0].ID, Day: 1, Category: NewsInjury, Impact: -3, Headline: "x"},
			{TeamID: teams[1].ID, Day: 5, Category: NewsReturn, Impact: 1.5, Headline: "y"},
		},
	}

	game.RevealNews(1)
	if !game.News[0].IsRevealed || game.News[1].IsRevealed {
		t.Fatal("only day-1 news should reveal on day 1")
	}
	if game.MarketLine != 0 {
		t.Errorf("market line = %f, want 0", game.MarketLine)
	}

	game.RevealNews(5)
	if !game.News[1].IsRevealed {
		t.Fatal("day-5 news should reveal on day 5")
	}
	if game.MarketLine != 1.5 {
		t.Errorf("market line = %f, want 1.5", game.MarketLine)
	}

	// Reveal flags never move backwards.
	game.RevealNews(1)
	if !game.News[1].IsRevealed {
		t.Error("reveal flag regressed")
	}
}

func TestSimulateScoresNonNegative(t *testing.T) {
	t.Parallel()
	teams := GenerateTeams()
	rng := randutil.New(5)

	for i := 0; i < 500; i++ {
		score := Simulate(rng, teams[2], teams[3])
		if score.Home < 0 || score.Away < 0 {
			t.Fatalf("negative score %+v", score)
		}
	}
}

func TestSimulateFixedAlwaysBlowout(t *testing.T) {
	t.Parallel()
	rng := randutil.New(9)

	for i := 0; i < 500; i++ {
		score := SimulateFixed(rng, lines.Home)
		if score.Winner() != lines.Home {
			t.Fatalf("fixed home game lost: %+v", score)
		}
		margin := score.Home - score.Away
		if margin < 10 || margin > 19 {
			t.Fatalf("fix margin %d outside [10,19]", margin)
		}
		if score.Home < 28 || score.Home > 41 {
			t.Fatalf("winner score %d outside [28,41]", score.Home)
		}

		score = SimulateFixed(rng, lines.Away)
		if score.Winner() != lines.Away {
			t.Fatalf("fixed away game lost: %+v", score)
		}
	}
}

func TestApplyResult(t *testing.T) {
	t.Parallel()
	team := GenerateTeams()[0]

	team.ApplyResult(true, true)
	team.ApplyResult(true, false)
	if team.Record.Wins != 2 || team.Streak != 2 {
		t.Errorf("after two wins: record %+v streak %d", team.Record, team.Streak)
	}
	if team.HomeRecord.Wins != 1 || team.AwayRecord.Wins != 1 {
		t.Errorf("split records wrong: home %+v away %+v", team.HomeRecord, team.AwayRecord)
	}

	team.ApplyResult(false, true)
	if team.Streak != -1 {
		t.Errorf("loss should flip streak to -1, got %d", team.Streak)
	}
	if team.StreakString() != "L1" {
		t.Errorf("streak string %q", team.StreakString())
	}
}

func TestTeamDisplayHelpers(t *testing.T) {
	t.Parallel()
	team := GenerateTeams()[0]

	if team.FullName() != "Metro Tigers" {
		t.Errorf("full name %q", team.FullName())
	}
	if team.RecordString() != "0-0" {
		t.Errorf("record %q", team.RecordString())
	}
	if team.StreakString() != "" {
		t.Errorf("fresh team should have no streak string, got %q", team.StreakString())
	}
	if team.PPG() != 23 { // 14 + 85/10
		t.Errorf("PPG = %d", team.PPG())
	}
	if team.PAPG() != 20 { // 28 - 78/10
		t.Errorf("PAPG = %d", team.PAPG())
	}
}
