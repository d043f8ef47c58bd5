// Package league owns the fictional eight-team league: rosters, weekly
// scheduling, narrative news, and game simulation.
package league

import (
	"fmt"
	"math"

	rand "math/rand/v2"

	"github.com/lox/streetbook/internal/lines"
)

// Record is a simple win/loss tally.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Team is a league franchise. Ratings are fixed at creation; records and
// streaks are updated after every simulated game.
type Team struct {
	ID           string `json:"id"`
	City         string `json:"city"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`

	Offense     int `json:"offense"`     // 1-100
	Defense     int `json:"defense"`     // 1-100
	Consistency int `json:"consistency"` // 1-100, higher means lower variance

	Record     Record `json:"record"`
	HomeRecord Record `json:"homeRecord"`
	AwayRecord Record `json:"awayRecord"`
	Streak     int    `json:"streak"` // positive = winning, negative = losing
}

var teamSeed = []Team{
	{City: "Metro", Name: "Tigers", Abbreviation: "MET", Offense: 85, Defense: 78, Consistency: 70},
	{City: "Bay City", Name: "Bears", Abbreviation: "BAY", Offense: 72, Defense: 82, Consistency: 80},
	{City: "Riverside", Name: "Rockets", Abbreviation: "RIV", Offense: 90, Defense: 65, Consistency: 55},
	{City: "Summit", Name: "Storm", Abbreviation: "SUM", Offense: 68, Defense: 88, Consistency: 85},
	{City: "Harbor", Name: "Hawks", Abbreviation: "HAR", Offense: 75, Defense: 75, Consistency: 75},
	{City: "Valley", Name: "Vipers", Abbreviation: "VAL", Offense: 82, Defense: 70, Consistency: 60},
	{City: "Capital", Name: "Crushers", Abbreviation: "CAP", Offense: 78, Defense: 80, Consistency: 72},
	{City: "Lakeside", Name: "Lions", Abbreviation: "LAK", Offense: 70, Defense: 72, Consistency: 90},
}

// GenerateTeams returns the fixed eight-team league with zeroed records.
func GenerateTeams() []Team {
	teams := make([]Team, len(teamSeed))
	for i, t := range teamSeed {
		t.ID = fmt.Sprintf("team-%d", i)
		teams[i] = t
	}
	return teams
}

// PowerRating blends offense and defense into a single strength number,
// weighted toward offense.
func (t Team) PowerRating() float64 {
	return float64(t.Offense)*0.55 + float64(t.Defense)*0.45
}

// FullName returns "City Name".
func (t Team) FullName() string {
	return t.City + " " + t.Name
}

// RecordString renders the overall record as "W-L".
func (t Team) RecordString() string {
	return fmt.Sprintf("%d-%d", t.Record.Wins, t.Record.Losses)
}

// StreakString renders the current streak as "W3" or "L2", empty when no
// games have been played.
func (t Team) StreakString() string {
	switch {
	case t.Streak > 0:
		return fmt.Sprintf("W%d", t.Streak)
	case t.Streak < 0:
		return fmt.Sprintf("L%d", -t.Streak)
	default:
		return ""
	}
}

// PPG estimates points scored per game from the offense rating.
func (t Team) PPG() int {
	return int(math.Round(14 + float64(t.Offense)/10))
}

// PAPG estimates points allowed per game from the defense rating.
func (t Team) PAPG() int {
	return int(math.Round(28 - float64(t.Defense)/10))
}

// ApplyResult updates a team's records and streak for a finished game.
// homeGame says whether the team played at home.
func (t *Team) ApplyResult(won, homeGame bool) {
	if won {
		t.Record.Wins++
		if t.Streak > 0 {
			t.Streak++
		} else {
			t.Streak = 1
		}
	} else {
		t.Record.Losses++
		if t.Streak < 0 {
			t.Streak--
		} else {
			t.Streak = -1
		}
	}

	side := &t.AwayRecord
	if homeGame {
		side = &t.HomeRecord
	}
	if won {
		side.Wins++
	} else {
		side.Losses++
	}
}

// Matchup pairs two teams for a week, identified by team ID.
type Matchup struct {
	HomeID string
	AwayID string
}

// WeeklyMatchups partitions the league into four home/away pairs via a
// uniform shuffle. Every team appears exactly once.
func WeeklyMatchups(rng *rand.Rand, teams []Team) []Matchup {
	order := make([]Team, len(teams))
	copy(order, teams)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	matchups := make([]Matchup, 0, len(order)/2)
	for i := 0; i+1 < len(order); i += 2 {
		matchups = append(matchups, Matchup{HomeID: order[i].ID, AwayID: order[i+1].ID})
	}
	return matchups
}

// TrueLine computes the opening line for a matchup from team strength.
func TrueLine(home, away Team) float64 {
	return lines.TrueLine(home.PowerRating(), away.PowerRating())
}
