package league

import (
	"strings"

	rand "math/rand/v2"

	"github.com/lox/streetbook/internal/randutil"
)

// NewsCategory classifies a narrative event.
type NewsCategory string

const (
	NewsInjury     NewsCategory = "injury"
	NewsReturn     NewsCategory = "return"
	NewsWeather    NewsCategory = "weather"
	NewsMotivation NewsCategory = "motivation"
	NewsRest       NewsCategory = "rest"
)

// TeamNews is a scheduled narrative event that shifts market perception
// once revealed. Impact is always stated from the home-line perspective.
type TeamNews struct {
	TeamID     string       `json:"teamId"`
	Day        int          `json:"day"` // when the story breaks (1-6)
	Category   NewsCategory `json:"category"`
	Impact     float64      `json:"impact"`
	Headline   string       `json:"headline"`
	IsRevealed bool         `json:"isRevealed"`
}

type newsTemplate struct {
	headline string
	impact   float64
}

var newsTemplates = map[NewsCategory][]newsTemplate{
	NewsInjury: {
		{"{team} star QB questionable with shoulder injury", -3},
		{"{team} starting RB ruled out with hamstring", -2},
		{"{team} top receiver dealing with ankle sprain", -1.5},
		{"{team} defensive captain limited in practice", -1},
	},
	NewsReturn: {
		{"{team} star player cleared to play Sunday", 2.5},
		{"{team} key defender returns from suspension", 1.5},
		{"{team} gets reinforcements back from IR", 2},
	},
	NewsWeather: {
		{"Heavy rain expected for {team} home game", -1},
		{"Wind advisory for {team} stadium Sunday", -0.5},
		{"Perfect conditions forecast for {location}", 0.5},
	},
	NewsMotivation: {
		{"{team} fired up after last week's loss", 1},
		{"{team} looking ahead to rivalry game next week", -1.5},
		{"{team} coach gives impassioned speech to media", 0.5},
	},
	NewsRest: {
		{"{team} well-rested after bye week", 1.5},
		{"{team} playing third road game in a row", -1},
		{"{team} dealing with short week after Monday game", -1.5},
	},
}

var newsCategories = []NewsCategory{NewsInjury, NewsReturn, NewsWeather, NewsMotivation, NewsRest}

var revealDays = []int{1, 3, 5}

// GenerateGameNews produces 1-3 unrevealed news items for a matchup, each
// targeting a random side with a random reveal day. Impact is inverted for
// away-team news so it always reads as a home-line adjustment.
func GenerateGameNews(rng *rand.Rand, home, away Team) []TeamNews {
	count := rng.IntN(3) + 1
	news := make([]TeamNews, 0, count)

	for i := 0; i < count; i++ {
		category := randutil.Pick(rng, newsCategories)
		template := randutil.Pick(rng, newsTemplates[category])

		target := home
		impact := template.impact
		if randutil.Chance(rng, 0.5) {
			target = away
			impact = -impact
		}

		headline := strings.ReplaceAll(template.headline, "{team}", target.City)
		headline = strings.ReplaceAll(headline, "{location}", home.City)

		news = append(news, TeamNews{
			TeamID:   target.ID,
			Day:      randutil.Pick(rng, revealDays),
			Category: category,
			Impact:   impact,
			Headline: headline,
		})
	}

	return news
}
