// Package engine owns the aggregate game state and the pure reducer that
// advances it. All randomness flows through the injected RNG; given the
// generator outputs, every transition is deterministic and returns a new
// snapshot without touching its input.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lox/streetbook/internal/book"
	"github.com/lox/streetbook/internal/league"
	"github.com/lox/streetbook/internal/lines"
	"github.com/lox/streetbook/internal/missions"
)

// LogLevel classifies a game log entry for display.
type LogLevel string

const (
	LogInfo    LogLevel = "info"
	LogWin     LogLevel = "win"
	LogLoss    LogLevel = "loss"
	LogWarning LogLevel = "warning"
	LogDanger  LogLevel = "danger"
	LogNews    LogLevel = "news"
)

// LogEntry is one line of the chronological game narrative. The log is
// game data and part of the save, not diagnostics.
type LogEntry struct {
	ID      string   `json:"id"`
	Week    int      `json:"week"`
	Day     int      `json:"day"`
	Message string   `json:"message"`
	Level   LogLevel `json:"level"`
}

// NonPayerPopup is the pending "customer won't pay" prompt surfaced to the
// presentation layer after game day.
type NonPayerPopup struct {
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	Amount       int    `json:"amount"`
}

// FixedGame records a bought outcome for the simulator to honor.
type FixedGame struct {
	GameID  string     `json:"gameId"`
	Outcome lines.Side `json:"outcome"`
}

// GameState is the aggregate root and the single unit of persistence.
type GameState struct {
	Week int `json:"week"`
	Day  int `json:"day"` // 1-7; day 7 is game day

	Bankroll         int `json:"bankroll"`
	StartingBankroll int `json:"startingBankroll"`
	Energy           int `json:"energy"`
	MaxEnergy        int `json:"maxEnergy"`
	Heat             int `json:"heat"` // 0-100

	Teams     []league.Team   `json:"teams"`
	Games     []league.Game   `json:"games"`
	Customers []book.Customer `json:"customers"`
	Bets      []book.Bet      `json:"bets"`
	Debts     []book.Debt     `json:"debts"`

	Log               []LogEntry         `json:"log"`
	AvailableMissions []missions.Mission `json:"availableMissions"`

	ActionsToday      int  `json:"actionsToday"`
	BetsReceivedToday bool `json:"betsReceivedToday"`

	IsGameOver     bool   `json:"isGameOver"`
	GameOverReason string `json:"gameOverReason,omitempty"`

	PendingNonPayer *NonPayerPopup `json:"pendingNonPayer,omitempty"`

	// Per-week transient flags, cleared on rollover.
	ScoutedThisWeek bool        `json:"scoutedThisWeek"`
	HedgedGameIDs   []string    `json:"hedgedGameIds"`
	FixedGames      []FixedGame `json:"fixedGames"`
}

// Clone returns a deep copy. The reducer clones before mutating so the
// previous snapshot is never touched.
func (s *GameState) Clone() *GameState {
	c := *s

	c.Teams = append([]league.Team(nil), s.Teams...)
	c.Customers = append([]book.Customer(nil), s.Customers...)
	c.Bets = append([]book.Bet(nil), s.Bets...)
	c.Debts = append([]book.Debt(nil), s.Debts...)
	c.Log = append([]LogEntry(nil), s.Log...)
	c.AvailableMissions = append([]missions.Mission(nil), s.AvailableMissions...)
	c.HedgedGameIDs = append([]string(nil), s.HedgedGameIDs...)
	c.FixedGames = append([]FixedGame(nil), s.FixedGames...)

	c.Games = make([]league.Game, len(s.Games))
	for i, g := range s.Games {
		g.News = append([]league.TeamNews(nil), g.News...)
		if g.Final != nil {
			final := *g.Final
			g.Final = &final
		}
		c.Games[i] = g
	}

	if s.PendingNonPayer != nil {
		popup := *s.PendingNonPayer
		c.PendingNonPayer = &popup
	}

	return &c
}

// Team returns a pointer into the state's team slice, or nil.
func (s *GameState) Team(id string) *league.Team {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i]
		}
	}
	return nil
}

// Game returns a pointer into the state's game slice, or nil.
func (s *GameState) Game(id string) *league.Game {
	for i := range s.Games {
		if s.Games[i].ID == id {
			return &s.Games[i]
		}
	}
	return nil
}

// Customer returns a pointer into the state's customer slice, or nil.
func (s *GameState) Customer(id string) *book.Customer {
	for i := range s.Customers {
		if s.Customers[i].ID == id {
			return &s.Customers[i]
		}
	}
	return nil
}

// WeekGames returns the current week's games.
func (s *GameState) WeekGames() []league.Game {
	var out []league.Game
	for _, g := range s.Games {
		if g.Week == s.Week {
			out = append(out, g)
		}
	}
	return out
}

// WeekBets returns bets on the current week's games.
func (s *GameState) WeekBets() []book.Bet {
	ids := make(map[string]bool)
	for _, g := range s.Games {
		if g.Week == s.Week {
			ids[g.ID] = true
		}
	}
	var out []book.Bet
	for _, b := range s.Bets {
		if ids[b.GameID] {
			out = append(out, b)
		}
	}
	return out
}

// FixedOutcome returns the bought result for a game, if any.
func (s *GameState) FixedOutcome(gameID string) (lines.Side, bool) {
	for _, f := range s.FixedGames {
		if f.GameID == gameID {
			return f.Outcome, true
		}
	}
	return "", false
}

func (s *GameState) appendLog(level LogLevel, format string, args ...any) {
	s.Log = append(s.Log, LogEntry{
		ID:      uuid.NewString(),
		Week:    s.Week,
		Day:     s.Day,
		Message: fmt.Sprintf(format, args...),
		Level:   level,
	})
}

// EncodeSnapshot serializes a state for the save slot.
func EncodeSnapshot(s *GameState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot restores a state from the save slot.
func DecodeSnapshot(data []byte) (*GameState, error) {
	var s GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &s, nil
}
