// Package protocol defines the JSON wire format between the game server
// and its clients.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/lox/streetbook/internal/engine"
)

const (
	// Client -> Server
	TypeCommand = "command"

	// Server -> Client
	TypeState = "state"
	TypeError = "error"
)

// Command carries a player action. Action names the operation; the other
// fields are that operation's parameters and may be left zero when unused.
type Command struct {
	Type       string  `json:"type"`
	Action     string  `json:"action"`
	GameID     string  `json:"game_id,omitempty"`
	Line       float64 `json:"line,omitempty"`
	MissionID  string  `json:"mission_id,omitempty"`
	CustomerID string  `json:"customer_id,omitempty"`
	Choice     string  `json:"choice,omitempty"`
	Message    string  `json:"message,omitempty"`
	Level      string  `json:"level,omitempty"`
}

// State carries a full snapshot after every accepted command.
type State struct {
	Type  string            `json:"type"`
	State *engine.GameState `json:"state"`
}

// Error reports a rejected or malformed command.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewState(s *engine.GameState) State {
	return State{Type: TypeState, State: s}
}

func NewError(format string, args ...any) Error {
	return Error{Type: TypeError, Message: fmt.Sprintf(format, args...)}
}

// ToAction converts a wire command into an engine action.
func (c Command) ToAction() (engine.Action, error) {
	switch c.Action {
	case "new_game":
		return engine.NewGame{}, nil
	case "set_line":
		if c.GameID == "" {
			return nil, fmt.Errorf("set_line requires game_id")
		}
		return engine.SetLine{GameID: c.GameID, Line: c.Line}, nil
	case "do_mission":
		if c.MissionID == "" {
			return nil, fmt.Errorf("do_mission requires mission_id")
		}
		return engine.DoMission{MissionID: c.MissionID}, nil
	case "rest":
		return engine.Rest{}, nil
	case "end_day":
		return engine.EndDay{}, nil
	case "simulate_games":
		return engine.SimulateGames{}, nil
	case "collect_debt":
		if c.CustomerID == "" {
			return nil, fmt.Errorf("collect_debt requires customer_id")
		}
		return engine.CollectDebt{CustomerID: c.CustomerID}, nil
	case "handle_nonpayer":
		if c.CustomerID == "" {
			return nil, fmt.Errorf("handle_nonpayer requires customer_id")
		}
		choice, err := parseChoice(c.Choice)
		if err != nil {
			return nil, err
		}
		return engine.HandleNonPayer{CustomerID: c.CustomerID, Choice: choice}, nil
	case "dismiss_popup":
		return engine.DismissPopup{}, nil
	case "add_log":
		if c.Message == "" {
			return nil, fmt.Errorf("add_log requires message")
		}
		level, err := parseLevel(c.Level)
		if err != nil {
			return nil, err
		}
		return engine.AddLog{Message: c.Message, Level: level}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", c.Action)
	}
}

func parseLevel(s string) (engine.LogLevel, error) {
	switch engine.LogLevel(s) {
	case engine.LogInfo, engine.LogWin, engine.LogLoss,
		engine.LogWarning, engine.LogDanger, engine.LogNews:
		return engine.LogLevel(s), nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

func parseChoice(s string) (engine.CollectionChoice, error) {
	switch engine.CollectionChoice(s) {
	case engine.LetSlide, engine.Pressure, engine.Enforce, engine.CutOff:
		return engine.CollectionChoice(s), nil
	default:
		return "", fmt.Errorf("unknown collection choice %q", s)
	}
}

// DecodeCommand parses a client frame.
func DecodeCommand(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	if c.Type != TypeCommand {
		return Command{}, fmt.Errorf("unexpected message type %q", c.Type)
	}
	return c, nil
}

// Encode serializes any server message.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return data, nil
}
