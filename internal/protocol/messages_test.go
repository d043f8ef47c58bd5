package protocol

import (
	"testing"

	"github.com/lox/streetbook/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCommand(t *testing.T) {
	t.Parallel()

	cmd, err := DecodeCommand([]byte(`{"type":"command","action":"set_line","game_id":"game-1-0","line":-3.5}`))
	require.NoError(t, err)
	assert.Equal(t, "set_line", cmd.Action)

	action, err := cmd.ToAction()
	require.NoError(t, err)
	assert.Equal(t, engine.SetLine{GameID: "game-1-0", Line: -3.5}, action)
}

func TestDecodeCommandRejectsBadFrames(t *testing.T) {
	t.Parallel()

	_, err := DecodeCommand([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeCommand([]byte(`{"type":"state"}`))
	assert.Error(t, err, "wrong envelope type")
}

func TestToAction(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cmd  Command
		want engine.Action
	}{
		{"new game", Command{Action: "new_game"}, engine.NewGame{}},
		{"rest", Command{Action: "rest"}, engine.Rest{}},
		{"end day", Command{Action: "end_day"}, engine.EndDay{}},
		{"simulate", Command{Action: "simulate_games"}, engine.SimulateGames{}},
		{"dismiss", Command{Action: "dismiss_popup"}, engine.DismissPopup{}},
		{"mission", Command{Action: "do_mission", MissionID: "m1"}, engine.DoMission{MissionID: "m1"}},
		{"collect", Command{Action: "collect_debt", CustomerID: "c1"}, engine.CollectDebt{CustomerID: "c1"}},
		{
			"nonpayer",
			Command{Action: "handle_nonpayer", CustomerID: "c1", Choice: "enforce"},
			engine.HandleNonPayer{CustomerID: "c1", Choice: engine.Enforce},
		},
		{
			"add log",
			Command{Action: "add_log", Message: "marked the ledger", Level: "warning"},
			engine.AddLog{Message: "marked the ledger", Level: engine.LogWarning},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.cmd.ToAction()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToActionValidation(t *testing.T) {
	t.Parallel()

	bad := []Command{
		{Action: "warp_time"},
		{Action: "set_line"},                                            // missing game id
		{Action: "do_mission"},                                          // missing mission id
		{Action: "collect_debt"},                                        // missing customer id
		{Action: "handle_nonpayer", CustomerID: "c1", Choice: "bribe"},  // bad choice
		{Action: "handle_nonpayer", Choice: "enforce"},                  // missing customer id
		{Action: "add_log", Level: "info"},                              // missing message
		{Action: "add_log", Message: "hi", Level: "shouting"},           // bad level
	}
	for _, cmd := range bad {
		_, err := cmd.ToAction()
		assert.Error(t, err, "command %+v should be rejected", cmd)
	}
}
