package service

import (
	"errors"
	"testing"

	"github.com/artem-pershin/checkers/internal/model"
	"github.com/stretchr/testify/require"
)

func defaultSettings() (model.Settings, error) {
	return model.Settings{BoardSize: 8, Placement: model.DefaultPlacement(8)}, nil
}

func TestGameService_CreateAndPlay(t *testing.T) {
	gs := NewGameService(NewGameManager(defaultSettings))

	gameID, err := gs.CreateGame("alice")
	require.NoError(t, err)
	require.NotEmpty(t, gameID)

	state, err := gs.GetGameState(gameID)
	require.NoError(t, err)
	require.Len(t, state.Pieces, 24)
	require.Equal(t, "alice", state.Players.Human.ID)

	moves, err := gs.LegalMoves(gameID, "alice", model.Position{X: 6, Y: 5})
	require.NoError(t, err)
	require.ElementsMatch(t, []model.Position{{X: 5, Y: 4}, {X: 7, Y: 4}}, moves)

	require.NoError(t, gs.HandleMove(gameID, "alice", model.SimpleMove{
		From: model.Position{X: 6, Y: 5},
		To:   model.Position{X: 7, Y: 4},
	}))
	state, err = gs.GetGameState(gameID)
	require.NoError(t, err)
	require.Len(t, state.MoveHistory, 2)

	require.NoError(t, gs.Restart(gameID, "alice"))
	state, err = gs.GetGameState(gameID)
	require.NoError(t, err)
	require.Empty(t, state.MoveHistory)
}

func TestGameManager_UnknownGame(t *testing.T) {
	gm := NewGameManager(defaultSettings)

	_, err := gm.GetGame("missing")
	require.ErrorIs(t, err, ErrGameNotFound)
	require.ErrorIs(t, gm.Click("missing", "alice", model.Position{}), ErrGameNotFound)
	require.ErrorIs(t, gm.MakeMove("missing", "alice", model.SimpleMove{}), ErrGameNotFound)
	require.ErrorIs(t, gm.Restart("missing", "alice"), ErrGameNotFound)
	gm.UnregisterConnection("missing", "alice")
}

func TestGameManager_DuplicateAndSettingsErrors(t *testing.T) {
	gm := NewGameManager(defaultSettings)
	require.NoError(t, gm.CreateGame("g1", "alice"))
	require.Error(t, gm.CreateGame("g1", "bob"))

	broken := errors.New("no placement")
	gm = NewGameManager(func() (model.Settings, error) { return model.Settings{}, broken })
	require.ErrorIs(t, gm.CreateGame("g2", "alice"), broken)
}
