package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, robotWhite bool, placement Placement) *Game {
	t.Helper()
	g, err := NewGame("game-1", "human", Settings{
		BoardSize:  8,
		RobotWhite: robotWhite,
		Placement:  placement,
		Options:    []EngineOption{WithRand(rand.New(rand.NewPCG(3, 4)))},
	})
	require.NoError(t, err)
	return g
}

func TestNewGame_RejectsBadPlacement(t *testing.T) {
	_, err := NewGame("g", "human", Settings{
		BoardSize: 8,
		Placement: Placement{White: []Position{{X: 8, Y: 0}}},
	})
	require.ErrorIs(t, err, ErrMalformedPlacement)
}

func TestNewGame_RobotOpensAsWhite(t *testing.T) {
	g := newTestGame(t, true, DefaultPlacement(8))

	state := g.GetState()
	require.Len(t, state.MoveHistory, 1)
	require.Equal(t, PlayerColorWhite, state.MoveHistory[0].Color)
	require.True(t, state.MoveHistory[0].Robot)
	require.Equal(t, PlayerColorBlack, state.ToMove)
	require.Equal(t, PlayerColorBlack, state.Players.Human.Color)
	require.NotNil(t, state.LastMove)
}

func TestGame_ClickSelectsThenMoves(t *testing.T) {
	g := newTestGame(t, false, DefaultPlacement(8))

	// clicking an empty cell with nothing selected does nothing
	require.NoError(t, g.Click("human", Position{X: 1, Y: 4}))
	require.Nil(t, g.GetState().SelectedSquare)

	require.NoError(t, g.Click("human", Position{X: 0, Y: 5}))
	state := g.GetState()
	require.Equal(t, &Position{X: 0, Y: 5}, state.SelectedSquare)
	require.Equal(t, []Position{{X: 1, Y: 4}}, state.LegalMoves)

	require.NoError(t, g.Click("human", Position{X: 1, Y: 4}))
	state = g.GetState()
	require.Nil(t, state.SelectedSquare)
	require.Empty(t, state.LegalMoves)
	require.Len(t, state.MoveHistory, 2, "the robot answers straight away")
	require.Equal(t, "a3-b4", state.MoveHistory[0].Notation)
	require.Equal(t, PlayerColorBlack, state.MoveHistory[1].Color)
	require.Equal(t, PlayerColorWhite, state.ToMove)
	require.Nil(t, state.Resolve)
}

func TestGame_MakeMoveErrors(t *testing.T) {
	g := newTestGame(t, false, DefaultPlacement(8))

	err := g.MakeMove("stranger", SimpleMove{From: Position{X: 0, Y: 5}, To: Position{X: 1, Y: 4}})
	require.ErrorIs(t, err, ErrNotPlayer)

	err = g.MakeMove("human", SimpleMove{From: Position{X: 0, Y: 5}, To: Position{X: 0, Y: 4}})
	require.ErrorIs(t, err, ErrIllegalMove)

	_, err = g.Select("human", Position{X: 1, Y: 2})
	require.ErrorIs(t, err, ErrIllegalMove, "black pieces are the robot's")

	_, err = g.Select("human", Position{X: 8, Y: 2})
	require.ErrorIs(t, err, ErrInvalidPosition)

	require.Empty(t, g.GetState().MoveHistory)
}

func TestGame_Select(t *testing.T) {
	g := newTestGame(t, false, DefaultPlacement(8))

	moves, err := g.Select("human", Position{X: 2, Y: 5})
	require.NoError(t, err)
	requirePositions(t, []Position{{X: 1, Y: 4}, {X: 3, Y: 4}}, moves)
}

func TestGame_EndsWithHumanWin(t *testing.T) {
	// white takes the last black man
	g := newTestGame(t, false, Placement{
		White: []Position{{X: 3, Y: 3}},
		Black: []Position{{X: 2, Y: 2}},
	})

	require.NoError(t, g.MakeMove("human", SimpleMove{From: Position{X: 3, Y: 3}, To: Position{X: 1, Y: 1}}))
	state := g.GetState()
	require.NotNil(t, state.Resolve)
	require.Equal(t, ResolveYouWin, *state.Resolve)
	require.Equal(t, PlayerColorWhite, *state.Winner)
	require.Len(t, state.MoveHistory, 1)

	err := g.MakeMove("human", SimpleMove{From: Position{X: 1, Y: 1}, To: Position{X: 0, Y: 0}})
	require.ErrorIs(t, err, ErrGameOver)
}

func TestGame_Restart(t *testing.T) {
	g := newTestGame(t, false, DefaultPlacement(8))
	require.NoError(t, g.MakeMove("human", SimpleMove{From: Position{X: 0, Y: 5}, To: Position{X: 1, Y: 4}}))

	require.ErrorIs(t, g.Restart("stranger"), ErrNotPlayer)
	require.NoError(t, g.Restart("human"))

	state := g.GetState()
	require.Empty(t, state.MoveHistory)
	require.Equal(t, PlayerColorWhite, state.ToMove)
	require.Len(t, state.Pieces, 24)
}
