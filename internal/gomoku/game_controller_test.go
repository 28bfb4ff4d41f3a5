package gomoku

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRand int

func (that fixedRand) Intn(int) int {
	return int(that)
}

func newController(dimension int, first entity.Mark) *GameController {
	return NewGameController(entity.NewGame("123", dimension, first), FirstTurnX, fixedRand(0))
}

func TestParseFirstTurn(t *testing.T) {
	rule, err := ParseFirstTurn("o")
	require.NoError(t, err)
	assert.Equal(t, FirstTurnO, rule)

	_, err = ParseFirstTurn("both")
	assert.ErrorIs(t, err, ErrUnknownFirstTurn)
}

func TestFirstTurn_Mark(t *testing.T) {
	assert.Equal(t, entity.PlayerX, FirstTurnX.Mark(fixedRand(1)))
	assert.Equal(t, entity.PlayerO, FirstTurnO.Mark(fixedRand(0)))
	assert.Equal(t, entity.PlayerX, FirstTurnRandom.Mark(fixedRand(0)))
	assert.Equal(t, entity.PlayerO, FirstTurnRandom.Mark(fixedRand(1)))
}

func TestGameController_ApplyMove(t *testing.T) {
	t.Run("Places the current mark and flips the turn", func(t *testing.T) {
		// Given: a fresh game with X to move
		controller := newController(10, entity.PlayerX)

		// When: X plays (0,0)
		applied := controller.ApplyMove(0, 0)

		// Then: the move is on the board and in history and O is next
		require.True(t, applied)
		assert.Equal(t, entity.PlayerX, controller.Board().At(0, 0))
		assert.Equal(t, []entity.Move{{Row: 0, Col: 0, Mark: entity.PlayerX}}, controller.History())
		assert.Equal(t, entity.GameStatus{Status: entity.StatusInProgress, Turn: entity.PlayerO}, controller.Status())
	})

	t.Run("Turns alternate strictly", func(t *testing.T) {
		// Given: a fresh game with O to move
		controller := newController(10, entity.PlayerO)

		// When: three moves are applied
		controller.ApplyMove(0, 0)
		controller.ApplyMove(0, 1)
		controller.ApplyMove(0, 2)

		// Then: marks alternate starting with O
		board := controller.Board()
		assert.Equal(t, entity.PlayerO, board.At(0, 0))
		assert.Equal(t, entity.PlayerX, board.At(0, 1))
		assert.Equal(t, entity.PlayerO, board.At(0, 2))
		assert.Equal(t, entity.PlayerX, controller.Turn())
	})

	t.Run("Occupied cell is ignored", func(t *testing.T) {
		// Given: X already at (3,3)
		controller := newController(10, entity.PlayerX)
		require.True(t, controller.ApplyMove(3, 3))

		// When: O plays the same cell
		applied := controller.ApplyMove(3, 3)

		// Then: nothing changes
		assert.False(t, applied)
		assert.Equal(t, entity.PlayerO, controller.Turn())
		assert.Len(t, controller.History(), 1)
		assert.Equal(t, entity.PlayerX, controller.Board().At(3, 3))
	})

	t.Run("Five in a row wins and freezes the game", func(t *testing.T) {
		// Given: X builds (4,4)..(4,7) while O plays row 0
		controller := newController(10, entity.PlayerX)
		for col := 4; col < 8; col++ {
			require.True(t, controller.ApplyMove(4, col))
			require.True(t, controller.ApplyMove(0, col))
		}

		assert.Empty(t, controller.WinningLine())

		// When: X plays (4,8)
		require.True(t, controller.ApplyMove(4, 8))

		// Then: X has won with the five cells
		status := controller.Status()
		assert.Equal(t, entity.StatusWon, status.Status)
		assert.Equal(t, entity.PlayerX, status.Winner)
		assert.Equal(t, []entity.Coord{{Row: 4, Col: 4}, {Row: 4, Col: 5}, {Row: 4, Col: 6}, {Row: 4, Col: 7}, {Row: 4, Col: 8}}, controller.WinningLine())

		// And: further moves are ignored
		before := controller.Board()
		assert.False(t, controller.ApplyMove(9, 9))
		assert.Equal(t, before.Rows(), controller.Board().Rows())
		assert.Len(t, controller.History(), 9)
	})

	t.Run("Coordinates off the board panic", func(t *testing.T) {
		controller := newController(10, entity.PlayerX)

		assert.Panics(t, func() { controller.ApplyMove(10, 0) })
		assert.Panics(t, func() { controller.ApplyMove(0, -1) })
	})
}

func TestGameController_Undo(t *testing.T) {
	t.Run("Undo is the inverse of ApplyMove", func(t *testing.T) {
		// Given: a game with two moves
		controller := newController(10, entity.PlayerX)
		controller.ApplyMove(1, 1)
		controller.ApplyMove(2, 2)

		boardBefore := controller.Board().Rows()
		statusBefore := controller.Status()
		historyBefore := controller.History()

		// When: applying a move and undoing it
		require.True(t, controller.ApplyMove(5, 5))
		require.True(t, controller.Undo())

		// Then: board, status and history are as before
		assert.Equal(t, boardBefore, controller.Board().Rows())
		assert.Equal(t, statusBefore, controller.Status())
		assert.Equal(t, historyBefore, controller.History())
	})

	t.Run("Undo on empty history is ignored", func(t *testing.T) {
		// Given: a fresh game
		controller := newController(10, entity.PlayerO)

		// When: undoing
		undone := controller.Undo()

		// Then: nothing changes
		assert.False(t, undone)
		assert.Equal(t, entity.PlayerO, controller.Turn())
		assert.Empty(t, controller.History())
	})

	t.Run("Undo after a win returns to in progress", func(t *testing.T) {
		// Given: X has won on row 4
		controller := newController(10, entity.PlayerX)
		for col := 4; col < 8; col++ {
			controller.ApplyMove(4, col)
			controller.ApplyMove(0, col)
		}

		controller.ApplyMove(4, 8)
		require.Equal(t, entity.StatusWon, controller.Status().Status)

		// When: undoing the winning move
		require.True(t, controller.Undo())

		// Then: the game is in progress again with X to move and no line
		assert.Equal(t, entity.GameStatus{Status: entity.StatusInProgress, Turn: entity.PlayerX}, controller.Status())
		assert.Empty(t, controller.WinningLine())
		assert.True(t, controller.Board().IsEmpty(4, 8))
	})

	t.Run("Undo after a win without the winning move still clears the win", func(t *testing.T) {
		// Given: X has won and O's earlier move is on top of the history
		game := entity.NewGame("123", 10, entity.PlayerX)
		controller := NewGameController(game, FirstTurnX, fixedRand(0))
		controller.ApplyMove(9, 9)
		game.Winner = entity.PlayerX
		game.WinningLine = []entity.Coord{{Row: 0, Col: 0}}

		// When: undoing
		require.True(t, controller.Undo())

		// Then: the result is cleared without re-running detection
		assert.Equal(t, entity.StatusInProgress, controller.Status().Status)
	})

	t.Run("Undo down to the start restores the initial state", func(t *testing.T) {
		// Given: a game with k moves
		controller := newController(6, entity.PlayerO)
		moves := []entity.Coord{{Row: 0, Col: 0}, {Row: 5, Col: 5}, {Row: 2, Col: 3}, {Row: 3, Col: 2}}
		for _, move := range moves {
			require.True(t, controller.ApplyMove(move.Row, move.Col))
		}

		// When: undoing k times
		for range moves {
			require.True(t, controller.Undo())
		}

		// Then: the board is empty and the original mark is to move
		assert.Equal(t, entity.NewBoard(6).Rows(), controller.Board().Rows())
		assert.Equal(t, entity.PlayerO, controller.Turn())
		assert.False(t, controller.Undo())
	})
}

func TestGameController_Restart(t *testing.T) {
	t.Run("Restart with a new dimension", func(t *testing.T) {
		// Given: a 10x10 game in progress
		controller := newController(10, entity.PlayerO)
		controller.ApplyMove(0, 0)
		controller.ApplyMove(1, 1)

		// When: restarting with 12
		controller.Restart(12)

		// Then: a fresh 12x12 game with X to move
		board := controller.Board()
		assert.Equal(t, 12, board.Dimension())
		assert.Len(t, board.EmptyCells(), 144)
		assert.Empty(t, controller.History())
		assert.Equal(t, entity.GameStatus{Status: entity.StatusInProgress, Turn: entity.PlayerX}, controller.Status())
	})

	t.Run("Zero dimension keeps the current size and clears a win", func(t *testing.T) {
		// Given: a won 10x10 game
		controller := NewGameController(entity.NewGame("123", 10, entity.PlayerX), FirstTurnRandom, fixedRand(1))
		for col := 0; col < 4; col++ {
			controller.ApplyMove(0, col)
			controller.ApplyMove(1, col)
		}

		controller.ApplyMove(0, 4)
		require.Equal(t, entity.StatusWon, controller.Status().Status)

		// When: restarting without a dimension
		controller.Restart(0)

		// Then: same size, no winner, first mark from the random rule
		assert.Equal(t, 10, controller.Board().Dimension())
		assert.Empty(t, controller.WinningLine())
		assert.Equal(t, entity.PlayerO, controller.Turn())
	})
}

func TestGameController_Board(t *testing.T) {
	// Given: a controller and its board view
	controller := newController(8, entity.PlayerX)
	view := controller.Board()

	// When: the view is modified
	view.Place(0, 0, entity.PlayerO)

	// Then: the game is untouched
	assert.True(t, controller.Board().IsEmpty(0, 0))
	assert.True(t, controller.ApplyMove(0, 0))
}
