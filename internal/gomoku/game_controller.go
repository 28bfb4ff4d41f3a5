package gomoku

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// FirstTurn decides who opens a fresh game.
type FirstTurn string

const (
	FirstTurnRandom FirstTurn = "random"
	FirstTurnX      FirstTurn = "x"
	FirstTurnO      FirstTurn = "o"
)

var ErrUnknownFirstTurn = errors.New("unknown first turn rule")

// Randomizer is the subset of *rand.Rand the engine and the bot need.
type Randomizer interface {
	Intn(n int) int
}

func ParseFirstTurn(value string) (FirstTurn, error) {
	switch rule := FirstTurn(value); rule {
	case FirstTurnRandom, FirstTurnX, FirstTurnO:
		return rule, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFirstTurn, value)
	}
}

// Mark - resolves the rule to the mark that moves first.
func (that FirstTurn) Mark(rng Randomizer) entity.Mark {
	switch that {
	case FirstTurnX:
		return entity.PlayerX
	case FirstTurnO:
		return entity.PlayerO
	default:
		if rng.Intn(2) == 0 {
			return entity.PlayerX
		}

		return entity.PlayerO
	}
}

// GameController owns every mutation of a game's board, history, turn and result.
type GameController struct {
	game      *entity.Game
	firstTurn FirstTurn
	rng       Randomizer
}

func NewGameController(game *entity.Game, firstTurn FirstTurn, rng Randomizer) *GameController {
	return &GameController{
		game:      game,
		firstTurn: firstTurn,
		rng:       rng,
	}
}

// ApplyMove - places the current mark at (row, col) and flips the turn.
// Returns false without touching anything when the game is won or the cell is taken.
// Coordinates off the board panic.
func (that *GameController) ApplyMove(row, col int) bool {
	board := that.game.Board

	if that.game.IsWon() || !board.IsEmpty(row, col) {
		return false
	}

	mark := that.game.Turn

	that.game.History = append(that.game.History, entity.Move{Row: row, Col: col, Mark: mark})
	board.Place(row, col, mark)
	that.game.Turn = mark.Opponent()

	if result, ok := Evaluate(board, row, col); ok {
		that.game.Winner = result.Mark
		that.game.WinningLine = result.Line
	}

	return true
}

// Undo - takes back the last move and returns the game to InProgress.
// Returns false when there is nothing to undo.
func (that *GameController) Undo() bool {
	history := that.game.History
	if len(history) == 0 {
		return false
	}

	last := history[len(history)-1]
	that.game.History = history[:len(history)-1]

	that.game.Board.Clear(last.Row, last.Col)
	that.game.Turn = last.Mark
	that.game.Winner = entity.Empty
	that.game.WinningLine = nil

	return true
}

// Restart - clears the board and history and picks a new first mark.
// A zero dimension keeps the current one.
func (that *GameController) Restart(dimension int) {
	if dimension == 0 {
		dimension = that.game.Dimension()
	}

	that.game.Board.Reset(dimension)
	that.game.History = []entity.Move{}
	that.game.Winner = entity.Empty
	that.game.WinningLine = nil
	that.game.Turn = that.firstTurn.Mark(that.rng)
}

func (that *GameController) Status() entity.GameStatus {
	return that.game.Status()
}

// Board - read-only view of the grid.
func (that *GameController) Board() *entity.Board {
	return that.game.Board.Snapshot()
}

func (that *GameController) WinningLine() []entity.Coord {
	return that.game.Status().WinningLine
}

func (that *GameController) Turn() entity.Mark {
	return that.game.Turn
}

func (that *GameController) History() []entity.Move {
	history := make([]entity.Move, len(that.game.History))
	copy(history, that.game.History)

	return history
}

func (that *GameController) Game() *entity.Game {
	return that.game
}
