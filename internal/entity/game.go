package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
)

// Game is the live session record. Board, History, Turn, Winner and WinningLine
// are mutated only by the game controller.
type Game struct {
	ID           string  `json:"id"`
	Board        *Board  `json:"board"`
	History      []Move  `json:"history"`
	Turn         Mark    `json:"turn"`
	Winner       Mark    `json:"winner"`
	WinningLine  []Coord `json:"winning_line"`
	SinglePlayer bool    `json:"single_player"`
	HumanMark    Mark    `json:"human_mark,omitempty"`
	ComputerMark Mark    `json:"computer_mark,omitempty"`
}

// GameStatus is the derived view of a game: who plays next, or who won and how.
type GameStatus struct {
	Status      string  `json:"status"`
	Turn        Mark    `json:"turn,omitempty"`
	Winner      Mark    `json:"winner,omitempty"`
	WinningLine []Coord `json:"winning_line,omitempty"`
}

// NewGame - creates an empty in-progress game with the given first mark.
func NewGame(id string, dimension int, firstTurn Mark) *Game {
	return &Game{
		ID:      id,
		Board:   NewBoard(dimension),
		History: []Move{},
		Turn:    firstTurn,
	}
}

// NewSinglePlayerGame - creates a game where the human plays X and the computer plays O.
func NewSinglePlayerGame(id string, dimension int, firstTurn Mark) *Game {
	game := NewGame(id, dimension, firstTurn)
	game.SinglePlayer = true
	game.HumanMark = PlayerX
	game.ComputerMark = PlayerO

	return game
}

func (that *Game) Dimension() int {
	return that.Board.Dimension()
}

func (that *Game) IsWon() bool {
	return that.Winner != Empty
}

// IsComputerTurn - true when the computer owes a move in a single-player game.
func (that *Game) IsComputerTurn() bool {
	return that.SinglePlayer && !that.IsWon() && that.Turn == that.ComputerMark
}

func (that *Game) Status() GameStatus {
	if that.IsWon() {
		line := make([]Coord, len(that.WinningLine))
		copy(line, that.WinningLine)

		return GameStatus{Status: StatusWon, Winner: that.Winner, WinningLine: line}
	}

	return GameStatus{Status: StatusInProgress, Turn: that.Turn}
}

// Validate - checks a decoded record for consistency before it is handed to the controller.
// Every mark on the board must come from exactly one history move.
func (that *Game) Validate() error {
	if that.Board == nil {
		return fmt.Errorf("%w: game %s has no board", apperror.ErrCorruptedGame, that.ID)
	}

	if that.Turn != PlayerX && that.Turn != PlayerO {
		return fmt.Errorf("%w: turn %q", apperror.ErrCorruptedGame, that.Turn)
	}

	for _, move := range that.History {
		if !that.Board.Contains(move.Row, move.Col) || move.Mark == Empty || that.Board.At(move.Row, move.Col) != move.Mark {
			return fmt.Errorf("%w: history move (%d,%d) does not match the board", apperror.ErrCorruptedGame, move.Row, move.Col)
		}
	}

	dimension := that.Board.Dimension()
	if occupied := dimension*dimension - len(that.Board.EmptyCells()); occupied != len(that.History) {
		return fmt.Errorf("%w: %d marks on the board but %d moves in history", apperror.ErrCorruptedGame, occupied, len(that.History))
	}

	if that.IsWon() != (len(that.WinningLine) > 0) {
		return fmt.Errorf("%w: winner %q with a winning line of %d cells", apperror.ErrCorruptedGame, that.Winner, len(that.WinningLine))
	}

	return nil
}
