package service

import (
	"errors"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// minCellsForThreat - below this many empty cells the bot skips looking for set-up moves.
const minCellsForThreat = 3

type BotService interface {
	SelectMove(board *entity.Board, computer, human entity.Mark) (entity.Coord, error)
}

type botService struct {
	rng gomoku.Randomizer
}

func NewBotService(rng gomoku.Randomizer) BotService {
	return &botService{rng: rng}
}

// SelectMove - picks the computer's next cell. In order of priority: win now, block the
// human's win, set up a win for the next turn, any random empty cell.
// The board is never modified.
func (that *botService) SelectMove(board *entity.Board, computer, human entity.Mark) (entity.Coord, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return entity.Coord{}, ErrNoAvailableMoves
	}

	if cell, ok := firstWinningCell(board, availableCells, computer); ok {
		return cell, nil
	}

	if cell, ok := firstWinningCell(board, availableCells, human); ok {
		return cell, nil
	}

	if len(availableCells) >= minCellsForThreat {
		if cell, ok := firstThreatCell(board, availableCells, computer); ok {
			return cell, nil
		}
	}

	return availableCells[that.rng.Intn(len(availableCells))], nil
}

func firstWinningCell(board *entity.Board, cells []entity.Coord, mark entity.Mark) (entity.Coord, bool) {
	for _, cell := range cells {
		if gomoku.IsWinningMove(board, cell.Row, cell.Col, mark) {
			return cell, true
		}
	}

	return entity.Coord{}, false
}

// firstThreatCell - first cell after which the computer would have an immediate win somewhere else.
// Looks one ply ahead only.
func firstThreatCell(board *entity.Board, cells []entity.Coord, mark entity.Mark) (entity.Coord, bool) {
	for _, cell := range cells {
		simulated := board.Snapshot()
		simulated.Place(cell.Row, cell.Col, mark)

		for _, next := range cells {
			if next == cell {
				continue
			}

			if gomoku.IsWinningMove(simulated, next.Row, next.Col, mark) {
				return cell, true
			}
		}
	}

	return entity.Coord{}, false
}
