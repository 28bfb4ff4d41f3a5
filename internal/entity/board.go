package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// MinDimension is the smallest side length that can hold a five-in-a-row.
const MinDimension = 5

// Board is an N×N grid of marks addressed by (row, col), row-major.
type Board struct {
	cells [][]Mark
}

// NewBoard - creates an all-Empty board. Panics when dimension is below MinDimension.
func NewBoard(dimension int) *Board {
	board := &Board{}
	board.Reset(dimension)

	return board
}

// Reset - replaces the grid with a fresh all-Empty one of the given dimension.
func (that *Board) Reset(dimension int) {
	if dimension < MinDimension {
		panic(fmt.Errorf("%w: %d", apperror.ErrInvalidDimension, dimension))
	}

	cells := make([][]Mark, dimension)
	for row := range cells {
		cells[row] = make([]Mark, dimension)
	}

	that.cells = cells
}

func (that *Board) Dimension() int {
	return len(that.cells)
}

// Contains - reports whether (row, col) lies on the board.
func (that *Board) Contains(row, col int) bool {
	return row >= 0 && row < len(that.cells) && col >= 0 && col < len(that.cells)
}

func (that *Board) At(row, col int) Mark {
	that.mustContain(row, col)

	return that.cells[row][col]
}

func (that *Board) IsEmpty(row, col int) bool {
	return that.At(row, col) == Empty
}

// Place - sets an empty cell. Placing on an occupied cell is a caller bug and panics.
func (that *Board) Place(row, col int, mark Mark) {
	if !that.IsEmpty(row, col) {
		panic(fmt.Sprintf("board: cell (%d,%d) is already occupied", row, col))
	}

	that.cells[row][col] = mark
}

// Clear - empties a cell. Only undo may call it.
func (that *Board) Clear(row, col int) {
	that.mustContain(row, col)

	that.cells[row][col] = Empty
}

// Snapshot - returns a deep copy that shares no rows with the live board.
func (that *Board) Snapshot() *Board {
	cells := make([][]Mark, len(that.cells))
	for row := range that.cells {
		cells[row] = make([]Mark, len(that.cells[row]))
		copy(cells[row], that.cells[row])
	}

	return &Board{cells: cells}
}

// EmptyCells - lists empty cells in row-major order.
func (that *Board) EmptyCells() []Coord {
	var coords []Coord

	for row := range that.cells {
		for col, mark := range that.cells[row] {
			if mark == Empty {
				coords = append(coords, Coord{Row: row, Col: col})
			}
		}
	}

	return coords
}

func (that *Board) IsFull() bool {
	for row := range that.cells {
		for _, mark := range that.cells[row] {
			if mark == Empty {
				return false
			}
		}
	}

	return true
}

// Rows - returns a copy of the grid for rendering.
func (that *Board) Rows() [][]Mark {
	return that.Snapshot().cells
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.cells)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells [][]Mark
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if len(cells) < MinDimension {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidDimension, len(cells))
	}

	for row := range cells {
		if len(cells[row]) != len(cells) {
			return fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidDimension, row, len(cells[row]))
		}
	}

	that.cells = cells

	return nil
}

func (that *Board) mustContain(row, col int) {
	if !that.Contains(row, col) {
		panic(fmt.Sprintf("board: cell (%d,%d) is outside a %dx%d board", row, col, len(that.cells), len(that.cells)))
	}
}
