package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

// WinLength is the run of equal marks that ends the game.
const WinLength = 5

// directions are scanned in this order: horizontal, vertical, diagonal "\", diagonal "/".
// Each step points towards the end of the line that is reported last.
var directions = [4]entity.Coord{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: 1},
	{Row: -1, Col: 1},
}

// WinResult is a completed line and the mark that completed it.
type WinResult struct {
	Mark entity.Mark
	Line []entity.Coord
}

// Evaluate - checks whether the mark at (row, col) completes a run of WinLength or more.
// Only the four lines through that cell are examined. The board is not modified.
func Evaluate(board *entity.Board, row, col int) (WinResult, bool) {
	line := FindWinningLine(board, row, col)
	if len(line) == 0 {
		return WinResult{}, false
	}

	return WinResult{Mark: board.At(row, col), Line: line}, true
}

// FindWinningLine - returns the cells of the first winning direction through (row, col),
// ordered from the far negative end to the far positive end. Empty when there is no win.
func FindWinningLine(board *entity.Board, row, col int) []entity.Coord {
	mark := board.At(row, col)
	if mark == entity.Empty {
		return nil
	}

	for _, dir := range directions {
		backward := countRun(board, row, col, -dir.Row, -dir.Col, mark)
		forward := countRun(board, row, col, dir.Row, dir.Col, mark)

		if backward+forward+1 < WinLength {
			continue
		}

		line := make([]entity.Coord, 0, backward+forward+1)
		for step := backward; step >= 1; step-- {
			line = append(line, entity.Coord{Row: row - dir.Row*step, Col: col - dir.Col*step})
		}

		line = append(line, entity.Coord{Row: row, Col: col})

		for step := 1; step <= forward; step++ {
			line = append(line, entity.Coord{Row: row + dir.Row*step, Col: col + dir.Col*step})
		}

		return line
	}

	return nil
}

// IsWinningMove - reports whether placing mark on the empty cell (row, col) would win.
// The board is left as it was.
func IsWinningMove(board *entity.Board, row, col int, mark entity.Mark) bool {
	for _, dir := range directions {
		run := 1 + countRun(board, row, col, -dir.Row, -dir.Col, mark) + countRun(board, row, col, dir.Row, dir.Col, mark)
		if run >= WinLength {
			return true
		}
	}

	return false
}

// countRun - counts consecutive cells holding mark, starting next to (row, col) and moving by (dRow, dCol).
func countRun(board *entity.Board, row, col, dRow, dCol int, mark entity.Mark) int {
	count := 0

	for r, c := row+dRow, col+dCol; board.Contains(r, c) && board.At(r, c) == mark; r, c = r+dRow, c+dCol {
		count++
	}

	return count
}
