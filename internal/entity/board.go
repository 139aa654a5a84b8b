package entity

import (
	"fmt"

	"github.com/gridlabsinc/gridtactoe-backend/internal/apperror"
)

const (
	// MinBoardSize is the smallest grid a game starts with.
	MinBoardSize = 3

	// WinLength is the run length that wins a game. It stays at 3 no
	// matter how large the board grows.
	WinLength = 3

	EmptyCell = ""
)

// Symbols is the mark palette. Seats draw from it in join order, so the
// palette size is also the hard player capacity of a game.
var Symbols = []string{"X", "O", "∆", "#", "@", "&", "%", "*", "+", "£", "€", "¥", "§", "¢", "¤"}

// Board is a square grid of cell marks. It carries no locking of its
// own; callers synchronize through the owning game.
type Board struct {
	size  int
	cells [][]string
}

func NewBoard(size int) *Board {
	if size < MinBoardSize {
		size = MinBoardSize
	}

	cells := make([][]string, size)
	for i := range cells {
		cells[i] = make([]string, size)
	}

	return &Board{size: size, cells: cells}
}

func (that *Board) Size() int {
	return that.size
}

// Contains reports whether (row, col) lies on the board.
func (that *Board) Contains(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

func (that *Board) Cell(row, col int) string {
	if !that.Contains(row, col) {
		return EmptyCell
	}

	return that.cells[row][col]
}

// Mark writes a symbol into an empty cell.
func (that *Board) Mark(row, col int, symbol string) error {
	if !that.Contains(row, col) {
		return fmt.Errorf("%w: %d,%d", apperror.ErrCellOutOfRange, row, col)
	}

	if that.cells[row][col] != EmptyCell {
		return fmt.Errorf("%w: %d,%d", apperror.ErrCellOccupied, row, col)
	}

	that.cells[row][col] = symbol

	return nil
}

// Grow enlarges the board in place, keeping every existing mark at its
// original coordinates. A size not larger than the current one is a
// no-op: the board never shrinks.
func (that *Board) Grow(newSize int) {
	if newSize <= that.size {
		return
	}

	cells := make([][]string, newSize)
	for i := range cells {
		cells[i] = make([]string, newSize)
		if i < that.size {
			copy(cells[i], that.cells[i])
		}
	}

	that.size = newSize
	that.cells = cells
}

func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// Cells returns a deep copy of the grid.
func (that *Board) Cells() [][]string {
	cells := make([][]string, that.size)
	for i := range cells {
		cells[i] = make([]string, that.size)
		copy(cells[i], that.cells[i])
	}

	return cells
}

// Outcome is the result of evaluating the board after a move.
type Outcome struct {
	Winner string `json:"winner,omitempty"`
	Draw   bool   `json:"draw,omitempty"`
}

func (that Outcome) Decided() bool {
	return that.Draw || that.Winner != EmptyCell
}

// OutcomeFrom evaluates only the runs passing through (row, col), the
// cell just played. Along each of the four axes it counts contiguous
// same-symbol cells outward in both directions, each direction capped
// at WinLength-1 steps; a total run of WinLength declares that symbol
// the winner. With no winner and no empty cell left the game is a draw.
func (that *Board) OutcomeFrom(row, col int) Outcome {
	symbol := that.Cell(row, col)
	if symbol == EmptyCell {
		return Outcome{}
	}

	axes := [4][2][2]int{
		{{0, 1}, {0, -1}},  // horizontal
		{{1, 0}, {-1, 0}},  // vertical
		{{1, 1}, {-1, -1}}, // main diagonal
		{{1, -1}, {-1, 1}}, // anti-diagonal
	}

	for _, axis := range axes {
		run := 1
		for _, dir := range axis {
			for step := 1; step < WinLength; step++ {
				r, c := row+dir[0]*step, col+dir[1]*step
				if !that.Contains(r, c) || that.cells[r][c] != symbol {
					break
				}
				run++
			}
		}

		if run >= WinLength {
			return Outcome{Winner: symbol}
		}
	}

	if that.IsFull() {
		return Outcome{Draw: true}
	}

	return Outcome{}
}
