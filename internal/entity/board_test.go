package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridlabsinc/gridtactoe-backend/internal/apperror"
)

func TestBoard_Mark(t *testing.T) {
	t.Run("Writes a symbol into an empty cell", func(t *testing.T) {
		// Given: an empty 3x3 board
		board := NewBoard(3)

		// When: marking a cell
		err := board.Mark(1, 2, "X")

		// Then: the cell holds the symbol
		require.NoError(t, err)
		assert.Equal(t, "X", board.Cell(1, 2))
	})

	t.Run("Never allows two marks on the same cell", func(t *testing.T) {
		// Given: a board with one marked cell
		board := NewBoard(3)
		require.NoError(t, board.Mark(0, 0, "X"))

		// When: marking the same cell again
		err := board.Mark(0, 0, "O")

		// Then: the mark is rejected and the cell is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, "X", board.Cell(0, 0))
	})

	t.Run("Rejects coordinates outside the board", func(t *testing.T) {
		board := NewBoard(3)

		for _, move := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
			err := board.Mark(move[0], move[1], "X")
			assert.ErrorIs(t, err, apperror.ErrCellOutOfRange)
		}
	})

	t.Run("Never creates a board smaller than the minimum", func(t *testing.T) {
		board := NewBoard(1)

		assert.Equal(t, MinBoardSize, board.Size())
	})
}

func TestBoard_Grow(t *testing.T) {
	t.Run("Preserves every mark at its original coordinates", func(t *testing.T) {
		// Given: a 3x3 board with marks
		board := NewBoard(3)
		require.NoError(t, board.Mark(0, 0, "X"))
		require.NoError(t, board.Mark(2, 2, "O"))
		require.NoError(t, board.Mark(1, 0, "∆"))

		// When: growing the board
		board.Grow(6)

		// Then: size changed and all marks stayed put
		assert.Equal(t, 6, board.Size())
		assert.Equal(t, "X", board.Cell(0, 0))
		assert.Equal(t, "O", board.Cell(2, 2))
		assert.Equal(t, "∆", board.Cell(1, 0))
		assert.Equal(t, EmptyCell, board.Cell(5, 5))
	})

	t.Run("Never shrinks", func(t *testing.T) {
		// Given: a 6x6 board with a mark outside the 3x3 corner
		board := NewBoard(6)
		require.NoError(t, board.Mark(5, 5, "X"))

		// When: asked for a smaller size
		board.Grow(3)

		// Then: nothing changes
		assert.Equal(t, 6, board.Size())
		assert.Equal(t, "X", board.Cell(5, 5))
	})
}

func TestBoard_OutcomeFrom(t *testing.T) {
	mark := func(t *testing.T, board *Board, symbol string, cells ...[2]int) {
		t.Helper()
		for _, cell := range cells {
			require.NoError(t, board.Mark(cell[0], cell[1], symbol))
		}
	}

	t.Run("Declares a horizontal run of three the winner", func(t *testing.T) {
		board := NewBoard(3)
		mark(t, board, "X", [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})

		outcome := board.OutcomeFrom(0, 2)

		assert.Equal(t, Outcome{Winner: "X"}, outcome)
	})

	t.Run("Declares a vertical run of three the winner", func(t *testing.T) {
		board := NewBoard(3)
		mark(t, board, "O", [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1})

		outcome := board.OutcomeFrom(1, 1)

		assert.Equal(t, Outcome{Winner: "O"}, outcome)
	})

	t.Run("Declares a main-diagonal run of three the winner", func(t *testing.T) {
		board := NewBoard(3)
		mark(t, board, "X", [2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2})

		outcome := board.OutcomeFrom(2, 2)

		assert.Equal(t, Outcome{Winner: "X"}, outcome)
	})

	t.Run("Declares an anti-diagonal run of three the winner", func(t *testing.T) {
		board := NewBoard(3)
		mark(t, board, "O", [2]int{0, 2}, [2]int{1, 1}, [2]int{2, 0})

		outcome := board.OutcomeFrom(1, 1)

		assert.Equal(t, Outcome{Winner: "O"}, outcome)
	})

	t.Run("Win length stays three on a large board", func(t *testing.T) {
		// Given: an 8x8 board with a run completed in the middle
		board := NewBoard(8)
		mark(t, board, "#", [2]int{4, 3}, [2]int{4, 5}, [2]int{4, 4})

		outcome := board.OutcomeFrom(4, 4)

		assert.Equal(t, Outcome{Winner: "#"}, outcome)
	})

	t.Run("A run of two is no outcome", func(t *testing.T) {
		board := NewBoard(3)
		mark(t, board, "X", [2]int{0, 0}, [2]int{0, 1})

		outcome := board.OutcomeFrom(0, 1)

		assert.False(t, outcome.Decided())
	})

	t.Run("Only runs through the played cell count", func(t *testing.T) {
		// Given: a run of three far away from the cell evaluated
		board := NewBoard(6)
		mark(t, board, "X", [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})
		mark(t, board, "O", [2]int{5, 5})

		outcome := board.OutcomeFrom(5, 5)

		assert.False(t, outcome.Decided())
	})

	t.Run("Full board without a run is a draw", func(t *testing.T) {
		// Given: a full 3x3 board with no three-in-a-row anywhere
		board := NewBoard(3)
		mark(t, board, "X", [2]int{0, 0}, [2]int{0, 2}, [2]int{1, 0}, [2]int{2, 1}, [2]int{2, 2})
		mark(t, board, "O", [2]int{0, 1}, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 0})

		// When: the last move is evaluated
		outcome := board.OutcomeFrom(2, 2)

		// Then: the outcome is a draw, never a false win
		assert.Equal(t, Outcome{Draw: true}, outcome)
	})

	t.Run("Empty cell yields no outcome", func(t *testing.T) {
		board := NewBoard(3)

		outcome := board.OutcomeFrom(1, 1)

		assert.False(t, outcome.Decided())
	})
}
