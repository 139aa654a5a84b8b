package tcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridlabsinc/gridtactoe-backend/internal/entity"
	"github.com/gridlabsinc/gridtactoe-backend/internal/game"
)

func ongoingState() game.State {
	return game.State{
		ID: 1,
		Board: [][]string{
			{"X", "", ""},
			{"", "O", ""},
			{"", "", ""},
		},
		Size: 3,
		Players: []entity.Player{
			{Seat: 0, Symbol: "X"},
			{Seat: 1, Symbol: "O"},
		},
		Turn:   0,
		Status: game.StatusOngoing,
		Active: true,
	}
}

func TestRenderFor(t *testing.T) {
	t.Run("Waiting game renders the roster banner", func(t *testing.T) {
		state := game.State{
			Status:  game.StatusWaiting,
			Players: []entity.Player{{Seat: 0, Symbol: "X"}},
		}

		payload := renderFor(state, 0)

		assert.Equal(t, "Waiting for players... (1/2 minimum)", payload)
	})

	t.Run("Roster growth during the wait renders the join notice", func(t *testing.T) {
		state := game.State{
			Status: game.StatusWaiting,
			Players: []entity.Player{
				{Seat: 0, Symbol: "X"},
				{Seat: 1, Symbol: "O"},
			},
		}

		payload := renderFor(state, 0)

		assert.Equal(t, "New player joined! Need 0 more player(s) to start...", payload)
	})

	t.Run("Active seat gets the turn prompt", func(t *testing.T) {
		payload := renderFor(ongoingState(), 0)

		assert.Contains(t, payload, "Current turn: X")
		assert.Contains(t, payload, "Players: X, O")
		assert.Contains(t, payload, "Board size: 3x3")
		assert.Contains(t, payload, "Your turn! Enter move (row,col):")
	})

	t.Run("Other seats see whose move it is", func(t *testing.T) {
		payload := renderFor(ongoingState(), 1)

		assert.Contains(t, payload, "Waiting for player X's move...")
		assert.NotContains(t, payload, "Your turn!")
	})

	t.Run("Won game renders the winner line", func(t *testing.T) {
		state := ongoingState()
		state.Status = game.StatusFinished
		state.Outcome = entity.Outcome{Winner: "X"}

		payload := renderFor(state, 1)

		assert.Contains(t, payload, "Game Over! Player X wins!")
		assert.NotContains(t, payload, "Current turn")
	})

	t.Run("Drawn game renders the draw line", func(t *testing.T) {
		state := ongoingState()
		state.Status = game.StatusFinished
		state.Outcome = entity.Outcome{Draw: true}

		payload := renderFor(state, 0)

		assert.Contains(t, payload, "Game Over! It's a draw!")
	})
}

func TestRenderBoard(t *testing.T) {
	t.Run("Pads cells and separates rows with dashes", func(t *testing.T) {
		rendered := renderBoard(ongoingState())

		expected := "\nCurrent board:\n" +
			" X |   |   \n" +
			"-----------\n" +
			"   | O |   \n" +
			"-----------\n" +
			"   |   |   \n"

		require.Equal(t, expected, rendered)
	})
}
