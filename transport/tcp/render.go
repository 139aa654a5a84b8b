package tcp

import (
	"fmt"
	"strings"

	"github.com/gridlabsinc/gridtactoe-backend/internal/entity"
	"github.com/gridlabsinc/gridtactoe-backend/internal/game"
)

// renderFor composes the full payload one seat should see: a roster
// banner while the game is waiting, otherwise the board plus status
// plus a per-seat turn cue, and the game-over line once finished. The
// session de-duplicates per recipient on the rendered string.
func renderFor(state game.State, seatIndex int) string {
	if state.Status == game.StatusWaiting {
		if len(state.Players) > 1 {
			need := game.MinPlayers - len(state.Players)
			return fmt.Sprintf("New player joined! Need %d more player(s) to start...", need)
		}
		return fmt.Sprintf("Waiting for players... (%d/%d minimum)", len(state.Players), game.MinPlayers)
	}

	var b strings.Builder
	b.WriteString(renderBoard(state))

	if state.Status == game.StatusFinished {
		b.WriteString("\nGame Over! ")
		if state.Outcome.Draw {
			b.WriteString("It's a draw!")
		} else {
			fmt.Fprintf(&b, "Player %s wins!", state.Outcome.Winner)
		}
		return b.String()
	}

	turnSymbol := state.Players[state.Turn].Symbol

	symbols := make([]string, len(state.Players))
	for i, p := range state.Players {
		symbols[i] = p.Symbol
	}

	fmt.Fprintf(&b, "\nCurrent turn: %s\n", turnSymbol)
	fmt.Fprintf(&b, "Players: %s\n", strings.Join(symbols, ", "))
	fmt.Fprintf(&b, "Board size: %dx%d\n", state.Size, state.Size)

	if state.Turn == seatIndex {
		b.WriteString("Your turn! Enter move (row,col):")
	} else {
		fmt.Fprintf(&b, "Waiting for player %s's move...", turnSymbol)
	}

	return b.String()
}

func renderBoard(state game.State) string {
	var b strings.Builder
	b.WriteString("\nCurrent board:\n")

	for i, row := range state.Board {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell == entity.EmptyCell {
				cell = " "
			}
			cells[j] = fmt.Sprintf(" %s ", cell)
		}

		b.WriteString(strings.Join(cells, "|"))
		b.WriteString("\n")

		if i < len(state.Board)-1 {
			b.WriteString(strings.Repeat("-", 4*state.Size-1))
			b.WriteString("\n")
		}
	}

	return b.String()
}
