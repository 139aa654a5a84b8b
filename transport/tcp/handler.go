package tcp

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gridlabsinc/gridtactoe-backend/internal/entity"
	"github.com/gridlabsinc/gridtactoe-backend/internal/game"
	"github.com/gridlabsinc/gridtactoe-backend/internal/usecase"
)

const (
	welcomeMessage = "Welcome to Tic-Tac-Toe! Choose:\n1. Create new game\n2. Join existing game"
	noGamesMessage = "No games available"

	invalidChoiceNotice = "Invalid choice"
	invalidIDNotice     = "Invalid game ID"
	invalidNumberNotice = "Invalid input: Please enter a number"
	cannotJoinNotice    = "Cannot join game - game is inactive or full"
	invalidMoveNotice   = "Invalid move. Try again."
	invalidFormatNotice = "Invalid move format. Use 'row,col' (e.g., '1,2')"
)

// handler runs the protocol for one connection: admission, wait for the
// roster minimum, the turn-taking exchange, termination. It reads only
// its own connection but broadcasts state to every player of its game.
type handler struct {
	logger  *slog.Logger
	manager *usecase.GameManager
	client  *client
	connID  string
}

func (that *handler) run(ctx context.Context) error {
	if err := that.client.Send(welcomeMessage); err != nil {
		return fmt.Errorf("failed to send welcome: %w", err)
	}

	choice, err := that.client.ReadLine()
	if err != nil {
		return fmt.Errorf("failed to read menu choice: %w", err)
	}

	switch choice {
	case "1":
		return that.createGame(ctx)
	case "2":
		return that.joinGame(ctx)
	default:
		return that.client.Send(invalidChoiceNotice)
	}
}

func (that *handler) createGame(ctx context.Context) error {
	session := that.manager.CreateGame()

	player, err := session.Admit(that.connID, that.client)
	if err != nil {
		return fmt.Errorf("failed to admit creator: %w", err)
	}

	notice := fmt.Sprintf("Created game %d. Waiting for at least one more player...", session.ID)
	if err := that.client.Send(notice); err != nil {
		return fmt.Errorf("failed to send creation notice: %w", err)
	}

	return that.play(ctx, session, player)
}

func (that *handler) joinGame(ctx context.Context) error {
	summaries := that.manager.JoinableGames()

	if len(summaries) == 0 {
		if err := that.client.Send(noGamesMessage); err != nil {
			return fmt.Errorf("failed to send no-games notice: %w", err)
		}

		// the client may fall back to creating a game or retry the list
		choice, err := that.client.ReadLine()
		if err != nil {
			return fmt.Errorf("failed to read retry choice: %w", err)
		}

		switch choice {
		case "1":
			return that.createGame(ctx)
		case "2":
			return that.joinGame(ctx)
		default:
			return nil
		}
	}

	lines := make([]string, 0, len(summaries))
	for _, s := range summaries {
		lines = append(lines, fmt.Sprintf("Game %d (%d players, Board: %dx%d)", s.ID, s.Players, s.Size, s.Size))
	}

	if err := that.client.Send(strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to send game list: %w", err)
	}

	idLine, err := that.client.ReadLine()
	if err != nil {
		return fmt.Errorf("failed to read game id: %w", err)
	}

	id, err := strconv.Atoi(idLine)
	if err != nil {
		return that.client.Send(invalidNumberNotice)
	}

	session, err := that.manager.GetGame(id)
	if err != nil {
		return that.client.Send(invalidIDNotice)
	}

	player, err := session.Admit(that.connID, that.client)
	if err != nil {
		return that.client.Send(cannotJoinNotice)
	}

	return that.play(ctx, session, player)
}

// play drives the shared game loop for one seat. Every iteration
// re-broadcasts the current state to all stale recipients, then either
// reads a move (own turn), or blocks on the session's notification
// channel until some state-changing operation signals it.
func (that *handler) play(ctx context.Context, session *game.Session, player entity.Player) error {
	log := that.logger.With("game_id", session.ID, "seat", player.Seat, "symbol", player.Symbol)
	log.Info("player admitted")

	watch, cancel := session.Watch()
	defer cancel()

	// first handler to release evicts and archives; any exit path ends
	// the game for everyone
	defer that.manager.ReleaseGame(ctx, session.ID)

	for {
		state := session.Broadcast(renderFor)

		switch {
		case state.Status == game.StatusFinished:
			log.Info("game finished", "winner", state.Outcome.Winner, "draw", state.Outcome.Draw)
			return nil

		case !state.Active:
			log.Info("game ended before finishing")
			return nil

		case state.Status == game.StatusOngoing && state.Turn == player.Seat:
			if err := that.takeTurn(session, player); err != nil {
				log.Info("player disconnected", "error", err)
				return nil
			}

		default:
			select {
			case <-watch:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// takeTurn blocks on this player's own connection for one move. A
// malformed or rejected move is a retryable notice to this player only;
// a read failure means the player is gone and the game ends.
func (that *handler) takeTurn(session *game.Session, player entity.Player) error {
	line, err := that.client.ReadLine()
	if err != nil {
		return fmt.Errorf("failed to read move: %w", err)
	}

	row, col, ok := parseMove(line)
	if !ok {
		_ = that.client.Send(invalidFormatNotice)
		return nil
	}

	if err := session.ApplyMove(player.Seat, row, col); err != nil {
		_ = that.client.Send(invalidMoveNotice)
	}

	return nil
}

// parseMove parses "row,col" with whitespace around the numbers
// tolerated.
func parseMove(line string) (row, col int, ok bool) {
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	row, errRow := strconv.Atoi(strings.TrimSpace(parts[0]))
	col, errCol := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errRow != nil || errCol != nil {
		return 0, 0, false
	}

	return row, col, true
}
