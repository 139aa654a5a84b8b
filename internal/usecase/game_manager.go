package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/gridlabsinc/gridtactoe-backend/internal/game"
	"github.com/gridlabsinc/gridtactoe-backend/internal/repository"
)

type archive interface {
	Save(ctx context.Context, record *repository.GameRecord) error
}

// GameManager owns session lifecycle around the registry: creation,
// lookup, and end-of-game archival. The registry itself never retains
// finished sessions; they move to the archive and are evicted.
type GameManager struct {
	logger   *slog.Logger
	registry *game.Registry
	archive  archive
}

func NewGameManager(logger *slog.Logger, registry *game.Registry, archive archive) *GameManager {
	return &GameManager{
		logger: logger,

		registry: registry,
		archive:  archive,
	}
}

func (that *GameManager) CreateGame() *game.Session {
	session := that.registry.Create()

	that.logger.Info("game created", "game_id", session.ID)

	return session
}

func (that *GameManager) GetGame(id int) (*game.Session, error) {
	return that.registry.Get(id)
}

func (that *GameManager) JoinableGames() []game.Summary {
	return that.registry.ListJoinable()
}

// ReleaseGame evicts a session from the registry and, when it reached a
// win or draw, writes its terminal state to the archive. The eviction
// is the exactly-once gate: every handler of a session calls this on
// exit, only the first one does the work.
func (that *GameManager) ReleaseGame(ctx context.Context, id int) {
	log := that.logger.With("method", "ReleaseGame")

	session, ok := that.registry.Remove(id)
	if !ok {
		return
	}

	session.End()

	state := session.Snapshot()
	if state.Status != game.StatusFinished {
		log.Info("game aborted before finishing", "game_id", id)
		return
	}

	record := &repository.GameRecord{
		ID:         state.ID,
		Board:      state.Board,
		Players:    state.Players,
		Outcome:    state.Outcome,
		FinishedAt: time.Now(),
	}

	if err := that.archive.Save(ctx, record); err != nil {
		log.Error("failed to archive game", "game_id", id, "error", err)
		return
	}

	log.Info("game archived", "game_id", id, "winner", state.Outcome.Winner, "draw", state.Outcome.Draw)
}
