package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridlabsinc/gridtactoe-backend/internal/apperror"
	"github.com/gridlabsinc/gridtactoe-backend/internal/entity"
	"github.com/gridlabsinc/gridtactoe-backend/internal/repository"
	"github.com/gridlabsinc/gridtactoe-backend/testing/suite"
)

func TestArchiveRepository_Save(t *testing.T) {
	ctx, s := suite.New(t)
	repo := repository.NewArchiveRepository(s.Storage)

	t.Run("Round-trips a finished game record", func(t *testing.T) {
		// Given: the terminal state of a won game
		record := &repository.GameRecord{
			ID: 7,
			Board: [][]string{
				{"X", "X", "X"},
				{"O", "O", ""},
				{"", "", ""},
			},
			Players: []entity.Player{
				{Seat: 0, Symbol: "X", ConnID: "conn-a"},
				{Seat: 1, Symbol: "O", ConnID: "conn-b"},
			},
			Outcome:    entity.Outcome{Winner: "X"},
			FinishedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}

		// When: saving and reading it back
		require.NoError(t, repo.Save(ctx, record))
		loaded, err := repo.GetByID(ctx, record.ID)

		// Then: the record comes back unchanged
		require.NoError(t, err)
		assert.Equal(t, record, loaded)
	})

	t.Run("Overwrites an existing record for the same id", func(t *testing.T) {
		record := &repository.GameRecord{ID: 8, Outcome: entity.Outcome{Draw: true}}
		require.NoError(t, repo.Save(ctx, record))

		record.Outcome = entity.Outcome{Winner: "O"}
		require.NoError(t, repo.Save(ctx, record))

		loaded, err := repo.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.Outcome{Winner: "O"}, loaded.Outcome)
	})
}

func TestArchiveRepository_GetByID(t *testing.T) {
	ctx, s := suite.New(t)
	repo := repository.NewArchiveRepository(s.Storage)

	t.Run("Unknown id is a not-found error", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
