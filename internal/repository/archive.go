package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gridlabsinc/gridtactoe-backend/internal/apperror"
	"github.com/gridlabsinc/gridtactoe-backend/internal/entity"
)

// GameRecord is the terminal state of a finished game as persisted to
// the archive. Live sessions are never stored; a session is archived
// once, when it leaves the registry.
type GameRecord struct {
	ID         int             `json:"id"`
	Board      [][]string      `json:"board"`
	Players    []entity.Player `json:"players"`
	Outcome    entity.Outcome  `json:"outcome"`
	FinishedAt time.Time       `json:"finished_at"`
}

type ArchiveRepository interface {
	Save(ctx context.Context, record *GameRecord) error
	GetByID(ctx context.Context, id int) (*GameRecord, error)
}

type dbArchive struct {
	client *redis.Client
}

func NewArchiveRepository(client *redis.Client) ArchiveRepository {
	return &dbArchive{
		client: client,
	}
}

func (that *dbArchive) Save(ctx context.Context, record *GameRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal game record: %w", err)
	}

	err = that.client.Set(ctx, archiveKey(record.ID), recordJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set game record: %w", err)
	}

	return nil
}

func (that *dbArchive) GetByID(ctx context.Context, id int) (*GameRecord, error) {
	response, err := that.client.Get(ctx, archiveKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game record by id: %w", err)
	}

	var record GameRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game record: %w", err)
	}

	return &record, nil
}

func archiveKey(id int) string {
	return "archive:game:" + strconv.Itoa(id)
}
