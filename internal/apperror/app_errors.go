package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameInactive     = errors.New("game is no longer active")
	ErrGameFull         = errors.New("game is full")
	ErrGameNotFound     = errors.New("game not found")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrCellOutOfRange   = errors.New("cell is out of range")
	ErrNoActiveGames    = errors.New("no active games")
)
