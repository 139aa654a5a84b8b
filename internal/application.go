package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gridlabsinc/gridtactoe-backend/internal/config"
	"github.com/gridlabsinc/gridtactoe-backend/internal/game"
	"github.com/gridlabsinc/gridtactoe-backend/internal/repository"
	"github.com/gridlabsinc/gridtactoe-backend/internal/repository/storage"
	"github.com/gridlabsinc/gridtactoe-backend/internal/usecase"
	"github.com/gridlabsinc/gridtactoe-backend/transport/rest"
	"github.com/gridlabsinc/gridtactoe-backend/transport/tcp"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	archiveRepo := repository.NewArchiveRepository(redisStorage.Connection)
	registry := game.NewRegistry()
	gameManager := usecase.NewGameManager(logger, registry, archiveRepo)

	// run HTTP status server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, gameManager); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run game server
	tcpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting game server", "addr", conf.Game.GetGameAddr())
		tcpServer := tcp.New(logger, gameManager)
		if tcpErr := tcpServer.Start(ctx, conf.Game.GetGameAddr()); tcpErr != nil {
			log.Error("game server error", "error", tcpErr)
			tcpErrCh <- tcpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-tcpErrCh:
		return fmt.Errorf("game server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
