package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gridlabsinc/gridtactoe-backend/internal/game"
)

type gamesLister interface {
	JoinableGames() []game.Summary
}

func Start(port string, games gamesLister) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/games", gamesHandler(games))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
