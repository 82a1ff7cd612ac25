package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/MayoCodes/Robbery/internal/database"
	"github.com/MayoCodes/Robbery/internal/game"
)

type Server struct {
	port int

	db   database.Service
	game *game.Service
}

// NewServer wires the HTTP surface: the websocket game engine plus the
// optional dictionary store. The dictionary is best-effort; without
// ROBBERY_DB_URL the lookup endpoint degrades and everything else runs.
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	db, err := database.New(context.Background())
	if err != nil {
		if errors.Is(err, database.ErrNotConfigured) {
			log.Println("dictionary database not configured, word lookups disabled")
		} else {
			log.Printf("dictionary database unavailable: %v", err)
		}
		db = nil
	}

	engine := game.NewService(game.NewRegistry(), game.NewWSBroadcaster(), game.DefaultConfig())

	newServer := &Server{
		port: port,
		db:   db,
		game: engine,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", newServer.port),
		Handler:      newServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
