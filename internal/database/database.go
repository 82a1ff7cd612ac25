package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
)

// Service is the dictionary lookup store. The game arbiter never consults
// it; clients use it to pre-check words before spending a submission.
type Service interface {
	// Exists reports whether word is present in the dictionary.
	Exists(ctx context.Context, word string) (bool, error)

	// Health returns connectivity status for the health endpoint.
	Health(ctx context.Context) map[string]string

	Close()
}

var (
	ErrNotConfigured = errors.New("dictionary database not configured")

	dbURL = os.Getenv("ROBBERY_DB_URL")
)

type service struct {
	pool *pgxpool.Pool
}

// New connects to the dictionary database named by ROBBERY_DB_URL. Returns
// ErrNotConfigured when the variable is unset so the server can run without
// a dictionary attached.
func New(ctx context.Context) (Service, error) {
	if dbURL == "" {
		return nil, ErrNotConfigured
	}
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect dictionary db: %w", err)
	}
	return &service{pool: pool}, nil
}

func (s *service) Exists(ctx context.Context, word string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM words WHERE word = lower($1))", word,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("dictionary lookup %q: %w", word, err)
	}
	return exists, nil
}

func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	stats := make(map[string]string)
	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}
	stats["status"] = "up"
	stats["total_conns"] = fmt.Sprintf("%d", s.pool.Stat().TotalConns())
	return stats
}

func (s *service) Close() {
	s.pool.Close()
}
