package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	// testcontainers panics (rather than returning an error) when no Docker
	// host can be detected at all; fold that into the same skip path.
	container, err := func() (c *postgres.PostgresContainer, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%v", r)
			}
		}()
		return postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("robbery_test"),
			postgres.WithUsername("robbery"),
			postgres.WithPassword("robbery"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
	}()
	if err != nil {
		log.Printf("skipping database tests, container failed to start: %v", err)
		os.Exit(0)
	}

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		panic(err)
	}
	if _, err := pool.Exec(ctx, "CREATE TABLE words (word TEXT PRIMARY KEY)"); err != nil {
		panic(err)
	}
	if _, err := pool.Exec(ctx,
		"INSERT INTO words (word) VALUES ('stone'), ('blister'), ('quilt')"); err != nil {
		panic(err)
	}
	pool.Close()

	dbURL = connString

	code := m.Run()

	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	svc, err := New(ctx)
	require.NoError(t, err)
	defer svc.Close()

	t.Run("known word", func(t *testing.T) {
		ok, err := svc.Exists(ctx, "stone")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("case folded", func(t *testing.T) {
		ok, err := svc.Exists(ctx, "STONE")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown word", func(t *testing.T) {
		ok, err := svc.Exists(ctx, "xqzzy")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	svc, err := New(ctx)
	require.NoError(t, err)
	defer svc.Close()

	stats := svc.Health(ctx)
	assert.Equal(t, "up", stats["status"])
}

func TestNewUnconfigured(t *testing.T) {
	saved := dbURL
	dbURL = ""
	defer func() { dbURL = saved }()

	_, err := New(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
