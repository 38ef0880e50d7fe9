package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/raffle/internal/adapters/repository/storetest"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
)

type seeder struct {
	db *sql.DB
}

func (s seeder) SetCurrentPoll(t *testing.T, pollID int64) {
	t.Helper()
	_, err := s.db.Exec(`INSERT INTO config (id, value) VALUES ('CurrentPoll', $1)
		ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value`, pollID)
	require.NoError(t, err)
}

func (s seeder) CreatePoll(t *testing.T, pollID int64, max int) {
	t.Helper()
	_, err := s.db.Exec(`INSERT INTO polls (id, max) VALUES ($1, $2)`, pollID, max)
	require.NoError(t, err)
}

func setupPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestParticipantRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := setupPostgres(t)

	storetest.Run(t, func(t *testing.T, pageSize int) (ports.ParticipantStore, storetest.Seeder) {
		require.NoError(t, Migrate(db, "down"))
		require.NoError(t, Migrate(db, "up"))
		return NewParticipantRepository(db, pageSize), seeder{db: db}
	})
}

func TestMigrate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := setupPostgres(t)

	require.NoError(t, Migrate(db, "up"))
	require.NoError(t, Migrate(db, "up"))

	_, err := db.Exec(`SELECT poll, added, person, friend FROM participants`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db, "down"))
	_, err = db.Exec(`SELECT 1 FROM participants`)
	require.Error(t, err)

	require.Error(t, Migrate(db, "sideways"))
}
