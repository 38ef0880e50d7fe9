package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/vncsmyrnk/raffle/internal/adapters/handler/http"
	repo "github.com/vncsmyrnk/raffle/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
	"github.com/vncsmyrnk/raffle/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	AuditSvc    ports.AuditService
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	require.NoError(t, repo.Migrate(db, "up"))

	store := repo.NewParticipantRepository(db, 2)
	storeClient := services.NewStoreClient(store, services.WithRetryInterval(10*time.Millisecond))

	participantHandler := handler.NewParticipantHandler(services.NewParticipantService(storeClient))
	router := handler.NewHandler(participantHandler, handler.NewHealthHandler(store))

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		AuditSvc:    services.NewAuditService(storeClient),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) openPoll(t *testing.T, pollID int64, max int) {
	t.Helper()

	_, err := app.DB.Exec(`INSERT INTO polls (id, max) VALUES ($1, $2)`, pollID, max)
	require.NoError(t, err)
	_, err = app.DB.Exec(`INSERT INTO config (id, value) VALUES ('CurrentPoll', $1)
		ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value`, pollID)
	require.NoError(t, err)
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
