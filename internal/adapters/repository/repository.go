package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/raffle/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/raffle/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/raffle/internal/config"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
)

// OpenDB connects to the configured database and verifies the connection.
func OpenDB(cfg config.Config) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.DatabaseType {
	case config.DatabasePostgres:
		db, err = sql.Open("postgres", cfg.Postgres.ConnString())
	case config.DatabaseSQLite:
		db, err = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrate applies the schema in the given direction for the configured
// database.
func Migrate(cfg config.Config, db *sql.DB, direction string) error {
	switch cfg.DatabaseType {
	case config.DatabasePostgres:
		return postgres.Migrate(db, direction)
	case config.DatabaseSQLite:
		switch direction {
		case "up":
			return sqlite.CreateSchema(db)
		case "down":
			return sqlite.DropSchema(db)
		}
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	return fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
}

func NewParticipantStore(cfg config.Config, db *sql.DB) ports.ParticipantStore {
	if cfg.DatabaseType == config.DatabaseSQLite {
		return sqlite.NewParticipantRepository(db, cfg.PageSize)
	}
	return postgres.NewParticipantRepository(db, cfg.PageSize)
}
