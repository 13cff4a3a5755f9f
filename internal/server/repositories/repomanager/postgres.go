package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tzetzo/task-manager-api/internal/server/migrations"
	"github.com/tzetzo/task-manager-api/internal/server/repositories/accounts"
	"github.com/tzetzo/task-manager-api/internal/server/repositories/sessiontokens"
	"github.com/tzetzo/task-manager-api/internal/server/repositories/tasks"
)

type PostgresRepositoryManager struct {
	db            *sql.DB
	accounts      accounts.Repository
	sessionTokens sessiontokens.Repository
	tasks         tasks.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *PostgresRepositoryManager) SessionTokens() sessiontokens.Repository {
	return m.sessionTokens
}

func (m *PostgresRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:            db,
		accounts:      accounts.NewPostgresRepository(db),
		sessionTokens: sessiontokens.NewPostgresRepository(db),
		tasks:         tasks.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
