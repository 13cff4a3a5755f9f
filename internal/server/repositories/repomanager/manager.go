// Package repomanager wires the concrete repositories to a shared database
// handle and runs schema migrations at startup.
package repomanager

import (
	"context"

	"github.com/tzetzo/task-manager-api/internal/server/repositories/accounts"
	"github.com/tzetzo/task-manager-api/internal/server/repositories/sessiontokens"
	"github.com/tzetzo/task-manager-api/internal/server/repositories/tasks"
)

type RepositoryManager interface {
	Accounts() accounts.Repository
	SessionTokens() sessiontokens.Repository
	Tasks() tasks.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
