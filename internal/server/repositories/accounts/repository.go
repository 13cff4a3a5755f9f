// Package accounts persists account records. The unique index on email is
// enforced here, surfacing as common.ErrEmailAlreadyRegistered.
package accounts

import (
	"context"

	"github.com/tzetzo/task-manager-api/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) (*models.Account, error)
	UpdateAvatar(ctx context.Context, id string, avatar []byte) error
	Delete(ctx context.Context, id string) error
}
