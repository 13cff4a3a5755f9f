// Package tasks persists owned-task records. Ownership is carried only as
// owner_id; listing and cascade deletion are explicit queries, never derived
// from the account record.
package tasks

import (
	"context"

	"github.com/tzetzo/task-manager-api/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string, ownerID string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
