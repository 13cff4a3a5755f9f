// Package sessiontokens persists the per-account token sequence. The
// sequence only grows through Append; there is no expiry, so rows leave only
// via explicit revocation or the account deletion cascade.
package sessiontokens

import (
	"context"

	"github.com/tzetzo/task-manager-api/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, accountID string, token string) error
	ListByAccount(ctx context.Context, accountID string) ([]models.SessionToken, error)
	Exists(ctx context.Context, accountID string, token string) (bool, error)
	Delete(ctx context.Context, accountID string, token string) error
	DeleteByAccount(ctx context.Context, accountID string) error
}
