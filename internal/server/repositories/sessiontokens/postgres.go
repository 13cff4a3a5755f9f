package sessiontokens

import (
	"context"
	"fmt"

	"github.com/tzetzo/task-manager-api/internal/dbx"
	"github.com/tzetzo/task-manager-api/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, accountID string, token string) error {
	query :=
		`INSERT INTO session_tokens (account_id, token)
		 VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, accountID, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// ListByAccount returns the token sequence in issuance order.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]models.SessionToken, error) {
	query :=
		`SELECT id, account_id, token, created_at FROM session_tokens
		 WHERE account_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var tokens []models.SessionToken
	for rows.Next() {
		var t models.SessionToken
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Token, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tokens, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, accountID string, token string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM session_tokens WHERE account_id = $1 AND token = $2
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, accountID, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, accountID string, token string) error {
	query :=
		`DELETE FROM session_tokens
		 WHERE account_id = $1 AND token = $2
		 `

	_, err := r.db.ExecContext(ctx, query, accountID, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) DeleteByAccount(ctx context.Context, accountID string) error {
	query :=
		`DELETE FROM session_tokens
		 WHERE account_id = $1
		 `

	_, err := r.db.ExecContext(ctx, query, accountID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
