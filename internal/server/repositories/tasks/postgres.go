package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tzetzo/task-manager-api/internal/common"
	"github.com/tzetzo/task-manager-api/internal/dbx"
	"github.com/tzetzo/task-manager-api/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (description, completed, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, task.Description, task.Completed, task.OwnerID).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query :=
		`SELECT id, description, completed, owner_id, created_at, updated_at FROM tasks
		 WHERE id = $1
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&task.ID, &task.Description, &task.Completed, &task.OwnerID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	query :=
		`SELECT id, description, completed, owner_id, created_at, updated_at FROM tasks
		 WHERE owner_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Description, &t.Completed, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`UPDATE tasks SET description = $1, completed = $2, updated_at = now()
		 WHERE id = $3 AND owner_id = $4
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, task.Description, task.Completed, task.ID, task.OwnerID).
		Scan(&task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string, ownerID string) error {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}

	return nil
}

// DeleteByOwner removes every task owned by the account. Used by the account
// deletion cascade before the account row itself is removed.
func (r *PostgresRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	query :=
		`DELETE FROM tasks
		 WHERE owner_id = $1
		 `

	_, err := r.db.ExecContext(ctx, query, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
