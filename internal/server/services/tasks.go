package services

import (
	"context"
	"strings"

	"github.com/tzetzo/task-manager-api/internal/common"
	"github.com/tzetzo/task-manager-api/internal/server/models"
	"github.com/tzetzo/task-manager-api/internal/server/repositories/tasks"
)

// Tasks exposes owner-scoped task operations. Every method takes the owner
// id explicitly; a task belonging to another account behaves as if it did
// not exist.
type Tasks struct {
	repo tasks.Repository
}

func NewTasks(repo tasks.Repository) *Tasks {
	return &Tasks{repo: repo}
}

type CreateTaskInput struct {
	Description string
	Completed   bool
}

type UpdateTaskInput struct {
	Description *string
	Completed   *bool
}

func (s *Tasks) Create(ctx context.Context, ownerID string, in CreateTaskInput) (*models.Task, error) {

	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return nil, validationError("Description is required")
	}

	task := &models.Task{
		Description: in.Description,
		Completed:   in.Completed,
		OwnerID:     ownerID,
	}

	return s.repo.Create(ctx, task)
}

func (s *Tasks) ListOwned(ctx context.Context, ownerID string) ([]models.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Tasks) Get(ctx context.Context, ownerID, id string) (*models.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	return task, nil
}

func (s *Tasks) Update(ctx context.Context, ownerID, id string, in UpdateTaskInput) (*models.Task, error) {

	task, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			return nil, validationError("Description is required")
		}
		task.Description = desc
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}

	return s.repo.Update(ctx, task)
}

func (s *Tasks) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, id, ownerID)
}
