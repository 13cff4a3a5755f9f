package models

import "time"

// Task is an owned-task record. It references its account only through
// OwnerID; the account side never stores task ids.
type Task struct {
	ID          string
	Description string
	Completed   bool
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PublicTask is the response shape of a task.
type PublicTask struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Task) Public() PublicTask {
	return PublicTask{
		ID:          t.ID,
		Description: t.Description,
		Completed:   t.Completed,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
