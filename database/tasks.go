package database

import (
	"context"
	"database/sql"

	"github.com/taskward/taskward/apperr"
	"github.com/taskward/taskward/models"
)

// TaskStore persists tasks in the tasks table. Every read and write is
// scoped by owner_id in the WHERE clause, so a task owned by someone
// else is indistinguishable from one that does not exist.
type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func (s *TaskStore) Insert(ctx context.Context, task *models.Task) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, due_date, status, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		task.ID, task.Title, task.Description, task.DueDate, task.Status,
		task.OwnerID, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *TaskStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, due_date, status, owner_id, created_at, updated_at
		 FROM tasks WHERE owner_id = $1 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.DueDate,
			&task.Status, &task.OwnerID, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, apperr.Internal(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}
	return tasks, nil
}

func (s *TaskStore) GetOwned(ctx context.Context, ownerID, id string) (*models.Task, error) {
	var task models.Task
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, due_date, status, owner_id, created_at, updated_at
		 FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID).
		Scan(&task.ID, &task.Title, &task.Description, &task.DueDate,
			&task.Status, &task.OwnerID, &task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.CodeNotFound, "No such task")
	} else if err != nil {
		return nil, apperr.Internal(err)
	}
	return &task, nil
}

func (s *TaskStore) Update(ctx context.Context, task *models.Task) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = $1, description = $2, due_date = $3, status = $4, updated_at = $5
		 WHERE id = $6 AND owner_id = $7`,
		task.Title, task.Description, task.DueDate, task.Status, task.UpdatedAt,
		task.ID, task.OwnerID,
	)
	if err != nil {
		return apperr.Internal(err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return apperr.Internal(err)
	}
	if count == 0 {
		return apperr.New(apperr.CodeNotFound, "No such task")
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return apperr.Internal(err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return apperr.Internal(err)
	}
	if count == 0 {
		return apperr.New(apperr.CodeNotFound, "No such task")
	}
	return nil
}
