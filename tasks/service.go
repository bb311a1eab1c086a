package tasks

import (
	"context"
	"time"

	"github.com/taskward/taskward/apperr"
	"github.com/taskward/taskward/models"
	"github.com/taskward/taskward/utils"
)

const dueDateLayout = "2006-01-02"

// Store is the persistence surface for tasks. Implementations must
// scope every lookup and mutation by owner id so that another user's
// task and a missing task produce the same not_found error.
type Store interface {
	Insert(ctx context.Context, task *models.Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)
	GetOwned(ctx context.Context, ownerID, id string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, ownerID, id string) error
}

// CreateInput carries the raw fields of a create request.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

// Patch carries the fields of an update request; nil means the field
// was not supplied and keeps its current value.
type Patch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status"`
}

// Service implements caller-scoped CRUD on tasks. Every operation
// takes the identity resolved by the auth middleware; there is no way
// to reach a task except through its owner.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates the input, naming every empty field at once, and
// persists a task owned by the caller. An omitted status is a
// validation failure; no default is substituted.
func (s *Service) Create(ctx context.Context, caller models.User, in CreateInput) (models.Task, error) {
	var empty []string
	if in.Title == "" {
		empty = append(empty, "title")
	}
	if in.Description == "" {
		empty = append(empty, "description")
	}
	if in.DueDate == "" {
		empty = append(empty, "dueDate")
	}
	if in.Status == "" {
		empty = append(empty, "status")
	}
	if len(empty) > 0 {
		return models.Task{}, apperr.Validation("Please fill all fields", empty...)
	}

	if _, err := time.Parse(dueDateLayout, in.DueDate); err != nil {
		return models.Task{}, apperr.Validation("dueDate must be a YYYY-MM-DD date", "dueDate")
	}
	status, ok := models.ParseTaskStatus(in.Status)
	if !ok {
		return models.Task{}, apperr.Validation("status must be pending or completed", "status")
	}

	id, err := utils.GenerateRandomID()
	if err != nil {
		return models.Task{}, apperr.Internal(err)
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
		OwnerID:     caller.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Insert(ctx, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// List returns all of the caller's tasks and nobody else's.
func (s *Service) List(ctx context.Context, caller models.User) ([]models.Task, error) {
	return s.store.ListByOwner(ctx, caller.ID)
}

// Get returns the caller's task with the given id.
func (s *Service) Get(ctx context.Context, caller models.User, id string) (models.Task, error) {
	task, err := s.store.GetOwned(ctx, caller.ID, id)
	if err != nil {
		return models.Task{}, err
	}
	return *task, nil
}

// Update applies only the supplied fields to the caller's task. A
// supplied value that would leave a required field empty or invalid
// fails validation naming that field.
func (s *Service) Update(ctx context.Context, caller models.User, id string, patch Patch) (models.Task, error) {
	task, err := s.store.GetOwned(ctx, caller.ID, id)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}

	var invalid []string
	if task.Title == "" {
		invalid = append(invalid, "title")
	}
	if task.Description == "" {
		invalid = append(invalid, "description")
	}
	if _, err := time.Parse(dueDateLayout, task.DueDate); err != nil {
		invalid = append(invalid, "dueDate")
	}
	if patch.Status != nil {
		status, ok := models.ParseTaskStatus(*patch.Status)
		if !ok {
			invalid = append(invalid, "status")
		} else {
			task.Status = status
		}
	}
	if len(invalid) > 0 {
		return models.Task{}, apperr.Validation("Please fill all fields", invalid...)
	}

	task.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, task); err != nil {
		return models.Task{}, err
	}
	return *task, nil
}

// Delete removes the caller's task and returns its last snapshot.
func (s *Service) Delete(ctx context.Context, caller models.User, id string) (models.Task, error) {
	task, err := s.store.GetOwned(ctx, caller.ID, id)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.store.Delete(ctx, caller.ID, id); err != nil {
		return models.Task{}, err
	}
	return *task, nil
}
