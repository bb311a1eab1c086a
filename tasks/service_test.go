package tasks

import (
	"context"
	"reflect"
	"testing"

	"github.com/taskward/taskward/apperr"
	"github.com/taskward/taskward/models"
)

// fakeTaskStore keeps tasks in memory with the same ownership-opaque
// contract as the database store: a task owned by someone else is
// reported exactly like a missing one.
type fakeTaskStore struct {
	tasks []models.Task
}

func (f *fakeTaskStore) Insert(_ context.Context, task *models.Task) error {
	f.tasks = append(f.tasks, *task)
	return nil
}

func (f *fakeTaskStore) ListByOwner(_ context.Context, ownerID string) ([]models.Task, error) {
	list := []models.Task{}
	for _, task := range f.tasks {
		if task.OwnerID == ownerID {
			list = append(list, task)
		}
	}
	return list, nil
}

func (f *fakeTaskStore) GetOwned(_ context.Context, ownerID, id string) (*models.Task, error) {
	for _, task := range f.tasks {
		if task.ID == id && task.OwnerID == ownerID {
			clone := task
			return &clone, nil
		}
	}
	return nil, apperr.New(apperr.CodeNotFound, "No such task")
}

func (f *fakeTaskStore) Update(_ context.Context, task *models.Task) error {
	for i, cur := range f.tasks {
		if cur.ID == task.ID && cur.OwnerID == task.OwnerID {
			f.tasks[i] = *task
			return nil
		}
	}
	return apperr.New(apperr.CodeNotFound, "No such task")
}

func (f *fakeTaskStore) Delete(_ context.Context, ownerID, id string) error {
	for i, cur := range f.tasks {
		if cur.ID == id && cur.OwnerID == ownerID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.CodeNotFound, "No such task")
}

var (
	alice = models.User{ID: "user-alice", Username: "alice", Email: "a@x.com"}
	bob   = models.User{ID: "user-bob", Username: "bob", Email: "b@x.com"}
)

func validInput() CreateInput {
	return CreateInput{Title: "T", Description: "D", DueDate: "2025-01-01", Status: "pending"}
}

func TestCreate_PersistsOwnedTask(t *testing.T) {
	svc := NewService(&fakeTaskStore{})

	task, err := svc.Create(context.Background(), alice, validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.ID == "" {
		t.Error("created task has no id")
	}
	if task.OwnerID != alice.ID {
		t.Errorf("owner = %q, want %q", task.OwnerID, alice.ID)
	}
	if task.Status != models.StatusPending {
		t.Errorf("status = %q, want %q", task.Status, models.StatusPending)
	}
}

func TestCreate_ListsEveryMissingField(t *testing.T) {
	svc := NewService(&fakeTaskStore{})

	cases := []struct {
		name  string
		input CreateInput
		want  []string
	}{
		{"missing description", CreateInput{Title: "T", DueDate: "2025-01-01", Status: "pending"}, []string{"description"}},
		{"missing everything", CreateInput{}, []string{"title", "description", "dueDate", "status"}},
		{"missing status", CreateInput{Title: "T", Description: "D", DueDate: "2025-01-01"}, []string{"status"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), alice, tc.input)
			if !apperr.IsCode(err, apperr.CodeValidation) {
				t.Fatalf("got code %q, want %q", apperr.CodeOf(err), apperr.CodeValidation)
			}
			if got := apperr.FieldsOf(err); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("empty fields = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCreate_RejectsUnknownStatusAndBadDate(t *testing.T) {
	svc := NewService(&fakeTaskStore{})

	in := validInput()
	in.Status = "done"
	_, err := svc.Create(context.Background(), alice, in)
	if !apperr.IsCode(err, apperr.CodeValidation) {
		t.Errorf("unknown status: got code %q, want validation", apperr.CodeOf(err))
	}
	if got := apperr.FieldsOf(err); !reflect.DeepEqual(got, []string{"status"}) {
		t.Errorf("fields = %v, want [status]", got)
	}

	in = validInput()
	in.DueDate = "Jan 1st"
	_, err = svc.Create(context.Background(), alice, in)
	if got := apperr.FieldsOf(err); !reflect.DeepEqual(got, []string{"dueDate"}) {
		t.Errorf("fields = %v, want [dueDate]", got)
	}
}

func TestList_IsScopedToCaller(t *testing.T) {
	svc := NewService(&fakeTaskStore{})

	if _, err := svc.Create(context.Background(), alice, validInput()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	mine, err := svc.List(context.Background(), alice)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("alice sees %d tasks, want 1", len(mine))
	}

	theirs, err := svc.List(context.Background(), bob)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(theirs) != 0 {
		t.Errorf("bob sees %d of alice's tasks, want 0", len(theirs))
	}
}

func TestOwnership_OtherUsersTaskLooksMissing(t *testing.T) {
	svc := NewService(&fakeTaskStore{})

	task, err := svc.Create(context.Background(), bob, validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Get(context.Background(), alice, task.ID); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Errorf("Get: got code %q, want %q", apperr.CodeOf(err), apperr.CodeNotFound)
	}
	title := "stolen"
	if _, err := svc.Update(context.Background(), alice, task.ID, Patch{Title: &title}); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Errorf("Update: got code %q, want %q", apperr.CodeOf(err), apperr.CodeNotFound)
	}
	if _, err := svc.Delete(context.Background(), alice, task.ID); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Errorf("Delete: got code %q, want %q", apperr.CodeOf(err), apperr.CodeNotFound)
	}

	// Bob's task is untouched.
	got, err := svc.Get(context.Background(), bob, task.ID)
	if err != nil {
		t.Fatalf("Get by owner returned error: %v", err)
	}
	if got.Title != "T" {
		t.Errorf("title = %q, want %q", got.Title, "T")
	}
}

func TestGet_MissingIDLooksTheSame(t *testing.T) {
	svc := NewService(&fakeTaskStore{})

	_, missingErr := svc.Get(context.Background(), alice, "no-such-id")
	if !apperr.IsCode(missingErr, apperr.CodeNotFound) {
		t.Fatalf("got code %q, want %q", apperr.CodeOf(missingErr), apperr.CodeNotFound)
	}

	task, err := svc.Create(context.Background(), bob, validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	_, foreignErr := svc.Get(context.Background(), alice, task.ID)
	if missingErr.Error() != foreignErr.Error() || apperr.CodeOf(missingErr) != apperr.CodeOf(foreignErr) {
		t.Error("absent and foreign tasks produce distinguishable errors")
	}
}

func TestUpdate_AppliesOnlySuppliedFields(t *testing.T) {
	svc := NewService(&fakeTaskStore{})

	task, err := svc.Create(context.Background(), alice, validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	status := "completed"
	updated, err := svc.Update(context.Background(), alice, task.ID, Patch{Status: &status})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("status = %q, want %q", updated.Status, models.StatusCompleted)
	}
	if updated.Title != task.Title || updated.Description != task.Description || updated.DueDate != task.DueDate {
		t.Errorf("unrelated fields changed: %+v", updated)
	}
	if updated.UpdatedAt.Before(task.UpdatedAt) {
		t.Error("UpdatedAt moved backwards")
	}
}

func TestUpdate_RejectsEmptyingRequiredFields(t *testing.T) {
	svc := NewService(&fakeTaskStore{})

	task, err := svc.Create(context.Background(), alice, validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	empty := ""
	_, err = svc.Update(context.Background(), alice, task.ID, Patch{Description: &empty})
	if !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("got code %q, want %q", apperr.CodeOf(err), apperr.CodeValidation)
	}
	if got := apperr.FieldsOf(err); !reflect.DeepEqual(got, []string{"description"}) {
		t.Errorf("fields = %v, want [description]", got)
	}

	bad := "archived"
	_, err = svc.Update(context.Background(), alice, task.ID, Patch{Status: &bad})
	if got := apperr.FieldsOf(err); !reflect.DeepEqual(got, []string{"status"}) {
		t.Errorf("fields = %v, want [status]", got)
	}
}

func TestDelete_ReturnsSnapshot(t *testing.T) {
	svc := NewService(&fakeTaskStore{})

	task, err := svc.Create(context.Background(), alice, validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	snapshot, err := svc.Delete(context.Background(), alice, task.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if snapshot.ID != task.ID || snapshot.Title != task.Title {
		t.Errorf("snapshot %+v does not match deleted task %+v", snapshot, task)
	}

	if _, err := svc.Get(context.Background(), alice, task.ID); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Error("deleted task is still readable")
	}
}
