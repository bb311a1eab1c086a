package models

import "time"

// TaskStatus is the two-value task state. The same words are used in
// the API and in storage; nothing is abbreviated on the wire.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// ParseTaskStatus reports whether s is one of the two valid statuses.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case StatusPending, StatusCompleted:
		return TaskStatus(s), true
	}
	return "", false
}

// Task is owned by exactly one user and is only reachable through that
// user's identity. DueDate is a calendar date in YYYY-MM-DD form.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     string     `json:"dueDate"`
	Status      TaskStatus `json:"status"`
	OwnerID     string     `json:"owner"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
