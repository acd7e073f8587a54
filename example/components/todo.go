package components

import (
	"slices"
	"time"
)

// Status is a todo's completion state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Tag labels a todo.
type Tag string

const (
	TagWork     Tag = "work"
	TagPersonal Tag = "personal"
	TagUrgent   Tag = "urgent"
	TagLater    Tag = "later"
)

// AllTags lists the tags offered in forms, in display order.
var AllTags = []Tag{TagWork, TagPersonal, TagUrgent, TagLater}

// Todo is a single task.
type Todo struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Tags        []Tag
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasTag reports whether the todo carries tag.
func (t *Todo) HasTag(tag Tag) bool {
	return slices.Contains(t.Tags, tag)
}

// TodoStats summarizes the store.
type TodoStats struct {
	Total     int
	Completed int
	Pending   int
	ByTag     map[Tag]int
}

// TodoStore is the persistence the handlers need.
type TodoStore interface {
	Add(title, description string, tags []Tag) string
	Get(id string) *Todo
	Update(id, title, description string, tags []Tag) bool
	Toggle(id string) bool
	Delete(id string) bool
	List(status *Status, tags []Tag) []*Todo
	Stats() TodoStats
}
