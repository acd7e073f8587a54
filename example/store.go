package main

import (
	"cmp"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/pthm/hxkit/example/components"
)

// Store keeps todos in memory. IDs are sequential integers rendered as
// strings; List orders newest first.
type Store struct {
	mu    sync.RWMutex
	todos map[string]*components.Todo
	seq   int
	now   func() time.Time
}

// NewStore returns a store seeded with a few todos.
func NewStore() *Store {
	s := &Store{todos: map[string]*components.Todo{}, now: time.Now}

	s.Add("Buy groceries", "Milk, eggs, bread", []components.Tag{components.TagPersonal})
	s.Add("Review PR #123", "Check the authentication changes", []components.Tag{components.TagWork, components.TagUrgent})
	s.Add("Write documentation", "Update API docs for v2", []components.Tag{components.TagWork})
	s.Add("Call dentist", "Schedule annual checkup", []components.Tag{components.TagPersonal, components.TagLater})
	s.Add("Fix login bug", "Users can't reset passwords", []components.Tag{components.TagWork, components.TagUrgent})
	return s
}

func (s *Store) Add(title, description string, tags []components.Tag) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := strconv.Itoa(s.seq)
	at := s.now()
	s.todos[id] = &components.Todo{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      components.StatusPending,
		Tags:        tags,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	return id
}

func (s *Store) Get(id string) *components.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.todos[id]
}

// Update overwrites the fields that are set. Empty strings and a nil tag
// list keep the stored values.
func (s *Store) Update(id, title, description string, tags []components.Tag) bool {
	return s.mutate(id, func(t *components.Todo) {
		if title != "" {
			t.Title = title
		}
		if description != "" {
			t.Description = description
		}
		if tags != nil {
			t.Tags = tags
		}
	})
}

func (s *Store) Toggle(id string) bool {
	return s.mutate(id, func(t *components.Todo) {
		if t.Status == components.StatusCompleted {
			t.Status = components.StatusPending
			return
		}
		t.Status = components.StatusCompleted
	})
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.todos[id]
	delete(s.todos, id)
	return ok
}

// List returns the todos matching status (when non-nil) that carry every
// tag in tags.
func (s *Store) List(status *components.Status, tags []components.Tag) []*components.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*components.Todo
	for _, t := range s.todos {
		if status != nil && t.Status != *status {
			continue
		}
		if !slices.ContainsFunc(tags, func(tag components.Tag) bool { return !t.HasTag(tag) }) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b *components.Todo) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		ai, _ := strconv.Atoi(a.ID)
		bi, _ := strconv.Atoi(b.ID)
		return cmp.Compare(bi, ai)
	})
	return out
}

func (s *Store) Stats() components.TodoStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := components.TodoStats{ByTag: map[components.Tag]int{}}
	for _, t := range s.todos {
		stats.Total++
		if t.Status == components.StatusCompleted {
			stats.Completed++
		} else {
			stats.Pending++
		}
		for _, tag := range t.Tags {
			stats.ByTag[tag]++
		}
	}
	return stats
}

func (s *Store) mutate(id string, fn func(*components.Todo)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok {
		return false
	}
	fn(t)
	t.UpdatedAt = s.now()
	return true
}
