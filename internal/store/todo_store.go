package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/harrylevesque/tododemo/internal/models"
)

// ErrNotFound is returned by Get when no item carries the requested id.
var ErrNotFound = errors.New("todo not found")

// TodoStore owns the ordered to-do list for the lifetime of the server.
// Positional operations treat out-of-range indices as no-ops.
type TodoStore struct {
	mu    sync.RWMutex
	items []models.TodoItem
}

// NewTodoStore creates an empty store.
func NewTodoStore() *TodoStore {
	return &TodoStore{}
}

// Add appends a new item and returns it with its generated id.
func (s *TodoStore) Add(title string, completed bool) models.TodoItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.TodoItem{
		ID:        uuid.NewString(),
		Title:     title,
		Completed: completed,
	}
	s.items = append(s.items, item)
	return item
}

// List returns a copy of the items in insertion order.
func (s *TodoStore) List() []models.TodoItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TodoItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *TodoStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the item with the given id.
func (s *TodoStore) Get(id string) (models.TodoItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], nil
	}
	return models.TodoItem{}, ErrNotFound
}

// Clear removes every item.
func (s *TodoStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Complete marks the item at index as completed. It reports whether the
// index was in range.
func (s *TodoStore) Complete(index int) bool {
	return s.setCompleted(index, true)
}

// Uncomplete marks the item at index as not completed.
func (s *TodoStore) Uncomplete(index int) bool {
	return s.setCompleted(index, false)
}

// Delete removes the item at index, shifting later items down by one.
func (s *TodoStore) Delete(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inRange(index) {
		return false
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return true
}

func (s *TodoStore) CompleteByID(id string) bool {
	return s.setCompletedByID(id, true)
}

func (s *TodoStore) UncompleteByID(id string) bool {
	return s.setCompletedByID(id, false)
}

// DeleteByID removes the item with the given id, if any.
func (s *TodoStore) DeleteByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

func (s *TodoStore) setCompleted(index int, completed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inRange(index) {
		return false
	}
	s.items[index].Completed = completed
	return true
}

func (s *TodoStore) setCompletedByID(id string, completed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items[i].Completed = completed
	return true
}

// caller holds mu
func (s *TodoStore) inRange(index int) bool {
	return index >= 0 && index < len(s.items)
}

// caller holds mu
func (s *TodoStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
