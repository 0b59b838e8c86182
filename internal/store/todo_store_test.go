package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/harrylevesque/tododemo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(items []models.TodoItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func seeded(t *testing.T, n int) *TodoStore {
	t.Helper()
	s := NewTodoStore()
	for i := 0; i < n; i++ {
		s.Add(fmt.Sprintf("item-%d", i), false)
	}
	return s
}

func TestAddAppendsAtEnd(t *testing.T) {
	s := seeded(t, 2)
	added := s.Add("Buy milk", false)

	items := s.List()
	require.Len(t, items, 3)
	last := items[len(items)-1]
	assert.Equal(t, "Buy milk", last.Title)
	assert.False(t, last.Completed)
	assert.Equal(t, added.ID, last.ID)
	assert.NotEmpty(t, last.ID)
}

func TestAddAssignsDistinctIDs(t *testing.T) {
	s := NewTodoStore()
	a := s.Add("same", false)
	b := s.Add("same", false)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, s.Len())
}

func TestListReturnsCopy(t *testing.T) {
	s := seeded(t, 1)
	items := s.List()
	items[0].Title = "mutated"
	items[0].Completed = true

	fresh := s.List()
	assert.Equal(t, "item-0", fresh[0].Title)
	assert.False(t, fresh[0].Completed)
}

func TestClear(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		s := seeded(t, n)
		s.Clear()
		assert.Empty(t, s.List())
	}
}

func TestCompleteAndUncomplete(t *testing.T) {
	s := seeded(t, 3)

	require.True(t, s.Complete(1))
	assert.True(t, s.List()[1].Completed)
	assert.False(t, s.List()[0].Completed)

	require.True(t, s.Uncomplete(1))
	assert.False(t, s.List()[1].Completed)
}

func TestOutOfRangeIsNoop(t *testing.T) {
	s := seeded(t, 2)
	s.Complete(0)
	before := s.List()

	for _, idx := range []int{-1, 2, 100} {
		assert.False(t, s.Complete(idx))
		assert.False(t, s.Uncomplete(idx))
		assert.False(t, s.Delete(idx))
	}
	assert.Equal(t, before, s.List())
}

func TestDeleteShiftsLaterItems(t *testing.T) {
	s := seeded(t, 4)
	require.True(t, s.Delete(1))
	assert.Equal(t, []string{"item-0", "item-2", "item-3"}, titles(s.List()))

	require.True(t, s.Delete(2))
	assert.Equal(t, []string{"item-0", "item-2"}, titles(s.List()))
}

func TestByIDSurvivesShift(t *testing.T) {
	s := NewTodoStore()
	s.Add("a", false)
	b := s.Add("b", false)
	c := s.Add("c", false)

	require.True(t, s.Delete(0))
	require.True(t, s.CompleteByID(c.ID))

	got, err := s.Get(c.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	require.True(t, s.UncompleteByID(c.ID))
	got, _ = s.Get(c.ID)
	assert.False(t, got.Completed)

	require.True(t, s.DeleteByID(b.ID))
	assert.Equal(t, []string{"c"}, titles(s.List()))

	assert.False(t, s.DeleteByID(b.ID))
	assert.False(t, s.CompleteByID(""))
	_, err = s.Get(b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentAccess(t *testing.T) {
	s := NewTodoStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(fmt.Sprintf("t%d", i), false)
			s.Complete(0)
			_ = s.List()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
