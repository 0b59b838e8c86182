package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/harrylevesque/tododemo/internal/api"
	"github.com/harrylevesque/tododemo/internal/auth"
	"github.com/harrylevesque/tododemo/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()
	creds, err := auth.NewCredentials("admin", "password")
	require.NoError(t, err)
	s := store.NewTodoStore()
	router := api.NewRouter(api.RouterOptions{
		Todos:  api.NewTodoHandler(s, logger),
		Mock:   api.NewMockHandler(api.MockOptions{Credentials: creds}, logger),
		Logger: logger,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestTodoLifecycle(t *testing.T) {
	ctx := context.Background()
	c := New(newServer(t).URL+"/", nil)

	env, err := c.AddTodo(ctx, "Buy milk")
	require.NoError(t, err)
	assert.True(t, env.Success)
	_, err = c.AddTodo(ctx, "Walk dog")
	require.NoError(t, err)

	env, err = c.AddTodo(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Invalid title", env.Message)

	_, err = c.SetCompleted(ctx, 1, true)
	require.NoError(t, err)
	todos, err := c.Todos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.False(t, todos[0].Completed)
	assert.True(t, todos[1].Completed)

	_, err = c.SetCompleted(ctx, 1, false)
	require.NoError(t, err)
	todos, _ = c.Todos(ctx)
	assert.False(t, todos[1].Completed)

	_, err = c.DeleteTodoByID(ctx, todos[1].ID)
	require.NoError(t, err)
	_, err = c.DeleteTodo(ctx, 0)
	require.NoError(t, err)
	todos, _ = c.Todos(ctx)
	assert.Empty(t, todos)

	c.AddTodo(ctx, "again")
	env, err = c.ClearTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, "All ToDos cleared", env.Message)
}

func TestLoginAndUsers(t *testing.T) {
	ctx := context.Background()
	c := New(newServer(t).URL, nil)

	env, err := c.Login(ctx, "admin", "password")
	require.NoError(t, err)
	assert.Equal(t, Envelope{Success: true, Message: "Login successful"}, env)

	env, err = c.Login(ctx, "admin", "x")
	require.NoError(t, err)
	assert.False(t, env.Success)

	users, err := c.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	u, err := c.User(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Carol Williams", u.Name)

	_, err = c.User(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
