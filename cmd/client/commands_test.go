package main

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/harrylevesque/tododemo/internal/api"
	"github.com/harrylevesque/tododemo/internal/auth"
	"github.com/harrylevesque/tododemo/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCartCommandsPersist(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cart.db")

	out, err := run(t, "--cart-db", db, "cart", "add", "1", "Green", "tea")
	require.NoError(t, err)
	assert.Contains(t, out, "1 Green tea x1")

	out, err = run(t, "--cart-db", db, "cart", "add", "1", "Green", "tea")
	require.NoError(t, err)
	assert.Contains(t, out, "total items: 2")

	out, err = run(t, "--cart-db", db, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "1 Green tea x2")

	out, err = run(t, "--cart-db", db, "cart", "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "total items: 0")

	_, err = run(t, "--cart-db", db, "cart", "add", "x", "bad")
	assert.Error(t, err)
}

func TestTodoCommands(t *testing.T) {
	logger := zerolog.Nop()
	creds, err := auth.NewCredentials("admin", "password")
	require.NoError(t, err)
	s := store.NewTodoStore()
	srv := httptest.NewServer(api.NewRouter(api.RouterOptions{
		Todos:  api.NewTodoHandler(s, logger),
		Mock:   api.NewMockHandler(api.MockOptions{Credentials: creds}, logger),
		Logger: logger,
	}))
	defer srv.Close()

	out, err := run(t, "--server", srv.URL, "todo", "add", "Buy", "milk")
	require.NoError(t, err)
	assert.Contains(t, out, "ToDo added successfully")

	_, err = run(t, "--server", srv.URL, "todo", "done", "0")
	require.NoError(t, err)
	assert.True(t, s.List()[0].Completed)

	out, err = run(t, "--server", srv.URL, "todo", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0 [x] Buy milk")

	_, err = run(t, "--server", srv.URL, "login", "admin", "nope")
	assert.Error(t, err)

	out, err = run(t, "--server", srv.URL, "users", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice Johnson")

	out, err = run(t, "--server", srv.URL, "todo", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "All ToDos cleared")
	assert.Equal(t, 0, s.Len())
}
