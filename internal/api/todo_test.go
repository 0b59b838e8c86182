package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harrylevesque/tododemo/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringIndexActsLikeNumber(t *testing.T) {
	ts := newTestServer(t)
	ts.store.Add("a", false)
	ts.store.Add("b", false)

	rec := ts.do(t, http.MethodPut, "/api/todo", `{"index":"1","completed":false}`)
	assert.Equal(t, "ToDo marked as completed", decodeEnvelope(t, rec).Message)
	assert.True(t, ts.fetch(t).Todos[1].Completed)

	ts.do(t, http.MethodDelete, "/api/todo", `{"index":"0"}`)
	todos := ts.fetch(t).Todos
	require.Len(t, todos, 1)
	assert.Equal(t, "b", todos[0].Title)

	// non-canonical strings are not positions
	for _, body := range []string{`{"index":"01"}`, `{"index":" 0"}`, `{"index":"-0"}`, `{"index":"zero"}`, `{"index":""}`} {
		ts.do(t, http.MethodDelete, "/api/todo", body)
	}
	assert.Equal(t, 1, ts.store.Len())
}

func TestGetTodoByID(t *testing.T) {
	ts := newTestServer(t)
	ts.store.Add("a", false)
	b := ts.store.Add("b", true)

	rec := ts.do(t, http.MethodGet, "/api/todo/"+b.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var env TodoEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	require.NotNil(t, env.Todo)
	assert.Equal(t, b, *env.Todo)

	ts.store.DeleteByID(b.ID)
	rec = ts.do(t, http.MethodGet, "/api/todo/"+b.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, Envelope{Success: false, Message: "ToDo not found"}, decodeEnvelope(t, rec))
}

func TestDeleteMissLogsWhatWasAsked(t *testing.T) {
	var logs bytes.Buffer
	h := NewTodoHandler(store.NewTodoStore(), zerolog.New(&logs).Level(zerolog.DebugLevel))

	rec := httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/api/todo", strings.NewReader(`{"id":"missing"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logs.String(), `"id":"missing"`)
	assert.NotContains(t, logs.String(), `"index"`)

	logs.Reset()
	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/api/todo", strings.NewReader(`{"index":3}`)))
	assert.Contains(t, logs.String(), `"index":3`)
	assert.NotContains(t, logs.String(), `"id"`)
}
