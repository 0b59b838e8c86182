package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/harrylevesque/tododemo/internal/models"
	"github.com/harrylevesque/tododemo/internal/store"
	"github.com/harrylevesque/tododemo/internal/utils"
	"github.com/rs/zerolog"
)

const (
	msgFetched     = "ToDos fetched successfully"
	msgFound       = "ToDo fetched successfully"
	msgNotFound    = "ToDo not found"
	msgInvalid     = "Invalid title"
	msgAdded       = "ToDo added successfully"
	msgCleared     = "All ToDos cleared"
	msgDeleted     = "ToDo deleted successfully"
	msgCompleted   = "ToDo marked as completed"
	msgUncompleted = "ToDo marked as uncompleted"
)

// invalid titles are reported in a 200 envelope
var errInvalidTitle = utils.New(http.StatusOK, msgInvalid)

// TodoHandler maps the four /api/todo verbs onto a TodoStore.
type TodoHandler struct {
	store  *store.TodoStore
	logger zerolog.Logger
}

func NewTodoHandler(s *store.TodoStore, logger zerolog.Logger) *TodoHandler {
	return &TodoHandler{
		store:  s,
		logger: logger.With().Str(utils.FieldComponent, "todo").Logger(),
	}
}

// Fetch returns every item.
func (h *TodoHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TodoListEnvelope{
		Success: true,
		Todos:   h.store.List(),
		Message: msgFetched,
	})
}

// TodoEnvelope is the single-item lookup response.
type TodoEnvelope struct {
	Success bool             `json:"success"`
	Todo    *models.TodoItem `json:"todo,omitempty"`
	Message string           `json:"message"`
}

// Get returns the item with the stable id in the path, or 404.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.Get(mux.Vars(r)["id"])
	if errors.Is(err, store.ErrNotFound) {
		writeFailure(w, utils.NotFound(msgNotFound))
		return
	}
	writeJSON(w, http.StatusOK, TodoEnvelope{Success: true, Todo: &item, Message: msgFound})
}

// Create appends {title, completed:false}. The title must be a non-empty
// string.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	b, _, err := readBody(r)
	if err != nil {
		writeFailure(w, errInvalidTitle)
		return
	}
	title, ok := b.String("title")
	if !ok || title == "" {
		writeFailure(w, errInvalidTitle)
		return
	}
	item := h.store.Add(title, false)
	h.logger.Debug().Str(utils.FieldID, item.ID).Msg("todo added")
	writeOK(w, msgAdded)
}

// Delete clears the list when the request has no body. Otherwise it removes
// the item named by "id" or "index" and reports success even when nothing
// matched.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	b, present, err := readBody(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !present {
		h.store.Clear()
		h.logger.Debug().Msg("todos cleared")
		writeOK(w, msgCleared)
		return
	}

	if id, ok := b.String("id"); ok {
		if !h.store.DeleteByID(id) {
			h.logger.Debug().Str(utils.FieldID, id).Msg("delete matched nothing")
		}
	} else if index := b.Index("index"); !h.store.Delete(index) {
		h.logger.Debug().Int(utils.FieldIndex, index).Msg("delete matched nothing")
	}
	writeOK(w, msgDeleted)
}

// Update sets the completion state of one item. A falsy "completed" marks
// the item completed and a truthy one marks it uncompleted; existing
// clients depend on this inverted sense.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	b, present, err := readBody(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !present {
		writeFailure(w, errInvalidBody)
		return
	}

	id, byID := b.String("id")
	index := b.Index("index")
	if !b.Truthy("completed") {
		if byID {
			h.store.CompleteByID(id)
		} else {
			h.store.Complete(index)
		}
		writeOK(w, msgCompleted)
		return
	}
	if byID {
		h.store.UncompleteByID(id)
	} else {
		h.store.Uncomplete(index)
	}
	writeOK(w, msgUncompleted)
}
