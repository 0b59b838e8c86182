package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/harrylevesque/tododemo/internal/models"
	"github.com/harrylevesque/tododemo/internal/utils"
)

const maxBodyBytes = 1 << 20

// Envelope is the uniform response shape of the /api routes.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TodoListEnvelope is the Fetch response; Todos is always present.
type TodoListEnvelope struct {
	Success bool              `json:"success"`
	Todos   []models.TodoItem `json:"todos"`
	Message string            `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeOK(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// writeFailure renders a validation failure. It stays 200 unless err is an
// *utils.APIError carrying another status.
func writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusOK
	message := err.Error()
	var apiErr *utils.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.Status
		message = apiErr.Message
	}
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

var errInvalidBody = utils.BadRequest("Invalid request body")

// body is a decoded JSON object request body.
type body map[string]json.RawMessage

// readBody decodes a JSON object body. present is false for an empty or
// null body. A body that is not a JSON object is an error.
func readBody(r *http.Request) (b body, present bool, err error) {
	if r.Body == nil {
		return nil, false, nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, false, err
	}
	if len(raw) > maxBodyBytes {
		return nil, false, errInvalidBody
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false, nil
	}
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, false, errInvalidBody
	}
	return b, true, nil
}

// String returns the field when it is a JSON string.
func (b body) String(key string) (string, bool) {
	raw, ok := b[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Index returns the field as a list position. A canonical integer string
// such as "2" counts as that number, the way a JS property key would.
// Anything else maps to -1, which every store operation ignores.
func (b body) Index(key string) int {
	raw, ok := b[key]
	if !ok {
		return -1
	}
	if s, isString := b.String(key); isString {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || strconv.Itoa(n) != s {
			return -1
		}
		return n
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return -1
	}
	if f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return -1
	}
	return int(f)
}

// Truthy applies JavaScript truthiness to the field: absent, null, false,
// 0 and "" are false, everything else is true.
func (b body) Truthy(key string) bool {
	raw, ok := b[key]
	if !ok {
		return false
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
