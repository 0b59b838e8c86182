package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/harrylevesque/tododemo/internal/auth"
	"github.com/harrylevesque/tododemo/internal/models"
	"github.com/harrylevesque/tododemo/internal/utils"
	"github.com/rs/zerolog"
)

const (
	msgLoginOK      = "Login successful"
	msgLoginFailed  = "Invalid credentials"
	msgLoggedOut    = "Logged out"
	msgUserNotFound = "User not found"
)

// Delays are the simulated latencies of the mock endpoints.
type Delays struct {
	Login time.Duration
	Users time.Duration
	User  time.Duration
}

// MockHandler serves the login and user-listing endpoints. None of them
// touch the to-do store.
type MockHandler struct {
	creds  *auth.Credentials
	guard  *auth.Guard
	users  []models.User
	delays Delays
	// bindSession makes a successful login set the guard flag.
	bindSession bool
	logger      zerolog.Logger
}

type MockOptions struct {
	Credentials *auth.Credentials
	Guard       *auth.Guard
	Users       []models.User
	Delays      Delays
	BindSession bool
}

func NewMockHandler(opts MockOptions, logger zerolog.Logger) *MockHandler {
	users := opts.Users
	if users == nil {
		users = models.DemoUsers
	}
	return &MockHandler{
		creds:       opts.Credentials,
		guard:       opts.Guard,
		users:       users,
		delays:      opts.Delays,
		bindSession: opts.BindSession && opts.Guard != nil,
		logger:      logger.With().Str(utils.FieldComponent, "mock").Logger(),
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login compares the submitted pair against the configured account after
// the simulated delay.
func (h *MockHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := wait(r.Context(), h.delays.Login); err != nil {
		h.logger.Debug().Err(err).Msg("login abandoned")
		return
	}
	b, _, err := readBody(r)
	if err != nil {
		writeFailure(w, utils.New(http.StatusOK, msgLoginFailed))
		return
	}
	username, _ := b.String("username")
	password, _ := b.String("password")
	if err := h.creds.Check(username, password); err != nil {
		h.logger.Info().Str("username", username).Msg("login rejected")
		writeFailure(w, utils.New(http.StatusOK, msgLoginFailed))
		return
	}
	if h.bindSession {
		if err := h.guard.SetAuthenticated(w, r, true); err != nil {
			h.logger.Error().Err(err).Msg("could not save session")
			writeFailure(w, utils.New(http.StatusInternalServerError, "Could not save session"))
			return
		}
	}
	writeOK(w, msgLoginOK)
}

// Logout clears the guard flag. Only routed when login binds the session.
func (h *MockHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.guard.SetAuthenticated(w, r, false); err != nil {
		h.logger.Error().Err(err).Msg("could not save session")
		writeFailure(w, utils.New(http.StatusInternalServerError, "Could not save session"))
		return
	}
	writeOK(w, msgLoggedOut)
}

// Users returns the full static user list.
func (h *MockHandler) Users(w http.ResponseWriter, r *http.Request) {
	if err := wait(r.Context(), h.delays.Users); err != nil {
		return
	}
	writeJSON(w, http.StatusOK, h.users)
}

// User returns one user by numeric id, or 404 with an envelope when no user
// matches.
func (h *MockHandler) User(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	if err := wait(r.Context(), h.delays.User); err != nil {
		return
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeFailure(w, utils.NotFound(msgUserNotFound))
		return
	}
	u, ok := models.FindUser(h.users, id)
	if !ok {
		writeFailure(w, utils.NotFound(msgUserNotFound))
		return
	}
	writeJSON(w, http.StatusOK, u)
}
