package auth

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	// SessionName is the cookie name holding the auth flag.
	SessionName = "tododemo-session"
	// LoginPath is the one page the guard never redirects away from.
	LoginPath = "/login"

	authenticatedKey = "authenticated"
)

// Store is an interface for storing sessions.
type Store interface {
	Get(r *http.Request, name string) (*sessions.Session, error)
	New(r *http.Request, name string) (*sessions.Session, error)
	Save(r *http.Request, w http.ResponseWriter, s *sessions.Session) error
}

// NewCookieStore builds a cookie session store from a hex key. An empty key
// yields a random one, valid for this process only.
func NewCookieStore(hexKey string) (*sessions.CookieStore, error) {
	var key []byte
	if k := strings.TrimSpace(hexKey); k != "" {
		b, err := hex.DecodeString(k)
		if err != nil {
			return nil, fmt.Errorf("session key hex decode error: %w", err)
		}
		if len(b) < 32 {
			return nil, fmt.Errorf("session key must be at least 32 bytes (hex 64 chars)")
		}
		key = b
	} else {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("could not generate session key")
		}
	}
	cs := sessions.NewCookieStore(key)
	cs.Options.Path = "/"
	cs.Options.HttpOnly = true
	cs.Options.SameSite = http.SameSiteLaxMode
	return cs, nil
}

// Guard gates page navigation on a single per-session boolean. The flag
// defaults to false and is only ever set through SetAuthenticated.
type Guard struct {
	store  Store
	logger zerolog.Logger
}

func NewGuard(store Store, logger zerolog.Logger) *Guard {
	return &Guard{store: store, logger: logger}
}

// IsAuthenticated reports the flag for the session carried by r.
func (g *Guard) IsAuthenticated(r *http.Request) bool {
	session, err := g.store.Get(r, SessionName)
	if err != nil {
		return false
	}
	authenticated, ok := session.Values[authenticatedKey].(bool)
	return ok && authenticated
}

// SetAuthenticated writes the flag into the caller's session cookie.
func (g *Guard) SetAuthenticated(w http.ResponseWriter, r *http.Request, authenticated bool) error {
	// a cookie signed with another key still yields a fresh session
	session, err := g.store.Get(r, SessionName)
	if session == nil {
		return err
	}
	session.Values[authenticatedKey] = authenticated
	return g.store.Save(r, w, session)
}

// Middleware redirects to the login page unless the session is
// authenticated or the destination already is the login page.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != LoginPath && !g.IsAuthenticated(r) {
			g.logger.Debug().Str("path", r.URL.Path).Msg("unauthenticated navigation redirected")
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
