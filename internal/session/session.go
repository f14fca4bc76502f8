// Package session stores per-client state (cart identifier, authenticated
// admin) in a signed cookie. Handlers see session state through the Store
// interface so tests can inject arbitrary state without a cookie store.
package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	cookieName = "eliteshop_session"

	cartIDKey  = "cart_session_id"
	adminIDKey = "admin_id"
)

// State is the mutable per-client session state. The zero value is an
// anonymous client with no cart.
type State struct {
	// CartID is the opaque identifier scoping the client's cart rows.
	// Empty until the first cart access lazily creates one.
	CartID string

	// AdminID identifies the authenticated admin; zero means anonymous.
	AdminID int64
}

// Store loads and saves session state for a request.
type Store interface {
	// Load retrieves the session state for the request. A request without a
	// session yields a zero State, never an error.
	Load(r *http.Request) (*State, error)

	// Save persists the state into the response's session cookie.
	Save(w http.ResponseWriter, r *http.Request, state *State) error
}

// cookieStore implements Store on top of gorilla's signed-cookie sessions.
type cookieStore struct {
	store  *sessions.CookieStore
	logger zerolog.Logger
}

// NewCookieStore creates a signed-cookie session store.
func NewCookieStore(secret string, logger zerolog.Logger) Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &cookieStore{
		store:  store,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Load retrieves the session state for the request. A tampered or expired
// cookie degrades to a fresh anonymous session.
func (s *cookieStore) Load(r *http.Request) (*State, error) {
	sess, err := s.store.Get(r, cookieName)
	if err != nil {
		s.logger.Debug().Err(err).Msg("invalid session cookie, starting fresh session")
	}

	state := &State{}
	if v, ok := sess.Values[cartIDKey].(string); ok {
		state.CartID = v
	}
	if v, ok := sess.Values[adminIDKey].(int64); ok {
		state.AdminID = v
	}

	return state, nil
}

// Save persists the state into the response's session cookie.
func (s *cookieStore) Save(w http.ResponseWriter, r *http.Request, state *State) error {
	sess, _ := s.store.Get(r, cookieName)

	if state.CartID != "" {
		sess.Values[cartIDKey] = state.CartID
	} else {
		delete(sess.Values, cartIDKey)
	}

	if state.AdminID != 0 {
		sess.Values[adminIDKey] = state.AdminID
	} else {
		delete(sess.Values, adminIDKey)
	}

	if err := sess.Save(r, w); err != nil {
		s.logger.Error().Err(err).Msg("failed to save session")
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
