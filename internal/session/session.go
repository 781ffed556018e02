package session

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrEmptyUserID is returned by Login when no user id is given.
var ErrEmptyUserID = errors.New("empty user id")

// Session is the in-process view of the login state. It is created once
// at startup from the Store and passed explicitly to whatever needs it.
type Session struct {
	mu        sync.Mutex
	store     *Store
	log       *slog.Logger
	userID    string
	nextID    int
	listeners map[int]func(userID string)
}

// Open reads the persisted user once. If the store cannot be read the
// session starts unauthenticated.
func Open(store *Store, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Session{store: store, log: log}
	userID, err := store.Read()
	if err != nil {
		log.Warn("session storage unavailable", "path", store.Path(), "err", err)
		return s
	}
	s.userID = userID
	log.Debug("session opened", "authenticated", userID != "")
	return s
}

// CurrentUser returns the logged-in user id, if any.
func (s *Session) CurrentUser() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.userID != ""
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

// Login persists userID and marks the session authenticated.
// If persisting fails the session is left unchanged.
func (s *Session) Login(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrEmptyUserID
	}
	if err := s.store.Write(userID); err != nil {
		return err
	}

	s.mu.Lock()
	s.userID = userID
	listeners := s.snapshot()
	s.mu.Unlock()

	s.log.Debug("session login", "user_id", userID)
	for _, fn := range listeners {
		fn(userID)
	}
	return nil
}

// Logout marks the session unauthenticated and clears the store.
// The in-memory state is cleared even if removing the file fails.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.userID = ""
	listeners := s.snapshot()
	s.mu.Unlock()

	err := s.store.Clear()
	s.log.Debug("session logout")
	for _, fn := range listeners {
		fn("")
	}
	return err
}

// OnChange registers fn to run after every login or logout. fn receives
// the new user id, or "" after logout. The returned func removes fn.
func (s *Session) OnChange(fn func(userID string)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners == nil {
		s.listeners = make(map[int]func(string))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// snapshot returns the listeners in registration order. s.mu must be held.
func (s *Session) snapshot() []func(string) {
	ids := slices.Sorted(maps.Keys(s.listeners))
	fns := make([]func(string), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	return fns
}
