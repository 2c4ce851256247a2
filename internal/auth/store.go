package auth

import (
	"context"
	"sync"

	"normadeck/internal/domain/models"
	"normadeck/internal/utils"
)

type Status string

const (
	StatusUnknown       Status = "unknown"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// State is the read-only projection views consume.
type State struct {
	Status  Status
	Loading bool
	User    *models.User
	Session *models.Session
}

// Authenticator is the slice of the auth collaborator the store needs.
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (models.User, models.Session, error)
	SessionFromToken(ctx context.Context, token string) (models.User, models.Session, error)
}

// Store is the single process-wide session authority. State moves through
// CheckSession, SignIn and SignOut only; views never mutate it directly.
// Subscribers get a copy of every new state.
type Store struct {
	auth  Authenticator
	cache TokenCache

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func NewStore(auth Authenticator, cache TokenCache) *Store {
	return &Store{
		auth:  auth,
		cache: cache,
		state: State{Status: StatusUnknown, Loading: true},
		subs:  map[int]func(State){},
	}
}

// State returns the current projection.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener and returns its cancel function.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) set(st State) {
	s.mu.Lock()
	s.state = st
	listeners := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(st)
	}
}

// CheckSession restores the cached session, if any. It is safe to call
// redundantly (app start and again when the admin view mounts) and always
// ends with Loading false. A stale token the provider no longer accepts
// resolves to anonymous and the cache is dropped.
func (s *Store) CheckSession(ctx context.Context) {
	cur := s.State()
	cur.Loading = true
	s.set(cur)

	token, err := s.cache.Load()
	if err != nil || token == "" {
		if err != nil {
			utils.LogEvent("", "auth", "cache_read_failed", err.Error())
		}
		s.set(State{Status: StatusAnonymous})
		return
	}

	user, sess, err := s.auth.SessionFromToken(ctx, token)
	if err != nil {
		utils.LogEvent("", "auth", "session_rejected", err.Error())
		_ = s.cache.Clear()
		s.set(State{Status: StatusAnonymous})
		return
	}

	s.set(State{Status: StatusAuthenticated, User: &user, Session: &sess})
}

// SignIn delegates credential verification. Invalid credentials are an
// expected case and come back as ErrInvalidCredentials; the state stays
// anonymous.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	user, sess, err := s.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.cache.Save(sess.AccessToken); err != nil {
		utils.LogEvent("", "auth", "cache_write_failed", err.Error())
	}
	s.set(State{Status: StatusAuthenticated, User: &user, Session: &sess})
	return nil
}

// SignOut clears the cached session and unconditionally goes anonymous.
func (s *Store) SignOut(ctx context.Context) {
	_ = ctx
	if err := s.cache.Clear(); err != nil {
		utils.LogEvent("", "auth", "cache_clear_failed", err.Error())
	}
	s.set(State{Status: StatusAnonymous})
}
