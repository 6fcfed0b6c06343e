package handler_test

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/finance-ledger/internal/config"
	"github.com/iliyamo/finance-ledger/internal/handler"
	"github.com/iliyamo/finance-ledger/internal/middleware"
	"github.com/iliyamo/finance-ledger/internal/model"
	"github.com/iliyamo/finance-ledger/internal/repository"
	"github.com/iliyamo/finance-ledger/internal/router"
)

// newEcho assembles a server exactly as cmd/server does, minus the
// real stores.
func newEcho(cfg config.Config, a *handler.AuthHandler, t *handler.TransactionHandler, cache *middleware.ListCache) *echo.Echo {
	e := echo.New()
	router.Register(e, cfg, a, t, cache)
	return e
}

func itoa(id uint64) string { return strconv.FormatUint(id, 10) }

// fakeUserStore is an in-memory UserStore with the same semantics as
// the MySQL repository: unique usernames, ErrNotFound on misses.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint64]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, username, passwordHash string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return 0, repository.ErrUsernameExists
		}
	}
	s.nextID++
	s.users[s.nextID] = model.User{ID: s.nextID, Username: username, PasswordHash: passwordHash}
	return s.nextID, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return model.User{}, repository.ErrNotFound
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id uint64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// fakeTxStore is an in-memory TransactionStore. Ownership checks
// mirror the WHERE id AND user_id filters of the MySQL repository.
type fakeTxStore struct {
	mu        sync.Mutex
	nextID    uint64
	items     map[uint64]model.Transaction
	listCalls int
}

func newFakeTxStore() *fakeTxStore {
	return &fakeTxStore{items: make(map[uint64]model.Transaction)}
}

func (s *fakeTxStore) ListByUser(_ context.Context, userID uint64) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	out := make([]model.Transaction, 0)
	for _, t := range s.items {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *fakeTxStore) Create(_ context.Context, t *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	s.items[t.ID] = *t
	return nil
}

func (s *fakeTxStore) Update(_ context.Context, t *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.items[t.ID]
	if !ok || cur.UserID != t.UserID {
		return repository.ErrNotFound
	}
	s.items[t.ID] = *t
	return nil
}

func (s *fakeTxStore) Delete(_ context.Context, userID, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.items[id]
	if !ok || cur.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// get returns a stored transaction directly, bypassing ownership, so
// tests can assert that foreign updates really left the row alone.
func (s *fakeTxStore) get(id uint64) (model.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.items[id]
	return t, ok
}

// listCount reports how often ListByUser ran, so cache tests can tell
// a warm hit from a real store read.
func (s *fakeTxStore) listCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}
