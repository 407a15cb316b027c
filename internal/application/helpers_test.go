package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	repo "github.com/oksasatya/onesteptask/internal/domain/repository"
	"github.com/oksasatya/onesteptask/internal/infrastructure/memory"
)

type fixture struct {
	store    repo.Store
	sessions *Sessions
	creds    *Credentials
	auth     *AuthService
	tasks    *TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ss := memory.NewSessionStore()
	t.Cleanup(ss.Close)

	creds := NewCredentials(store.Users, store.Admins)
	creds.Cost = bcrypt.MinCost
	sessions := NewSessions(ss, 24*time.Hour, nil)
	return &fixture{
		store:    store,
		sessions: sessions,
		creds:    creds,
		auth:     NewAuthService(store.Users, store.Admins, creds, sessions, nil),
		tasks:    NewTaskService(store.Tasks, store.Admins, nil),
	}
}

func (f *fixture) admin(t *testing.T, username, password string) *entity.AdminUser {
	t.Helper()
	hash, err := f.creds.Hash(password)
	if err != nil {
		t.Fatal(err)
	}
	a := &entity.AdminUser{Username: username, Password: hash, Email: username + "@example.com", Name: username}
	if err := f.store.Admins.Create(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	return a
}

// fakeIndex records calls and answers Search from a canned result.
type fakeIndex struct {
	mu       sync.Mutex
	indexed  []int64
	removed  []int64
	hits     []int64
	searchFn func(q string) ([]int64, error)
	indexErr error
}

func (f *fakeIndex) Index(_ context.Context, t entity.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, t.ID)
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string) ([]int64, error) {
	if f.searchFn != nil {
		return f.searchFn(q)
	}
	return f.hits, nil
}

type statusEvent struct {
	id       int64
	previous entity.TaskStatus
	current  entity.TaskStatus
}

type fakeNotifier struct {
	received []int64
	changed  []statusEvent
	fail     bool
}

func (n *fakeNotifier) TaskReceived(_ context.Context, t entity.Task) error {
	n.received = append(n.received, t.ID)
	if n.fail {
		return errors.New("broker down")
	}
	return nil
}

func (n *fakeNotifier) TaskStatusChanged(_ context.Context, t entity.Task, previous entity.TaskStatus) error {
	n.changed = append(n.changed, statusEvent{id: t.ID, previous: previous, current: t.Status})
	return nil
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
