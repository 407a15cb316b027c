package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	"github.com/oksasatya/onesteptask/internal/domain/repository"
)

// SessionStore keeps sessions in process memory. Expired entries are
// invisible to Get and swept once a minute.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

func NewSessionStore(opts ...Option) *SessionStore {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	s := &SessionStore{
		sessions: make(map[string]entity.Session),
		now:      o.now,
		stop:     make(chan struct{}),
	}
	go s.sweep(time.Minute)
	return s
}

func (s *SessionStore) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for id, sess := range s.sessions {
				if sess.Expired(now) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the sweeper.
func (s *SessionStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *SessionStore) Save(_ context.Context, sess entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok || sess.Expired(s.now()) {
		return nil, repository.ErrNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

var _ repository.SessionStore = (*SessionStore)(nil)
