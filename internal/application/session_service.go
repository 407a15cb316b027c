package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	repo "github.com/oksasatya/onesteptask/internal/domain/repository"
)

// Sessions persists exactly one identity per session. A session lives for a
// fixed TTL from creation.
type Sessions struct {
	Store  repo.SessionStore
	TTL    time.Duration
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewSessions(store repo.SessionStore, ttl time.Duration, logger *logrus.Logger) *Sessions {
	return &Sessions{Store: store, TTL: ttl, Logger: logger, Now: time.Now}
}

// Establish discards previousID, if any, and opens a fresh session holding
// only identity. Switching between user and admin therefore never leaves
// both identities reachable.
func (s *Sessions) Establish(ctx context.Context, previousID string, identity entity.Identity) (entity.Session, error) {
	if previousID != "" {
		if err := s.Store.Delete(ctx, previousID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("discard previous session failed")
		}
	}
	now := s.Now()
	sess := entity.Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.TTL),
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return entity.Session{}, err
	}
	return sess, nil
}

// Resolve returns the identity stored under id. Missing, unknown, expired
// or malformed sessions resolve to Anonymous.
func (s *Sessions) Resolve(ctx context.Context, id string) entity.Identity {
	if id == "" {
		return entity.Anonymous()
	}
	sess, err := s.Store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(err).Warn("session lookup failed")
		}
		return entity.Anonymous()
	}
	if sess.Expired(s.Now()) {
		return entity.Anonymous()
	}
	switch sess.Identity.Kind {
	case entity.IdentityUser, entity.IdentityAdmin:
		if sess.Identity.SubjectID > 0 {
			return sess.Identity
		}
	}
	return entity.Anonymous()
}

// Destroy invalidates the session entirely.
func (s *Sessions) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.Store.Delete(ctx, id)
}
