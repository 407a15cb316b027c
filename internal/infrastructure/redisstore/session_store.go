package redisstore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	"github.com/oksasatya/onesteptask/internal/domain/repository"
)

// SessionStore keeps each session as a Redis hash whose TTL equals the
// remaining session lifetime.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *SessionStore) Save(ctx context.Context, sess entity.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	key := sessionKey(sess.ID)
	fields := map[string]any{
		"kind":       string(sess.Identity.Kind),
		"subject_id": sess.Identity.SubjectID,
		"created_at": sess.CreatedAt.UTC().Format(time.RFC3339Nano),
		"expires_at": sess.ExpiresAt.UTC().Format(time.RFC3339Nano),
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	data, err := s.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, repository.ErrNotFound
	}
	subject, err := strconv.ParseInt(data["subject_id"], 10, 64)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	created, _ := time.Parse(time.RFC3339Nano, data["created_at"])
	expires, err := time.Parse(time.RFC3339Nano, data["expires_at"])
	if err != nil {
		return nil, repository.ErrNotFound
	}
	sess := &entity.Session{
		ID:        id,
		Identity:  entity.Identity{Kind: entity.IdentityKind(data["kind"]), SubjectID: subject},
		CreatedAt: created,
		ExpiresAt: expires,
	}
	if sess.Expired(time.Now()) {
		return nil, repository.ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}

var _ repository.SessionStore = (*SessionStore)(nil)
