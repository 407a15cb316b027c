package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	"github.com/oksasatya/onesteptask/internal/domain/repository"
)

func TestSessionStore_ExpiryAndDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := NewSessionStore(WithClock(func() time.Time { return now }))
	defer s.Close()

	sess := entity.Session{
		ID:        "sid-1",
		Identity:  entity.UserIdentity(3),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, s.Save(ctx, sess))

	got, err := s.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, entity.UserIdentity(3), got.Identity)

	now = now.Add(2 * time.Hour)
	_, err = s.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, s.Save(ctx, entity.Session{ID: "sid-2", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, s.Delete(ctx, "sid-2"))
	_, err = s.Get(ctx, "sid-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// closing twice is safe
	s.Close()
}
