package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/onesteptask/internal/infrastructure/memory"
)

func TestContentService(t *testing.T) {
	ctx := context.Background()
	svc := NewContentService(memory.NewStore().PageContents)

	_, err := svc.Get(ctx, "home")
	assert.ErrorIs(t, err, ErrContentNotFound)

	p, err := svc.Create(ctx, "home", map[string]any{
		"hero": map[string]any{"title": "Old", "subtitle": "Sub"},
		"faq":  []any{"q1"},
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "home", map[string]any{})
	assert.ErrorIs(t, err, ErrSlugTaken)

	// top-level keys are replaced whole, untouched keys survive
	updated, err := svc.Patch(ctx, p.ID, map[string]any{"hero": map[string]any{"title": "New"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "New"}, updated.Content["hero"])
	assert.Equal(t, []any{"q1"}, updated.Content["faq"])
	assert.Equal(t, "home", updated.PageSlug)

	got, err := svc.Get(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, updated.Content, got.Content)

	_, err = svc.Patch(ctx, 99, map[string]any{"a": 1})
	assert.ErrorIs(t, err, ErrContentNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTestimonialService(t *testing.T) {
	ctx := context.Background()
	svc := NewTestimonialService(memory.NewStore().Testimonials)

	pub, err := svc.Create(ctx, TestimonialInput{Name: "A", Position: "CEO", Rating: 5, Content: "great", IsPublished: true})
	require.NoError(t, err)
	draft, err := svc.Create(ctx, TestimonialInput{Name: "B", Position: "CTO", Rating: 9, Content: "ok"})
	require.NoError(t, err)
	assert.Equal(t, 9, draft.Rating)

	public, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, pub.ID, public[0].ID)

	published := true
	patched, err := svc.Patch(ctx, draft.ID, TestimonialPatch{IsPublished: &published})
	require.NoError(t, err)
	assert.True(t, patched.IsPublished)
	assert.Equal(t, "B", patched.Name)

	_, err = svc.Patch(ctx, 99, TestimonialPatch{})
	assert.ErrorIs(t, err, ErrTestimonialNotFound)

	ok, err := svc.Delete(ctx, pub.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.Delete(ctx, pub.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
