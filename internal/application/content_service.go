package application

import (
	"context"
	"errors"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	repo "github.com/oksasatya/onesteptask/internal/domain/repository"
)

// ContentService manages per-page content documents. The document shape is
// opaque here.
type ContentService struct {
	Pages repo.PageContentRepository
}

func NewContentService(r repo.PageContentRepository) *ContentService {
	return &ContentService{Pages: r}
}

func (s *ContentService) Get(ctx context.Context, slug string) (*entity.PageContent, error) {
	p, err := s.Pages.GetBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrContentNotFound
	}
	return p, err
}

func (s *ContentService) List(ctx context.Context) ([]entity.PageContent, error) {
	return s.Pages.List(ctx)
}

// Create stores the document for slug and fails when one already exists.
func (s *ContentService) Create(ctx context.Context, slug string, content map[string]any) (*entity.PageContent, error) {
	if content == nil {
		content = map[string]any{}
	}
	p := &entity.PageContent{PageSlug: slug, Content: content}
	if err := s.Pages.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return p, nil
}

// Patch replaces the given top-level keys of the document. Nested values are
// replaced whole, not merged.
func (s *ContentService) Patch(ctx context.Context, id int64, partial map[string]any) (*entity.PageContent, error) {
	p, err := s.Pages.Update(ctx, id, func(p *entity.PageContent) error {
		if p.Content == nil {
			p.Content = make(map[string]any, len(partial))
		}
		for k, v := range entity.CloneDocument(partial) {
			p.Content[k] = v
		}
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrContentNotFound
	}
	return p, err
}
