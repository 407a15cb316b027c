package application

import (
	"context"
	"errors"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	repo "github.com/oksasatya/onesteptask/internal/domain/repository"
)

type TestimonialInput struct {
	Name        string
	Position    string
	Rating      int
	Content     string
	IsPublished bool
}

type TestimonialPatch struct {
	Name        *string
	Position    *string
	Rating      *int
	Content     *string
	IsPublished *bool
}

type TestimonialService struct {
	Testimonials repo.TestimonialRepository
}

func NewTestimonialService(r repo.TestimonialRepository) *TestimonialService {
	return &TestimonialService{Testimonials: r}
}

// List returns every testimonial, or only published ones when publicOnly.
func (s *TestimonialService) List(ctx context.Context, publicOnly bool) ([]entity.Testimonial, error) {
	return s.Testimonials.List(ctx, publicOnly)
}

// Create stores a testimonial. Rating is kept as given.
func (s *TestimonialService) Create(ctx context.Context, in TestimonialInput) (*entity.Testimonial, error) {
	t := &entity.Testimonial{
		Name:        in.Name,
		Position:    in.Position,
		Rating:      in.Rating,
		Content:     in.Content,
		IsPublished: in.IsPublished,
	}
	if err := s.Testimonials.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestimonialService) Patch(ctx context.Context, id int64, p TestimonialPatch) (*entity.Testimonial, error) {
	t, err := s.Testimonials.Update(ctx, id, func(t *entity.Testimonial) error {
		setString(&t.Name, p.Name)
		setString(&t.Position, p.Position)
		setString(&t.Content, p.Content)
		if p.Rating != nil {
			t.Rating = *p.Rating
		}
		if p.IsPublished != nil {
			t.IsPublished = *p.IsPublished
		}
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTestimonialNotFound
	}
	return t, err
}

// Delete removes a testimonial; false means the id did not exist.
func (s *TestimonialService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Testimonials.Delete(ctx, id)
}
