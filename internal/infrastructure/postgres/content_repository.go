package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	"github.com/oksasatya/onesteptask/internal/domain/repository"
)

// ---- testimonials ----

const testimonialColumns = `id, name, position, rating, content, is_published, created_at`

type TestimonialRepository struct {
	pool *pgxpool.Pool
}

func NewTestimonialRepository(pool *pgxpool.Pool) *TestimonialRepository {
	return &TestimonialRepository{pool: pool}
}

func scanTestimonial(row pgx.Row) (*entity.Testimonial, error) {
	t := &entity.Testimonial{}
	if err := row.Scan(&t.ID, &t.Name, &t.Position, &t.Rating, &t.Content, &t.IsPublished, &t.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *TestimonialRepository) Create(ctx context.Context, t *entity.Testimonial) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO testimonials (name, position, rating, content, is_published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, t.Name, t.Position, t.Rating, t.Content, t.IsPublished)
	return mapError(row.Scan(&t.ID, &t.CreatedAt))
}

func (r *TestimonialRepository) GetByID(ctx context.Context, id int64) (*entity.Testimonial, error) {
	return scanTestimonial(r.pool.QueryRow(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id))
}

func (r *TestimonialRepository) List(ctx context.Context, publishedOnly bool) ([]entity.Testimonial, error) {
	q := `SELECT ` + testimonialColumns + ` FROM testimonials`
	if publishedOnly {
		q += ` WHERE is_published`
	}
	rows, err := r.pool.Query(ctx, q+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TestimonialRepository) Update(ctx context.Context, id int64, fn func(*entity.Testimonial) error) (*entity.Testimonial, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t, err := scanTestimonial(tx.QueryRow(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	updated, err := scanTestimonial(tx.QueryRow(ctx, `
		UPDATE testimonials
		SET name = $1, position = $2, rating = $3, content = $4, is_published = $5
		WHERE id = $6
		RETURNING `+testimonialColumns,
		t.Name, t.Position, t.Rating, t.Content, t.IsPublished, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ---- page contents ----

const pageColumns = `id, page_slug, content, last_updated`

type PageContentRepository struct {
	pool *pgxpool.Pool
}

func NewPageContentRepository(pool *pgxpool.Pool) *PageContentRepository {
	return &PageContentRepository{pool: pool}
}

func scanPage(row pgx.Row) (*entity.PageContent, error) {
	p := &entity.PageContent{}
	if err := row.Scan(&p.ID, &p.PageSlug, &p.Content, &p.LastUpdated); err != nil {
		return nil, mapError(err)
	}
	if p.Content == nil {
		p.Content = map[string]any{}
	}
	return p, nil
}

func (r *PageContentRepository) Create(ctx context.Context, p *entity.PageContent) error {
	content := p.Content
	if content == nil {
		content = map[string]any{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO page_contents (page_slug, content)
		VALUES ($1, $2)
		RETURNING id, last_updated
	`, p.PageSlug, content)
	return mapError(row.Scan(&p.ID, &p.LastUpdated))
}

func (r *PageContentRepository) GetByID(ctx context.Context, id int64) (*entity.PageContent, error) {
	return scanPage(r.pool.QueryRow(ctx, `SELECT `+pageColumns+` FROM page_contents WHERE id = $1`, id))
}

func (r *PageContentRepository) GetBySlug(ctx context.Context, slug string) (*entity.PageContent, error) {
	return scanPage(r.pool.QueryRow(ctx, `SELECT `+pageColumns+` FROM page_contents WHERE page_slug = $1`, slug))
}

func (r *PageContentRepository) List(ctx context.Context) ([]entity.PageContent, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+pageColumns+` FROM page_contents ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.PageContent{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update never changes page_slug.
func (r *PageContentRepository) Update(ctx context.Context, id int64, fn func(*entity.PageContent) error) (*entity.PageContent, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := scanPage(tx.QueryRow(ctx, `SELECT `+pageColumns+` FROM page_contents WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	updated, err := scanPage(tx.QueryRow(ctx, `
		UPDATE page_contents SET content = $1, last_updated = now()
		WHERE id = $2
		RETURNING `+pageColumns, p.Content, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

var (
	_ repository.TestimonialRepository = (*TestimonialRepository)(nil)
	_ repository.PageContentRepository = (*PageContentRepository)(nil)
)
