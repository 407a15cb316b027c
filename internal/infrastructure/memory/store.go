package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	"github.com/oksasatya/onesteptask/internal/domain/repository"
)

// Option configures the in-memory store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used to stamp entities.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewStore builds an empty process-local store. Each collection has its own
// id sequence and lock.
func NewStore(opts ...Option) repository.Store {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return repository.Store{
		Users:        &UserRepository{c: newCollection[entity.User](nil), now: o.now},
		Admins:       &AdminUserRepository{c: newCollection[entity.AdminUser](nil), now: o.now},
		Tasks:        &TaskRepository{c: newCollection(entity.Task.Clone), now: o.now},
		Testimonials: &TestimonialRepository{c: newCollection[entity.Testimonial](nil), now: o.now},
		PageContents: &PageContentRepository{c: newCollection(entity.PageContent.Clone), now: o.now},
	}
}

// ---- users ----

type UserRepository struct {
	c   *collection[entity.User]
	now func() time.Time
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	created, err := r.c.insert(func(ex entity.User) error {
		if ex.Username == u.Username {
			return &repository.ConflictError{Field: "username"}
		}
		if ex.Email == u.Email {
			return &repository.ConflictError{Field: "email"}
		}
		return nil
	}, func(id int64) entity.User {
		v := *u
		v.ID = id
		v.CreatedAt = r.now()
		return v
	})
	if err != nil {
		return err
	}
	*u = created
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return r.c.get(id)
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.c.find(func(u entity.User) bool { return u.Username == username })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.c.find(func(u entity.User) bool { return u.Email == email })
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	return r.c.list(nil), nil
}

// ---- admins ----

type AdminUserRepository struct {
	c   *collection[entity.AdminUser]
	now func() time.Time
}

func (r *AdminUserRepository) Create(_ context.Context, a *entity.AdminUser) error {
	created, err := r.c.insert(func(ex entity.AdminUser) error {
		if ex.Username == a.Username {
			return &repository.ConflictError{Field: "username"}
		}
		if ex.Email == a.Email {
			return &repository.ConflictError{Field: "email"}
		}
		return nil
	}, func(id int64) entity.AdminUser {
		v := *a
		v.ID = id
		v.CreatedAt = r.now()
		return v
	})
	if err != nil {
		return err
	}
	*a = created
	return nil
}

func (r *AdminUserRepository) GetByID(_ context.Context, id int64) (*entity.AdminUser, error) {
	return r.c.get(id)
}

func (r *AdminUserRepository) GetByUsername(_ context.Context, username string) (*entity.AdminUser, error) {
	return r.c.find(func(a entity.AdminUser) bool { return a.Username == username })
}

// ---- tasks ----

type TaskRepository struct {
	c   *collection[entity.Task]
	now func() time.Time
}

func (r *TaskRepository) Create(_ context.Context, t *entity.Task) error {
	created, err := r.c.insert(nil, func(id int64) entity.Task {
		v := t.Clone()
		ts := r.now()
		v.ID = id
		v.CreatedAt = ts
		v.UpdatedAt = ts
		return v
	})
	if err != nil {
		return err
	}
	*t = created
	return nil
}

func (r *TaskRepository) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	return r.c.get(id)
}

func (r *TaskRepository) List(_ context.Context, f repository.TaskFilter) ([]entity.Task, error) {
	q := strings.ToLower(f.Search)
	return r.c.list(func(t entity.Task) bool {
		if f.IDs != nil && !slices.Contains(f.IDs, t.ID) {
			return false
		}
		if f.Status != "" && t.Status != f.Status {
			return false
		}
		if f.OwnerUserID != nil && (t.OwnerUserID == nil || *t.OwnerUserID != *f.OwnerUserID) {
			return false
		}
		if q != "" && !matchesSearch(t, q) {
			return false
		}
		return true
	}), nil
}

// matchesSearch expects q already lower-cased.
func matchesSearch(t entity.Task, q string) bool {
	for _, field := range []string{t.Name, t.Email, t.Description, t.TaskType} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (r *TaskRepository) Update(_ context.Context, id int64, fn func(*entity.Task) error) (*entity.Task, error) {
	return r.c.update(id, func(t *entity.Task) error {
		createdAt := t.CreatedAt
		if err := fn(t); err != nil {
			return err
		}
		t.ID = id
		t.CreatedAt = createdAt
		t.UpdatedAt = r.now()
		return nil
	})
}

func (r *TaskRepository) Delete(_ context.Context, id int64) (bool, error) {
	return r.c.remove(id), nil
}

// ---- testimonials ----

type TestimonialRepository struct {
	c   *collection[entity.Testimonial]
	now func() time.Time
}

func (r *TestimonialRepository) Create(_ context.Context, t *entity.Testimonial) error {
	created, err := r.c.insert(nil, func(id int64) entity.Testimonial {
		v := *t
		v.ID = id
		v.CreatedAt = r.now()
		return v
	})
	if err != nil {
		return err
	}
	*t = created
	return nil
}

func (r *TestimonialRepository) GetByID(_ context.Context, id int64) (*entity.Testimonial, error) {
	return r.c.get(id)
}

func (r *TestimonialRepository) List(_ context.Context, publishedOnly bool) ([]entity.Testimonial, error) {
	if !publishedOnly {
		return r.c.list(nil), nil
	}
	return r.c.list(func(t entity.Testimonial) bool { return t.IsPublished }), nil
}

func (r *TestimonialRepository) Update(_ context.Context, id int64, fn func(*entity.Testimonial) error) (*entity.Testimonial, error) {
	return r.c.update(id, func(t *entity.Testimonial) error {
		createdAt := t.CreatedAt
		if err := fn(t); err != nil {
			return err
		}
		t.ID = id
		t.CreatedAt = createdAt
		return nil
	})
}

func (r *TestimonialRepository) Delete(_ context.Context, id int64) (bool, error) {
	return r.c.remove(id), nil
}

// ---- page contents ----

type PageContentRepository struct {
	c   *collection[entity.PageContent]
	now func() time.Time
}

func (r *PageContentRepository) Create(_ context.Context, p *entity.PageContent) error {
	created, err := r.c.insert(func(ex entity.PageContent) error {
		if ex.PageSlug == p.PageSlug {
			return &repository.ConflictError{Field: "pageSlug"}
		}
		return nil
	}, func(id int64) entity.PageContent {
		v := p.Clone()
		v.ID = id
		v.LastUpdated = r.now()
		return v
	})
	if err != nil {
		return err
	}
	*p = created
	return nil
}

func (r *PageContentRepository) GetByID(_ context.Context, id int64) (*entity.PageContent, error) {
	return r.c.get(id)
}

func (r *PageContentRepository) GetBySlug(_ context.Context, slug string) (*entity.PageContent, error) {
	return r.c.find(func(p entity.PageContent) bool { return p.PageSlug == slug })
}

func (r *PageContentRepository) List(_ context.Context) ([]entity.PageContent, error) {
	return r.c.list(nil), nil
}

func (r *PageContentRepository) Update(_ context.Context, id int64, fn func(*entity.PageContent) error) (*entity.PageContent, error) {
	return r.c.update(id, func(p *entity.PageContent) error {
		slug := p.PageSlug
		if err := fn(p); err != nil {
			return err
		}
		p.ID = id
		p.PageSlug = slug
		p.LastUpdated = r.now()
		return nil
	})
}

var (
	_ repository.UserRepository        = (*UserRepository)(nil)
	_ repository.AdminUserRepository   = (*AdminUserRepository)(nil)
	_ repository.TaskRepository        = (*TaskRepository)(nil)
	_ repository.TestimonialRepository = (*TestimonialRepository)(nil)
	_ repository.PageContentRepository = (*PageContentRepository)(nil)
)
