package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/onesteptask/internal/domain/repository"
)

// NewStore wires every repository to the same pool.
func NewStore(pool *pgxpool.Pool) repository.Store {
	return repository.Store{
		Users:        NewUserRepository(pool),
		Admins:       NewAdminUserRepository(pool),
		Tasks:        NewTaskRepository(pool),
		Testimonials: NewTestimonialRepository(pool),
		PageContents: NewPageContentRepository(pool),
	}
}
