package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	"github.com/oksasatya/onesteptask/internal/domain/repository"
)

const userColumns = `id, username, password, email, name, created_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.Name, &u.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, password, email, name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Username, u.Password, u.Email, u.Name)
	return mapError(row.Scan(&u.ID, &u.CreatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

type AdminUserRepository struct {
	pool *pgxpool.Pool
}

func NewAdminUserRepository(pool *pgxpool.Pool) *AdminUserRepository {
	return &AdminUserRepository{pool: pool}
}

func scanAdmin(row pgx.Row) (*entity.AdminUser, error) {
	a := &entity.AdminUser{}
	if err := row.Scan(&a.ID, &a.Username, &a.Password, &a.Email, &a.Name, &a.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *AdminUserRepository) Create(ctx context.Context, a *entity.AdminUser) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO admin_users (username, password, email, name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, a.Username, a.Password, a.Email, a.Name)
	return mapError(row.Scan(&a.ID, &a.CreatedAt))
}

func (r *AdminUserRepository) GetByID(ctx context.Context, id int64) (*entity.AdminUser, error) {
	return scanAdmin(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM admin_users WHERE id = $1`, id))
}

func (r *AdminUserRepository) GetByUsername(ctx context.Context, username string) (*entity.AdminUser, error) {
	return scanAdmin(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM admin_users WHERE username = $1`, username))
}

var (
	_ repository.UserRepository      = (*UserRepository)(nil)
	_ repository.AdminUserRepository = (*AdminUserRepository)(nil)
)
