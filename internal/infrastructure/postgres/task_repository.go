package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	"github.com/oksasatya/onesteptask/internal/domain/repository"
)

const taskColumns = `id, owner_user_id, name, email, task_type, deadline, description,
	attachments, status, assigned_admin_id, comments, created_at, updated_at`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	t := &entity.Task{}
	var status string
	err := row.Scan(&t.ID, &t.OwnerUserID, &t.Name, &t.Email, &t.TaskType, &t.Deadline, &t.Description,
		&t.Attachments, &status, &t.AssignedAdminID, &t.Comments, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	t.Status = entity.TaskStatus(status)
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (owner_user_id, name, email, task_type, deadline, description,
			attachments, status, assigned_admin_id, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, t.OwnerUserID, t.Name, t.Email, t.TaskType, t.Deadline, t.Description,
		t.Attachments, string(t.Status), t.AssignedAdminID, t.Comments)
	return mapError(row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt))
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	return scanTask(r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
}

func (r *TaskRepository) List(ctx context.Context, f repository.TaskFilter) ([]entity.Task, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.IDs != nil {
		where = append(where, "id = ANY("+arg(f.IDs)+")")
	}
	if f.Status != "" {
		where = append(where, "status = "+arg(string(f.Status)))
	}
	if f.OwnerUserID != nil {
		where = append(where, "owner_user_id = "+arg(*f.OwnerUserID))
	}
	if f.Search != "" {
		p := arg(likePattern(f.Search))
		where = append(where, "(name ILIKE "+p+" OR email ILIKE "+p+" OR description ILIKE "+p+" OR task_type ILIKE "+p+")")
	}

	q := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Update locks the row for the duration of fn.
func (r *TaskRepository) Update(ctx context.Context, id int64, fn func(*entity.Task) error) (*entity.Task, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t, err := scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}
	if err := fn(t); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `
		UPDATE tasks
		SET owner_user_id = $1, name = $2, email = $3, task_type = $4, deadline = $5,
			description = $6, attachments = $7, status = $8, assigned_admin_id = $9,
			comments = $10, updated_at = now()
		WHERE id = $11
		RETURNING `+taskColumns,
		t.OwnerUserID, t.Name, t.Email, t.TaskType, t.Deadline, t.Description,
		t.Attachments, string(t.Status), t.AssignedAdminID, t.Comments, id)
	updated, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
