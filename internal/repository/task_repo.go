package repository

import (
	"context"
	"errors"
	"time"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, title, description, due_date, priority, created_by, state,
	assigned_to, assigned_to_name, created_at, completed_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	var due *time.Time
	var priority, state string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &due, &priority, &t.CreatedBy, &state,
		&t.AssignedTo, &t.AssignedToName, &t.CreatedAt, &t.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	if due != nil {
		s := due.Format(domain.DateLayout)
		t.DueDate = &s
	}
	t.Priority = domain.Priority(priority)
	t.State = domain.State(state)
	return &t, nil
}

// dueDateArg converts the string form of a due date to a DATE argument.
func dueDateArg(due *string) (*time.Time, error) {
	if due == nil {
		return nil, nil
	}
	d, err := time.Parse(domain.DateLayout, *due)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *TaskRepository) queryTasks(ctx context.Context, sql string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
}

func (r *TaskRepository) ListTasksAssignedTo(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE assigned_to = $1 ORDER BY id`, userID)
}

func (r *TaskRepository) ListTasksCreatedBy(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE created_by = $1 ORDER BY id`, userID)
}

func (r *TaskRepository) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
}

func (r *TaskRepository) CreateTask(ctx context.Context, t *domain.Task) error {
	due, err := dueDateArg(t.DueDate)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `LOCK TABLE tasks IN EXCLUSIVE MODE`); err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO tasks (id, title, description, due_date, priority, created_by, state,
		                    assigned_to, assigned_to_name, created_at, completed_at)
		 SELECT COALESCE(MAX(id), 0) + 1, $1::text, $2::text, $3::date, $4::text, $5::bigint, $6::text,
		        $7::bigint, $8::text, $9::timestamptz, $10::timestamptz FROM tasks
		 RETURNING id`,
		t.Title, t.Description, due, string(t.Priority), t.CreatedBy, string(t.State),
		t.AssignedTo, t.AssignedToName, t.CreatedAt, t.CompletedAt,
	).Scan(&t.ID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id int64, fn func(*domain.Task) error) (*domain.Task, error) {
	tx, err := r.db.Begin(ctx)
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
	t.ID = id

	due, err := dueDateArg(t.DueDate)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, due_date = $3, priority = $4, state = $5,
		     assigned_to = $6, assigned_to_name = $7, completed_at = $8
		 WHERE id = $9`,
		t.Title, t.Description, due, string(t.Priority), string(t.State),
		t.AssignedTo, t.AssignedToName, t.CompletedAt, id,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
