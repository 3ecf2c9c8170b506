package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"task-api/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskStore is the persistence contract the task handlers depend on.
type TaskStore interface {
	List(ctx context.Context, limit, offset int) ([]models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	Create(ctx context.Context, in models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, id int64, in models.TaskInput) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

var taskColumns = []string{"task_id", "title", "description", "status", "created_at", "updated_at"}

type TaskRepository struct {
	db      *sql.DB
	builder squirrel.StatementBuilderType
	now     func() time.Time
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		t         models.Task
		updatedAt sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &updatedAt); err != nil {
		return models.Task{}, err
	}
	if updatedAt.Valid {
		t.UpdatedAt = &updatedAt.Time
	}
	return t, nil
}

// List returns one page of tasks ordered by id.
func (r *TaskRepository) List(ctx context.Context, limit, offset int) ([]models.Task, error) {
	query, args, err := r.builder.
		Select(taskColumns...).
		From("tasks").
		OrderBy("task_id").
		Suffix("LIMIT ? OFFSET ?", limit, offset).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query, args, err := r.builder.
		Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"task_id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	t, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select task %d: %w", id, err)
	}
	return &t, nil
}

// Create inserts the task and reads it back so the result carries the
// generated id and created_at.
func (r *TaskRepository) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	query, args, err := r.builder.
		Insert("tasks").
		Columns("title", "description", "status").
		Values(in.Title, in.Description, string(in.Status)).
		Suffix("RETURNING task_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites the task fields, stamps updated_at and reads the row back.
// ErrTaskNotFound when no row has the id.
func (r *TaskRepository) Update(ctx context.Context, id int64, in models.TaskInput) (*models.Task, error) {
	query, args, err := r.builder.
		Update("tasks").
		Set("title", in.Title).
		Set("description", in.Description).
		Set("status", string(in.Status)).
		Set("updated_at", r.now()).
		Where(squirrel.Eq{"task_id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.builder.
		Delete("tasks").
		Where(squirrel.Eq{"task_id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
