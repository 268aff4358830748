package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"daybook/internal/records/models"
	"daybook/internal/records/store"
	"daybook/pkg/platform/sentinel"
	"daybook/pkg/requestcontext"
)

// Tasks persists tasks in the tasks table.
type Tasks struct {
	db     *sql.DB
	mapper store.TaskMapper
}

// NewTasks constructs a PostgreSQL-backed task store.
func NewTasks(db *sql.DB) *Tasks {
	return &Tasks{db: db}
}

func (s *Tasks) Create(ctx context.Context, task *models.Task) error {
	row := s.mapper.ToRow(task)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (task_id, name, description, version) VALUES ($1, $2, $3, 0)`,
		row.ID, row.Name, row.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyExists
		}
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (s *Tasks) Load(ctx context.Context, id string) (store.Versioned[*models.Task], error) {
	var (
		row     store.TaskRow
		version int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT task_id, name, description, version FROM tasks WHERE task_id = $1`, id,
	).Scan(&row.ID, &row.Name, &row.Description, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Versioned[*models.Task]{}, sentinel.ErrNotFound
		}
		return store.Versioned[*models.Task]{}, fmt.Errorf("load task: %w", err)
	}

	task, err := store.Translate(s.mapper, row, requestcontext.Now(ctx))
	if err != nil {
		return store.Versioned[*models.Task]{}, err
	}
	return store.Versioned[*models.Task]{Entity: task, Version: version}, nil
}

func (s *Tasks) Save(ctx context.Context, task *models.Task, expectedVersion int64) (int64, error) {
	row := s.mapper.ToRow(task)
	var newVersion int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE tasks
		 SET name = $2, description = $3, version = version + 1
		 WHERE task_id = $1 AND version = $4
		 RETURNING version`,
		row.ID, row.Name, row.Description, expectedVersion,
	).Scan(&newVersion)
	if err != nil {
		err = saveOutcome(ctx, s.db, `SELECT EXISTS (SELECT 1 FROM tasks WHERE task_id = $1)`, row.ID, err)
		if errors.Is(err, sentinel.ErrVersionConflict) || errors.Is(err, sentinel.ErrNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("save task: %w", err)
	}
	return newVersion, nil
}

func (s *Tasks) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Tasks) List(ctx context.Context) ([]*models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT task_id, name, description FROM tasks ORDER BY task_id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	now := requestcontext.Now(ctx)
	var tasks []*models.Task
	for rows.Next() {
		var row store.TaskRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Description); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task, err := store.Translate(s.mapper, row, now)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}
