package service

import (
	"context"
	"errors"
	"time"

	"daybook/internal/records/models"
	"daybook/internal/records/store"
	dErrors "daybook/pkg/domain-errors"
	"daybook/pkg/platform/sentinel"
)

// Tasks manages the task record lifecycle.
type Tasks struct {
	base
	store store.Store[*models.Task]
}

// NewTasks constructs a Tasks service.
func NewTasks(s store.Store[*models.Task], opts ...Option) *Tasks {
	t := &Tasks{store: s}
	for _, opt := range opts {
		opt(&t.base)
	}
	return t
}

// Add validates and persists a new task. The identifier must be free.
func (t *Tasks) Add(ctx context.Context, id, name, description string) (*models.Task, error) {
	task, err := models.NewTask(id, name, description)
	if err != nil {
		return nil, err
	}

	if err := t.store.Create(ctx, task); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "task %q already exists", task.ID())
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create task")
	}

	t.logEvent(ctx, "task created", kindTask, task.ID())
	t.incrementCreated(kindTask)
	return task, nil
}

// Get returns a task together with its current version.
func (t *Tasks) Get(ctx context.Context, id string) (store.Versioned[*models.Task], error) {
	loaded, err := t.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return store.Versioned[*models.Task]{}, dErrors.New(dErrors.CodeNotFound, "task not found")
		}
		if dErrors.HasCode(err, dErrors.CodeDataIntegrity) {
			return store.Versioned[*models.Task]{}, err
		}
		return store.Versioned[*models.Task]{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load task")
	}
	return loaded, nil
}

// List returns all tasks ordered by identifier.
func (t *Tasks) List(ctx context.Context) ([]*models.Task, error) {
	tasks, err := t.store.List(ctx)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeDataIntegrity) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tasks")
	}
	return tasks, nil
}

// Update replaces both mutable fields of a task in one atomic step, committing
// only if the record is unchanged since this call loaded it.
func (t *Tasks) Update(ctx context.Context, id, name, description string) (store.Versioned[*models.Task], error) {
	start := time.Now()

	loaded, err := t.Get(ctx, id)
	if err != nil {
		return store.Versioned[*models.Task]{}, err
	}

	task := loaded.Entity
	if err := task.Update(name, description); err != nil {
		return store.Versioned[*models.Task]{}, err
	}

	version, err := t.store.Save(ctx, task, loaded.Version)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrVersionConflict):
			t.incrementVersionConflict(kindTask)
			return store.Versioned[*models.Task]{}, dErrors.New(dErrors.CodeConflict,
				"task was modified concurrently, reload and retry")
		case errors.Is(err, sentinel.ErrNotFound):
			return store.Versioned[*models.Task]{}, dErrors.New(dErrors.CodeNotFound, "task not found")
		default:
			return store.Versioned[*models.Task]{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save task")
		}
	}

	t.logEvent(ctx, "task updated", kindTask, id, "version", version)
	t.incrementUpdated(kindTask)
	t.observeUpdate(kindTask, start)
	return store.Versioned[*models.Task]{Entity: task, Version: version}, nil
}

// Delete removes a task.
func (t *Tasks) Delete(ctx context.Context, id string) error {
	if err := t.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "task not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete task")
	}
	t.logEvent(ctx, "task deleted", kindTask, id)
	t.incrementDeleted(kindTask)
	return nil
}
