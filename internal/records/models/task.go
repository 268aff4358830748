package models

import (
	"strings"

	"daybook/pkg/validate"
)

const (
	maxTaskNameLength    = 20
	maxDescriptionLength = 50
)

// Task is a validated to-do entry.
//
// Invariants:
//   - taskId is 1-10 characters after trimming and immutable after construction
//   - name is 1-20 characters after trimming
//   - description is 1-50 characters after trimming
type Task struct {
	id          string
	name        string
	description string
}

// NewTask validates every field before assigning any of them.
func NewTask(id, name, description string) (*Task, error) {
	if err := validate.Length(id, "taskId", minFieldLength, maxIDLength); err != nil {
		return nil, err
	}
	t := &Task{id: strings.TrimSpace(id)}
	if err := t.Update(name, description); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Task) ID() string          { return t.id }
func (t *Task) Name() string        { return t.name }
func (t *Task) Description() string { return t.description }

// SetName validates then assigns the trimmed name.
func (t *Task) SetName(name string) error {
	if err := validate.Length(name, "name", minFieldLength, maxTaskNameLength); err != nil {
		return err
	}
	t.name = strings.TrimSpace(name)
	return nil
}

// SetDescription validates then assigns the trimmed description.
func (t *Task) SetDescription(description string) error {
	if err := validate.Length(description, "description", minFieldLength, maxDescriptionLength); err != nil {
		return err
	}
	t.description = strings.TrimSpace(description)
	return nil
}

// Update replaces both mutable fields atomically: both new values are
// validated before either field is assigned.
func (t *Task) Update(name, description string) error {
	if err := validate.Length(name, "name", minFieldLength, maxTaskNameLength); err != nil {
		return err
	}
	if err := validate.Length(description, "description", minFieldLength, maxDescriptionLength); err != nil {
		return err
	}

	t.name = strings.TrimSpace(name)
	t.description = strings.TrimSpace(description)
	return nil
}

// Copy reconstructs an equivalent task through the public constructor.
func (t *Task) Copy() (*Task, error) {
	return NewTask(t.id, t.name, t.description)
}
