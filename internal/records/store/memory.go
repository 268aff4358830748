package store

import (
	"context"
	"sort"
	"sync"

	"daybook/internal/records/models"
	"daybook/pkg/platform/sentinel"
	"daybook/pkg/requestcontext"
)

type versionedRow[R any] struct {
	row     R
	version int64
}

// Memory is the in-memory Store implementation. It keeps rows rather than
// entities, so the same translation layer guards its read path as guards the
// database-backed stores, and external holders of an entity can never reach
// into stored state.
//
// It intentionally favors clarity over performance; it is the default
// backend and the unit-test double.
type Memory[T, R any] struct {
	mapper Mapper[T, R]

	mu   sync.RWMutex
	rows map[string]versionedRow[R]
}

// NewMemory constructs an empty in-memory store around a mapper.
func NewMemory[T, R any](mapper Mapper[T, R]) *Memory[T, R] {
	return &Memory[T, R]{
		mapper: mapper,
		rows:   make(map[string]versionedRow[R]),
	}
}

// Convenience constructors for the three record kinds.

func NewContactMemory() *Memory[*models.Contact, ContactRow] {
	return NewMemory[*models.Contact, ContactRow](ContactMapper{})
}

func NewTaskMemory() *Memory[*models.Task, TaskRow] {
	return NewMemory[*models.Task, TaskRow](TaskMapper{})
}

func NewAppointmentMemory() *Memory[*models.Appointment, AppointmentRow] {
	return NewMemory[*models.Appointment, AppointmentRow](AppointmentMapper{})
}

func (s *Memory[T, R]) Create(_ context.Context, entity T) error {
	row := s.mapper.ToRow(entity)
	id := s.mapper.ID(row)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; ok {
		return sentinel.ErrAlreadyExists
	}
	s.rows[id] = versionedRow[R]{row: row, version: 0}
	return nil
}

func (s *Memory[T, R]) Load(ctx context.Context, id string) (Versioned[T], error) {
	s.mu.RLock()
	stored, ok := s.rows[id]
	s.mu.RUnlock()
	if !ok {
		return Versioned[T]{}, sentinel.ErrNotFound
	}

	entity, err := Translate(s.mapper, stored.row, requestcontext.Now(ctx))
	if err != nil {
		return Versioned[T]{}, err
	}
	return Versioned[T]{Entity: entity, Version: stored.version}, nil
}

func (s *Memory[T, R]) Save(_ context.Context, entity T, expectedVersion int64) (int64, error) {
	row := s.mapper.ToRow(entity)
	id := s.mapper.ID(row)

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.rows[id]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	if stored.version != expectedVersion {
		return 0, sentinel.ErrVersionConflict
	}
	newVersion := expectedVersion + 1
	s.rows[id] = versionedRow[R]{row: row, version: newVersion}
	return newVersion, nil
}

func (s *Memory[T, R]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *Memory[T, R]) List(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	rows := make([]R, 0, len(s.rows))
	sort.Strings(ids)
	for _, id := range ids {
		rows = append(rows, s.rows[id].row)
	}
	s.mu.RUnlock()

	now := requestcontext.Now(ctx)
	entities := make([]T, 0, len(rows))
	for _, row := range rows {
		entity, err := Translate(s.mapper, row, now)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// Reset drops all rows. Test-isolation hook.
func (s *Memory[T, R]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make(map[string]versionedRow[R])
}

// put stores a raw row at a version, bypassing validation. Used by tests to
// simulate rows written outside the validated path.
func (s *Memory[T, R]) put(row R, version int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[s.mapper.ID(row)] = versionedRow[R]{row: row, version: version}
}
