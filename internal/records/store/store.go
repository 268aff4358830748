// Package store defines the persistence contract for domain records and the
// translation between entities and their persisted row form.
//
// Implementations (memory, postgres, redis) are interface-driven so services
// stay testable and storage engines can be swapped without rewiring business
// code. Save is the single mutating primitive for updates: it is an atomic
// compare-and-swap against the stored version, never a read-then-write pair
// on this side of the boundary.
package store

import (
	"context"
	"fmt"
	"time"

	dErrors "daybook/pkg/domain-errors"
)

// Versioned pairs an entity with the version stamp it was loaded at. The
// stamp is the sole arbiter of update conflicts; callers never set it.
type Versioned[T any] struct {
	Entity  T
	Version int64
}

// Store is the generic persistence contract for one record kind.
//
// Semantics:
//   - Create inserts a new record at version 0 and fails with
//     sentinel.ErrAlreadyExists when the identifier is taken.
//   - Load returns the record with its current version, or
//     sentinel.ErrNotFound.
//   - Save commits new field values only if the stored version still equals
//     expectedVersion, advancing it by exactly one and returning the new
//     version. A concurrent commit surfaces as sentinel.ErrVersionConflict
//     with no write performed.
//   - Delete removes the record or reports sentinel.ErrNotFound.
//
// Load, Save, Delete, and List may block on the storage engine; everything
// else in the records core is synchronous and non-blocking.
type Store[T any] interface {
	Create(ctx context.Context, entity T) error
	Load(ctx context.Context, id string) (Versioned[T], error)
	Save(ctx context.Context, entity T, expectedVersion int64) (int64, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]T, error)
}

// Mapper converts between a domain entity and its persisted row form.
//
// ToRow is a pure field copy: the entity is already valid. ToDomain must go
// back through the entity's validating constructor so rows written outside
// the validated path (manual edits, migrations, bugs) cannot produce an
// invalid in-memory entity. The now argument feeds time-sensitive rules.
type Mapper[T, R any] interface {
	ID(row R) string
	ToRow(entity T) R
	ToDomain(row R, now time.Time) (T, error)
}

// Translate runs the read path of a mapper, tagging any constraint failure
// as a data-integrity error: the stored row is corrupt and the failure must
// surface loudly rather than hand business logic a half-valid entity.
func Translate[T, R any](m Mapper[T, R], row R, now time.Time) (T, error) {
	entity, err := m.ToDomain(row, now)
	if err != nil {
		var zero T
		return zero, dErrors.Wrap(err, dErrors.CodeDataIntegrity,
			fmt.Sprintf("stored record %q failed validation", m.ID(row)))
	}
	return entity, nil
}
