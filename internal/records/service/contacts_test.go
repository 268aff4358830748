package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybook/internal/records/service"
	"daybook/internal/records/store"
	dErrors "daybook/pkg/domain-errors"
)

func TestContactsAddAndGet(t *testing.T) {
	ctx := context.Background()
	svc := service.NewContacts(store.NewContactMemory())

	contact, err := svc.Add(ctx, "C-1", "Ada", "Lovelace", "5551234567", "12 Crunch St")
	require.NoError(t, err)
	assert.Equal(t, "C-1", contact.ID())

	loaded, err := svc.Get(ctx, "C-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), loaded.Version)
	assert.Equal(t, "Ada", loaded.Entity.FirstName())
}

func TestContactsAddRejectsInvalidFields(t *testing.T) {
	ctx := context.Background()
	svc := service.NewContacts(store.NewContactMemory())

	_, err := svc.Add(ctx, "C-1", "Ada", "Lovelace", "555", "12 Crunch St")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "phone must be exactly 10 numeric digits")

	// Nothing was persisted.
	_, err = svc.Get(ctx, "C-1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestContactsAddDuplicateID(t *testing.T) {
	ctx := context.Background()
	svc := service.NewContacts(store.NewContactMemory())

	_, err := svc.Add(ctx, "C-1", "Ada", "Lovelace", "5551234567", "12 Crunch St")
	require.NoError(t, err)

	_, err = svc.Add(ctx, "C-1", "Grace", "Hopper", "5559876543", "7 Harbor Rd")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestContactsUpdateAdvancesVersion(t *testing.T) {
	ctx := context.Background()
	svc := service.NewContacts(store.NewContactMemory())

	_, err := svc.Add(ctx, "C-1", "Ada", "Lovelace", "5551234567", "12 Crunch St")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "C-1", "Ada", "King", "5551234567", "1 Ockham Park")
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Version)
	assert.Equal(t, "King", updated.Entity.LastName())

	loaded, err := svc.Get(ctx, "C-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), loaded.Version)
	assert.Equal(t, "1 Ockham Park", loaded.Entity.Address())
}

func TestContactsUpdateValidationLeavesRecordUntouched(t *testing.T) {
	ctx := context.Background()
	svc := service.NewContacts(store.NewContactMemory())

	_, err := svc.Add(ctx, "C-1", "Ada", "Lovelace", "5551234567", "12 Crunch St")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "C-1", "Ada", "Lovelace", "55512345", "12 Crunch St")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	loaded, err := svc.Get(ctx, "C-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), loaded.Version)
	assert.Equal(t, "5551234567", loaded.Entity.Phone())
}

func TestContactsUpdateMissingRecord(t *testing.T) {
	ctx := context.Background()
	svc := service.NewContacts(store.NewContactMemory())

	_, err := svc.Update(ctx, "C-9", "Ada", "Lovelace", "5551234567", "12 Crunch St")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestContactsDelete(t *testing.T) {
	ctx := context.Background()
	svc := service.NewContacts(store.NewContactMemory())

	_, err := svc.Add(ctx, "C-1", "Ada", "Lovelace", "5551234567", "12 Crunch St")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "C-1"))
	err = svc.Delete(ctx, "C-1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestContactsList(t *testing.T) {
	ctx := context.Background()
	svc := service.NewContacts(store.NewContactMemory())

	_, err := svc.Add(ctx, "C-2", "Grace", "Hopper", "5559876543", "7 Harbor Rd")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "C-1", "Ada", "Lovelace", "5551234567", "12 Crunch St")
	require.NoError(t, err)

	contacts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "C-1", contacts[0].ID())
	assert.Equal(t, "C-2", contacts[1].ID())
}
