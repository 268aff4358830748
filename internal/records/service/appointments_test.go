package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybook/internal/records/service"
	"daybook/internal/records/store"
	dErrors "daybook/pkg/domain-errors"
	"daybook/pkg/requestcontext"
)

func TestAppointmentsAddAndGet(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	svc := service.NewAppointments(store.NewAppointmentMemory())

	date := now.Add(72 * time.Hour)
	appointment, err := svc.Add(ctx, "A-1", date, "dentist")
	require.NoError(t, err)
	assert.Equal(t, date, appointment.Date())

	loaded, err := svc.Get(ctx, "A-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), loaded.Version)
	assert.Equal(t, "dentist", loaded.Entity.Description())
}

func TestAppointmentsAddRejectsPastDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	svc := service.NewAppointments(store.NewAppointmentMemory())

	_, err := svc.Add(ctx, "A-1", now.Add(-time.Hour), "dentist")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "appointmentDate must not be in the past")

	_, err = svc.Add(ctx, "A-1", time.Time{}, "dentist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appointmentDate is required")
}

func TestAppointmentsUpdate(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	svc := service.NewAppointments(store.NewAppointmentMemory())

	date := now.Add(72 * time.Hour)
	_, err := svc.Add(ctx, "A-1", date, "dentist")
	require.NoError(t, err)

	moved := now.Add(96 * time.Hour)
	updated, err := svc.Update(ctx, "A-1", moved, "dentist, rescheduled")
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Version)
	assert.Equal(t, moved, updated.Entity.Date())
}

func TestAppointmentsUpdateRejectsPastDateAtomically(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	svc := service.NewAppointments(store.NewAppointmentMemory())

	date := now.Add(72 * time.Hour)
	_, err := svc.Add(ctx, "A-1", date, "dentist")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "A-1", now.Add(-time.Hour), "moved back")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	loaded, err := svc.Get(ctx, "A-1")
	require.NoError(t, err)
	assert.Equal(t, date, loaded.Entity.Date())
	assert.Equal(t, "dentist", loaded.Entity.Description())
	assert.Equal(t, int64(0), loaded.Version)
}

func TestAppointmentsListAndDelete(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	svc := service.NewAppointments(store.NewAppointmentMemory())

	_, err := svc.Add(ctx, "A-2", now.Add(48*time.Hour), "haircut")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "A-1", now.Add(24*time.Hour), "dentist")
	require.NoError(t, err)

	appointments, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, "A-1", appointments[0].ID())

	require.NoError(t, svc.Delete(ctx, "A-1"))
	appointments, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}
