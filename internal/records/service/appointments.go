package service

import (
	"context"
	"errors"
	"time"

	"daybook/internal/records/models"
	"daybook/internal/records/store"
	dErrors "daybook/pkg/domain-errors"
	"daybook/pkg/platform/sentinel"
	"daybook/pkg/requestcontext"
)

// Appointments manages the appointment record lifecycle. Date rules are
// evaluated against the request clock from the context so one request sees a
// single consistent reading of "now".
type Appointments struct {
	base
	store store.Store[*models.Appointment]
}

// NewAppointments constructs an Appointments service.
func NewAppointments(s store.Store[*models.Appointment], opts ...Option) *Appointments {
	a := &Appointments{store: s}
	for _, opt := range opts {
		opt(&a.base)
	}
	return a
}

// Add validates and persists a new appointment. The identifier must be free
// and the date must not be in the past.
func (a *Appointments) Add(ctx context.Context, id string, date time.Time, description string) (*models.Appointment, error) {
	appointment, err := models.NewAppointment(id, date, description, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := a.store.Create(ctx, appointment); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "appointment %q already exists", appointment.ID())
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create appointment")
	}

	a.logEvent(ctx, "appointment created", kindAppointment, appointment.ID())
	a.incrementCreated(kindAppointment)
	return appointment, nil
}

// Get returns an appointment together with its current version.
func (a *Appointments) Get(ctx context.Context, id string) (store.Versioned[*models.Appointment], error) {
	loaded, err := a.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return store.Versioned[*models.Appointment]{}, dErrors.New(dErrors.CodeNotFound, "appointment not found")
		}
		if dErrors.HasCode(err, dErrors.CodeDataIntegrity) {
			return store.Versioned[*models.Appointment]{}, err
		}
		return store.Versioned[*models.Appointment]{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load appointment")
	}
	return loaded, nil
}

// List returns all appointments ordered by identifier.
func (a *Appointments) List(ctx context.Context) ([]*models.Appointment, error) {
	appointments, err := a.store.List(ctx)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeDataIntegrity) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list appointments")
	}
	return appointments, nil
}

// Update replaces the date and description of an appointment in one atomic
// step, committing only if the record is unchanged since this call loaded it.
func (a *Appointments) Update(ctx context.Context, id string, date time.Time, description string) (store.Versioned[*models.Appointment], error) {
	start := time.Now()

	loaded, err := a.Get(ctx, id)
	if err != nil {
		return store.Versioned[*models.Appointment]{}, err
	}

	appointment := loaded.Entity
	if err := appointment.Update(date, description, requestcontext.Now(ctx)); err != nil {
		return store.Versioned[*models.Appointment]{}, err
	}

	version, err := a.store.Save(ctx, appointment, loaded.Version)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrVersionConflict):
			a.incrementVersionConflict(kindAppointment)
			return store.Versioned[*models.Appointment]{}, dErrors.New(dErrors.CodeConflict,
				"appointment was modified concurrently, reload and retry")
		case errors.Is(err, sentinel.ErrNotFound):
			return store.Versioned[*models.Appointment]{}, dErrors.New(dErrors.CodeNotFound, "appointment not found")
		default:
			return store.Versioned[*models.Appointment]{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save appointment")
		}
	}

	a.logEvent(ctx, "appointment updated", kindAppointment, id, "version", version)
	a.incrementUpdated(kindAppointment)
	a.observeUpdate(kindAppointment, start)
	return store.Versioned[*models.Appointment]{Entity: appointment, Version: version}, nil
}

// Delete removes an appointment.
func (a *Appointments) Delete(ctx context.Context, id string) error {
	if err := a.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "appointment not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete appointment")
	}
	a.logEvent(ctx, "appointment deleted", kindAppointment, id)
	a.incrementDeleted(kindAppointment)
	return nil
}
