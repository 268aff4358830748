package models

import (
	"strings"
	"time"

	"daybook/pkg/validate"
)

// Appointment is a validated calendar entry.
//
// Invariants:
//   - appointmentId is 1-10 characters after trimming and immutable after construction
//   - date is set and was not in the past at the moment it was validated
//   - description is 1-50 characters after trimming
//
// Callers supply "now" explicitly so a whole request validates against a
// single clock reading (see requestcontext.Now). Date accessors hand back
// time.Time values, which copy on assignment, so no caller holds a reference
// into the appointment's internal state.
type Appointment struct {
	id          string
	date        time.Time
	description string
}

// NewAppointment validates every field before assigning any of them. The date
// must not be strictly before now; the comparison is instant against instant
// with no day truncation.
func NewAppointment(id string, date time.Time, description string, now time.Time) (*Appointment, error) {
	if err := validate.Length(id, "appointmentId", minFieldLength, maxIDLength); err != nil {
		return nil, err
	}
	a := &Appointment{id: strings.TrimSpace(id)}
	if err := a.Update(date, description, now); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Appointment) ID() string          { return a.id }
func (a *Appointment) Description() string { return a.description }

// Date returns the appointment instant. time.Time has value semantics, so the
// returned copy cannot be used to mutate the appointment after the fact.
func (a *Appointment) Date() time.Time { return a.date }

// SetDescription validates then assigns the trimmed description. Use Update
// to change the date and description together.
func (a *Appointment) SetDescription(description string) error {
	if err := validate.Length(description, "description", minFieldLength, maxDescriptionLength); err != nil {
		return err
	}
	a.description = strings.TrimSpace(description)
	return nil
}

// Update replaces both mutable fields atomically: both new values are
// validated before either field is assigned, so a valid date paired with an
// invalid description leaves the appointment untouched.
func (a *Appointment) Update(date time.Time, description string, now time.Time) error {
	if err := validate.NotPast(date, "appointmentDate", now); err != nil {
		return err
	}
	if err := validate.Length(description, "description", minFieldLength, maxDescriptionLength); err != nil {
		return err
	}

	a.date = date
	a.description = strings.TrimSpace(description)
	return nil
}

// Copy reconstructs an equivalent appointment through the public constructor.
// The copy re-validates against now, so an appointment whose date has since
// passed cannot be duplicated into circulation.
func (a *Appointment) Copy(now time.Time) (*Appointment, error) {
	return NewAppointment(a.id, a.date, a.description, now)
}
