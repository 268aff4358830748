package store

import (
	"time"

	"daybook/internal/records/models"
)

// Row types mirror the storage schema one column per field. JSON tags give
// the redis backend a stable wire form; the postgres backend binds columns
// positionally.

type ContactRow struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type TaskRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AppointmentRow struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// ContactMapper translates contacts. The read path re-invokes NewContact so
// corrupted rows fail loudly.
type ContactMapper struct{}

func (ContactMapper) ID(r ContactRow) string { return r.ID }

func (ContactMapper) ToRow(c *models.Contact) ContactRow {
	return ContactRow{
		ID:        c.ID(),
		FirstName: c.FirstName(),
		LastName:  c.LastName(),
		Phone:     c.Phone(),
		Address:   c.Address(),
	}
}

func (ContactMapper) ToDomain(r ContactRow, _ time.Time) (*models.Contact, error) {
	return models.NewContact(r.ID, r.FirstName, r.LastName, r.Phone, r.Address)
}

// TaskMapper translates tasks through NewTask on the read path.
type TaskMapper struct{}

func (TaskMapper) ID(r TaskRow) string { return r.ID }

func (TaskMapper) ToRow(t *models.Task) TaskRow {
	return TaskRow{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
	}
}

func (TaskMapper) ToDomain(r TaskRow, _ time.Time) (*models.Task, error) {
	return models.NewTask(r.ID, r.Name, r.Description)
}

// AppointmentMapper translates appointments. The read path validates against
// the request clock, so an appointment whose stored date has passed fails
// re-validation instead of circulating with a stale guarantee.
type AppointmentMapper struct{}

func (AppointmentMapper) ID(r AppointmentRow) string { return r.ID }

func (AppointmentMapper) ToRow(a *models.Appointment) AppointmentRow {
	return AppointmentRow{
		ID:          a.ID(),
		Date:        a.Date(),
		Description: a.Description(),
	}
}

func (AppointmentMapper) ToDomain(r AppointmentRow, now time.Time) (*models.Appointment, error) {
	return models.NewAppointment(r.ID, r.Date, r.Description, now)
}
