package handler

import (
	"time"

	"daybook/internal/records/models"
	"daybook/internal/records/store"
)

// ContactResponse is the wire form of a contact. Version is present on
// single-record reads and writes; list items omit it because the list is not
// a basis for a conditional update.
type ContactResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Version   *int64 `json:"version,omitempty"`
}

func fromContact(c *models.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID(),
		FirstName: c.FirstName(),
		LastName:  c.LastName(),
		Phone:     c.Phone(),
		Address:   c.Address(),
	}
}

func fromVersionedContact(v store.Versioned[*models.Contact]) ContactResponse {
	resp := fromContact(v.Entity)
	resp.Version = &v.Version
	return resp
}

func fromContactList(contacts []*models.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, fromContact(c))
	}
	return out
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     *int64 `json:"version,omitempty"`
}

func fromTask(t *models.Task) TaskResponse {
	return TaskResponse{ID: t.ID(), Name: t.Name(), Description: t.Description()}
}

func fromVersionedTask(v store.Versioned[*models.Task]) TaskResponse {
	resp := fromTask(v.Entity)
	resp.Version = &v.Version
	return resp
}

func fromTaskList(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, fromTask(t))
	}
	return out
}

// AppointmentResponse is the wire form of an appointment.
type AppointmentResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Version     *int64    `json:"version,omitempty"`
}

func fromAppointment(a *models.Appointment) AppointmentResponse {
	return AppointmentResponse{ID: a.ID(), Date: a.Date(), Description: a.Description()}
}

func fromVersionedAppointment(v store.Versioned[*models.Appointment]) AppointmentResponse {
	resp := fromAppointment(v.Entity)
	resp.Version = &v.Version
	return resp
}

func fromAppointmentList(appointments []*models.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, fromAppointment(a))
	}
	return out
}
