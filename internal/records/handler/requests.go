package handler

import (
	"time"

	dErrors "daybook/pkg/domain-errors"
)

// Field-level rules live in the domain constructors; request validation only
// rejects shapes the domain cannot express, so every constraint has a single
// authoritative message.

// CreateContactRequest is the body for POST /api/v1/contacts.
type CreateContactRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (r *CreateContactRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

// UpdateContactRequest is the body for PUT /api/v1/contacts/{id}. Every
// mutable field must be supplied; the update replaces them as one unit.
type UpdateContactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (r *UpdateContactRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

// CreateTaskRequest is the body for POST /api/v1/tasks.
type CreateTaskRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *CreateTaskRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

// UpdateTaskRequest is the body for PUT /api/v1/tasks/{id}.
type UpdateTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *UpdateTaskRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

// CreateAppointmentRequest is the body for POST /api/v1/appointments. The
// date is RFC 3339.
type CreateAppointmentRequest struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

func (r *CreateAppointmentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

// UpdateAppointmentRequest is the body for PUT /api/v1/appointments/{id}.
type UpdateAppointmentRequest struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

func (r *UpdateAppointmentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}
