// Package handler wires the record services to their HTTP endpoints. Handlers
// stay thin: decode, delegate, render. All business rules live in the domain
// and service layers.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"daybook/internal/records/models"
	"daybook/internal/records/store"
	"daybook/pkg/platform/httputil"
	"daybook/pkg/requestcontext"
)

// ContactService defines the contact operations the handler depends on.
type ContactService interface {
	Add(ctx context.Context, id, firstName, lastName, phone, address string) (*models.Contact, error)
	Get(ctx context.Context, id string) (store.Versioned[*models.Contact], error)
	List(ctx context.Context) ([]*models.Contact, error)
	Update(ctx context.Context, id, firstName, lastName, phone, address string) (store.Versioned[*models.Contact], error)
	Delete(ctx context.Context, id string) error
}

// TaskService defines the task operations the handler depends on.
type TaskService interface {
	Add(ctx context.Context, id, name, description string) (*models.Task, error)
	Get(ctx context.Context, id string) (store.Versioned[*models.Task], error)
	List(ctx context.Context) ([]*models.Task, error)
	Update(ctx context.Context, id, name, description string) (store.Versioned[*models.Task], error)
	Delete(ctx context.Context, id string) error
}

// AppointmentService defines the appointment operations the handler depends on.
type AppointmentService interface {
	Add(ctx context.Context, id string, date time.Time, description string) (*models.Appointment, error)
	Get(ctx context.Context, id string) (store.Versioned[*models.Appointment], error)
	List(ctx context.Context) ([]*models.Appointment, error)
	Update(ctx context.Context, id string, date time.Time, description string) (store.Versioned[*models.Appointment], error)
	Delete(ctx context.Context, id string) error
}

// Handler exposes the record endpoints.
type Handler struct {
	contacts     ContactService
	tasks        TaskService
	appointments AppointmentService
	logger       *slog.Logger
}

// New constructs a Handler with its dependencies.
func New(contacts ContactService, tasks TaskService, appointments AppointmentService, logger *slog.Logger) *Handler {
	return &Handler{
		contacts:     contacts,
		tasks:        tasks,
		appointments: appointments,
		logger:       logger,
	}
}

// Register mounts the record endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", h.handleCreateContact)
			r.Get("/", h.handleListContacts)
			r.Get("/{id}", h.handleGetContact)
			r.Put("/{id}", h.handleUpdateContact)
			r.Delete("/{id}", h.handleDeleteContact)
		})
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", h.handleCreateTask)
			r.Get("/", h.handleListTasks)
			r.Get("/{id}", h.handleGetTask)
			r.Put("/{id}", h.handleUpdateTask)
			r.Delete("/{id}", h.handleDeleteTask)
		})
		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", h.handleCreateAppointment)
			r.Get("/", h.handleListAppointments)
			r.Get("/{id}", h.handleGetAppointment)
			r.Put("/{id}", h.handleUpdateAppointment)
			r.Delete("/{id}", h.handleDeleteAppointment)
		})
	})
}

func (h *Handler) logFailure(ctx context.Context, what string, err error) {
	if h.logger == nil {
		return
	}
	h.logger.WarnContext(ctx, what,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}

func (h *Handler) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateContactRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	contact, err := h.contacts.Add(ctx, req.ID, req.FirstName, req.LastName, req.Phone, req.Address)
	if err != nil {
		h.logFailure(ctx, "create contact failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated,
		fromVersionedContact(store.Versioned[*models.Contact]{Entity: contact}))
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List(r.Context())
	if err != nil {
		h.logFailure(r.Context(), "list contacts failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromContactList(contacts))
}

func (h *Handler) handleGetContact(w http.ResponseWriter, r *http.Request) {
	loaded, err := h.contacts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromVersionedContact(loaded))
}

func (h *Handler) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpdateContactRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	updated, err := h.contacts.Update(ctx, chi.URLParam(r, "id"), req.FirstName, req.LastName, req.Phone, req.Address)
	if err != nil {
		h.logFailure(ctx, "update contact failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromVersionedContact(updated))
}

func (h *Handler) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.contacts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateTaskRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	task, err := h.tasks.Add(ctx, req.ID, req.Name, req.Description)
	if err != nil {
		h.logFailure(ctx, "create task failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated,
		fromVersionedTask(store.Versioned[*models.Task]{Entity: task}))
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		h.logFailure(r.Context(), "list tasks failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromTaskList(tasks))
}

func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	loaded, err := h.tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromVersionedTask(loaded))
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpdateTaskRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	updated, err := h.tasks.Update(ctx, chi.URLParam(r, "id"), req.Name, req.Description)
	if err != nil {
		h.logFailure(ctx, "update task failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromVersionedTask(updated))
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateAppointmentRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	appointment, err := h.appointments.Add(ctx, req.ID, req.Date, req.Description)
	if err != nil {
		h.logFailure(ctx, "create appointment failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated,
		fromVersionedAppointment(store.Versioned[*models.Appointment]{Entity: appointment}))
}

func (h *Handler) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointments.List(r.Context())
	if err != nil {
		h.logFailure(r.Context(), "list appointments failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromAppointmentList(appointments))
}

func (h *Handler) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	loaded, err := h.appointments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromVersionedAppointment(loaded))
}

func (h *Handler) handleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpdateAppointmentRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	updated, err := h.appointments.Update(ctx, chi.URLParam(r, "id"), req.Date, req.Description)
	if err != nil {
		h.logFailure(ctx, "update appointment failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromVersionedAppointment(updated))
}

func (h *Handler) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.appointments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
