package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"daybook/internal/platform/middleware"
	"daybook/internal/records/service"
	"daybook/internal/records/store"
)

func newRecordsRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	h := New(
		service.NewContacts(store.NewContactMemory(), service.WithLogger(logger)),
		service.NewTasks(store.NewTaskMemory(), service.WithLogger(logger)),
		service.NewAppointments(store.NewAppointmentMemory(), service.WithLogger(logger)),
		logger,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ContentTypeJSON)
	h.Register(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestContactLifecycleViaHandlers(t *testing.T) {
	router := newRecordsRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/contacts", map[string]string{
		"id":         "C-1",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"phone":      "5551234567",
		"address":    "12 Crunch St",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating contact, got %d: %s", rec.Code, rec.Body.String())
	}

	var created ContactResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.Version == nil || *created.Version != 0 {
		t.Fatalf("expected version 0 on creation, got %v", created.Version)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/contacts/C-1", map[string]string{
		"first_name": "Ada",
		"last_name":  "King",
		"phone":      "5551234567",
		"address":    "1 Ockham Park",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating contact, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated ContactResponse
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if updated.Version == nil || *updated.Version != 1 {
		t.Fatalf("expected version 1 after update, got %v", updated.Version)
	}
	if updated.LastName != "King" {
		t.Fatalf("expected updated last name, got %q", updated.LastName)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/contacts/C-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 getting contact, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/contacts/C-1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 deleting contact, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/contacts/C-1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestContactValidationErrorsSurfaceAs400(t *testing.T) {
	router := newRecordsRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/contacts", map[string]string{
		"id":         "C-1",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"phone":      "555",
		"address":    "12 Crunch St",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad phone, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if body["error"] != "validation_error" {
		t.Fatalf("expected validation_error code, got %q", body["error"])
	}
	if body["error_description"] != "phone must be exactly 10 numeric digits" {
		t.Fatalf("unexpected description: %q", body["error_description"])
	}
}

func TestDuplicateContactConflicts(t *testing.T) {
	router := newRecordsRouter(t)

	payload := map[string]string{
		"id":         "C-1",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"phone":      "5551234567",
		"address":    "12 Crunch St",
	}
	if rec := doJSON(t, router, http.MethodPost, "/api/v1/contacts", payload); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/api/v1/contacts", payload); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate id, got %d", rec.Code)
	}
}

func TestTaskListOrderedByID(t *testing.T) {
	router := newRecordsRouter(t)

	for _, task := range []map[string]string{
		{"id": "T-2", "name": "errands", "description": "post office"},
		{"id": "T-1", "name": "groceries", "description": "milk and eggs"},
	} {
		if rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks", task); rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing tasks, got %d", rec.Code)
	}

	var tasks []TaskResponse
	if err := json.NewDecoder(rec.Body).Decode(&tasks); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "T-1" || tasks[1].ID != "T-2" {
		t.Fatalf("expected tasks ordered by id, got %+v", tasks)
	}
	if tasks[0].Version != nil {
		t.Fatalf("expected list items to omit version, got %v", tasks[0].Version)
	}
}

func TestAppointmentPastDateRejected(t *testing.T) {
	router := newRecordsRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/appointments", map[string]any{
		"id":          "A-1",
		"date":        time.Now().Add(-time.Hour).Format(time.RFC3339),
		"description": "dentist",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for past date, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if body["error_description"] != "appointmentDate must not be in the past" {
		t.Fatalf("unexpected description: %q", body["error_description"])
	}
}

func TestAppointmentCreateAndReschedule(t *testing.T) {
	router := newRecordsRouter(t)

	date := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/appointments", map[string]any{
		"id":          "A-1",
		"date":        date.Format(time.RFC3339),
		"description": "dentist",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating appointment, got %d: %s", rec.Code, rec.Body.String())
	}

	moved := date.Add(24 * time.Hour)
	rec = doJSON(t, router, http.MethodPut, "/api/v1/appointments/A-1", map[string]any{
		"date":        moved.Format(time.RFC3339),
		"description": "dentist, rescheduled",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 rescheduling, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated AppointmentResponse
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if !updated.Date.Equal(moved) {
		t.Fatalf("expected date %v, got %v", moved, updated.Date)
	}
	if updated.Version == nil || *updated.Version != 1 {
		t.Fatalf("expected version 1, got %v", updated.Version)
	}
}

func TestMissingContentTypeRejected(t *testing.T) {
	router := newRecordsRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(`{"id":"T-1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without content type, got %d", rec.Code)
	}
}

func TestMalformedBodyRejected(t *testing.T) {
	router := newRecordsRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(`{"id":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}
