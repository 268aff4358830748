package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"daybook/internal/records/models"
	"daybook/internal/records/store"
	"daybook/pkg/platform/sentinel"
	"daybook/pkg/requestcontext"
)

// Appointments persists appointments in the appointments table.
type Appointments struct {
	db     *sql.DB
	mapper store.AppointmentMapper
}

// NewAppointments constructs a PostgreSQL-backed appointment store.
func NewAppointments(db *sql.DB) *Appointments {
	return &Appointments{db: db}
}

func (s *Appointments) Create(ctx context.Context, appointment *models.Appointment) error {
	row := s.mapper.ToRow(appointment)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO appointments (appointment_id, appointment_date, description, version)
		 VALUES ($1, $2, $3, 0)`,
		row.ID, row.Date, row.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyExists
		}
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (s *Appointments) Load(ctx context.Context, id string) (store.Versioned[*models.Appointment], error) {
	var (
		row     store.AppointmentRow
		version int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT appointment_id, appointment_date, description, version
		 FROM appointments WHERE appointment_id = $1`, id,
	).Scan(&row.ID, &row.Date, &row.Description, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Versioned[*models.Appointment]{}, sentinel.ErrNotFound
		}
		return store.Versioned[*models.Appointment]{}, fmt.Errorf("load appointment: %w", err)
	}

	appointment, err := store.Translate(s.mapper, row, requestcontext.Now(ctx))
	if err != nil {
		return store.Versioned[*models.Appointment]{}, err
	}
	return store.Versioned[*models.Appointment]{Entity: appointment, Version: version}, nil
}

func (s *Appointments) Save(ctx context.Context, appointment *models.Appointment, expectedVersion int64) (int64, error) {
	row := s.mapper.ToRow(appointment)
	var newVersion int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE appointments
		 SET appointment_date = $2, description = $3, version = version + 1
		 WHERE appointment_id = $1 AND version = $4
		 RETURNING version`,
		row.ID, row.Date, row.Description, expectedVersion,
	).Scan(&newVersion)
	if err != nil {
		err = saveOutcome(ctx, s.db, `SELECT EXISTS (SELECT 1 FROM appointments WHERE appointment_id = $1)`, row.ID, err)
		if errors.Is(err, sentinel.ErrVersionConflict) || errors.Is(err, sentinel.ErrNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("save appointment: %w", err)
	}
	return newVersion, nil
}

func (s *Appointments) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM appointments WHERE appointment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Appointments) List(ctx context.Context) ([]*models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT appointment_id, appointment_date, description
		 FROM appointments ORDER BY appointment_id`)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	now := requestcontext.Now(ctx)
	var appointments []*models.Appointment
	for rows.Next() {
		var row store.AppointmentRow
		if err := rows.Scan(&row.ID, &row.Date, &row.Description); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointment, err := store.Translate(s.mapper, row, now)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}
