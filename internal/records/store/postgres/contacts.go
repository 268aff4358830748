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

// Contacts persists contacts in the contacts table.
type Contacts struct {
	db     *sql.DB
	mapper store.ContactMapper
}

// NewContacts constructs a PostgreSQL-backed contact store.
func NewContacts(db *sql.DB) *Contacts {
	return &Contacts{db: db}
}

func (s *Contacts) Create(ctx context.Context, contact *models.Contact) error {
	row := s.mapper.ToRow(contact)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (contact_id, first_name, last_name, phone, address, version)
		 VALUES ($1, $2, $3, $4, $5, 0)`,
		row.ID, row.FirstName, row.LastName, row.Phone, row.Address,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyExists
		}
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (s *Contacts) Load(ctx context.Context, id string) (store.Versioned[*models.Contact], error) {
	var (
		row     store.ContactRow
		version int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT contact_id, first_name, last_name, phone, address, version
		 FROM contacts WHERE contact_id = $1`, id,
	).Scan(&row.ID, &row.FirstName, &row.LastName, &row.Phone, &row.Address, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Versioned[*models.Contact]{}, sentinel.ErrNotFound
		}
		return store.Versioned[*models.Contact]{}, fmt.Errorf("load contact: %w", err)
	}

	contact, err := store.Translate(s.mapper, row, requestcontext.Now(ctx))
	if err != nil {
		return store.Versioned[*models.Contact]{}, err
	}
	return store.Versioned[*models.Contact]{Entity: contact, Version: version}, nil
}

func (s *Contacts) Save(ctx context.Context, contact *models.Contact, expectedVersion int64) (int64, error) {
	row := s.mapper.ToRow(contact)
	var newVersion int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE contacts
		 SET first_name = $2, last_name = $3, phone = $4, address = $5, version = version + 1
		 WHERE contact_id = $1 AND version = $6
		 RETURNING version`,
		row.ID, row.FirstName, row.LastName, row.Phone, row.Address, expectedVersion,
	).Scan(&newVersion)
	if err != nil {
		err = saveOutcome(ctx, s.db, `SELECT EXISTS (SELECT 1 FROM contacts WHERE contact_id = $1)`, row.ID, err)
		if errors.Is(err, sentinel.ErrVersionConflict) || errors.Is(err, sentinel.ErrNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("save contact: %w", err)
	}
	return newVersion, nil
}

func (s *Contacts) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE contact_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Contacts) List(ctx context.Context) ([]*models.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT contact_id, first_name, last_name, phone, address
		 FROM contacts ORDER BY contact_id`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	now := requestcontext.Now(ctx)
	var contacts []*models.Contact
	for rows.Next() {
		var row store.ContactRow
		if err := rows.Scan(&row.ID, &row.FirstName, &row.LastName, &row.Phone, &row.Address); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contact, err := store.Translate(s.mapper, row, now)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}
