package service

import (
	"context"
	"errors"
	"time"

	"daybook/internal/records/models"
	"daybook/internal/records/store"
	dErrors "daybook/pkg/domain-errors"
	"daybook/pkg/platform/sentinel"
)

// Contacts manages the contact record lifecycle.
type Contacts struct {
	base
	store store.Store[*models.Contact]
}

// NewContacts constructs a Contacts service.
func NewContacts(s store.Store[*models.Contact], opts ...Option) *Contacts {
	c := &Contacts{store: s}
	for _, opt := range opts {
		opt(&c.base)
	}
	return c
}

// Add validates and persists a new contact. The identifier must be free.
func (c *Contacts) Add(ctx context.Context, id, firstName, lastName, phone, address string) (*models.Contact, error) {
	contact, err := models.NewContact(id, firstName, lastName, phone, address)
	if err != nil {
		return nil, err
	}

	if err := c.store.Create(ctx, contact); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "contact %q already exists", contact.ID())
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create contact")
	}

	c.logEvent(ctx, "contact created", kindContact, contact.ID())
	c.incrementCreated(kindContact)
	return contact, nil
}

// Get returns a contact together with its current version.
func (c *Contacts) Get(ctx context.Context, id string) (store.Versioned[*models.Contact], error) {
	loaded, err := c.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return store.Versioned[*models.Contact]{}, dErrors.New(dErrors.CodeNotFound, "contact not found")
		}
		if dErrors.HasCode(err, dErrors.CodeDataIntegrity) {
			return store.Versioned[*models.Contact]{}, err
		}
		return store.Versioned[*models.Contact]{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contact")
	}
	return loaded, nil
}

// List returns all contacts ordered by identifier.
func (c *Contacts) List(ctx context.Context) ([]*models.Contact, error) {
	contacts, err := c.store.List(ctx)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeDataIntegrity) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contacts")
	}
	return contacts, nil
}

// Update replaces every mutable field of a contact in one atomic step. The
// commit succeeds only if no other writer changed the record since this call
// loaded it; a concurrent change is reported as a conflict, never merged.
func (c *Contacts) Update(ctx context.Context, id, firstName, lastName, phone, address string) (store.Versioned[*models.Contact], error) {
	start := time.Now()

	loaded, err := c.Get(ctx, id)
	if err != nil {
		return store.Versioned[*models.Contact]{}, err
	}

	contact := loaded.Entity
	if err := contact.Update(firstName, lastName, phone, address); err != nil {
		return store.Versioned[*models.Contact]{}, err
	}

	version, err := c.store.Save(ctx, contact, loaded.Version)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrVersionConflict):
			c.incrementVersionConflict(kindContact)
			return store.Versioned[*models.Contact]{}, dErrors.New(dErrors.CodeConflict,
				"contact was modified concurrently, reload and retry")
		case errors.Is(err, sentinel.ErrNotFound):
			return store.Versioned[*models.Contact]{}, dErrors.New(dErrors.CodeNotFound, "contact not found")
		default:
			return store.Versioned[*models.Contact]{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save contact")
		}
	}

	c.logEvent(ctx, "contact updated", kindContact, id, "version", version)
	c.incrementUpdated(kindContact)
	c.observeUpdate(kindContact, start)
	return store.Versioned[*models.Contact]{Entity: contact, Version: version}, nil
}

// Delete removes a contact.
func (c *Contacts) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "contact not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete contact")
	}
	c.logEvent(ctx, "contact deleted", kindContact, id)
	c.incrementDeleted(kindContact)
	return nil
}
