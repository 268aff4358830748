package models

import (
	"strings"

	"daybook/pkg/validate"
)

// Shared field bounds. Identifiers are capped at 10 characters across every
// record kind so they fit the same key column.
const (
	minFieldLength = 1
	maxIDLength    = 10
)

const (
	maxContactNameLength = 10
	maxAddressLength     = 30
	phoneDigits          = 10
)

// Contact is a validated address-book entry.
//
// Invariants:
//   - contactId is 1-10 characters after trimming and immutable after construction
//   - firstName and lastName are 1-10 characters after trimming
//   - phone is exactly 10 ASCII digits
//   - address is 1-30 characters after trimming
//
// Fields are unexported so the only way to produce or mutate a Contact is
// through the validating constructor and setters; a Contact that exists is a
// Contact that passed every constraint.
type Contact struct {
	id        string
	firstName string
	lastName  string
	phone     string
	address   string
}

// NewContact validates every field before assigning any of them, so a failed
// construction never leaves a partially built contact observable.
func NewContact(id, firstName, lastName, phone, address string) (*Contact, error) {
	if err := validate.Length(id, "contactId", minFieldLength, maxIDLength); err != nil {
		return nil, err
	}
	c := &Contact{id: strings.TrimSpace(id)}
	if err := c.Update(firstName, lastName, phone, address); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Contact) ID() string        { return c.id }
func (c *Contact) FirstName() string { return c.firstName }
func (c *Contact) LastName() string  { return c.lastName }
func (c *Contact) Phone() string     { return c.phone }
func (c *Contact) Address() string   { return c.address }

// SetFirstName validates then assigns the trimmed first name.
func (c *Contact) SetFirstName(firstName string) error {
	if err := validate.Length(firstName, "firstName", minFieldLength, maxContactNameLength); err != nil {
		return err
	}
	c.firstName = strings.TrimSpace(firstName)
	return nil
}

// SetLastName validates then assigns the trimmed last name.
func (c *Contact) SetLastName(lastName string) error {
	if err := validate.Length(lastName, "lastName", minFieldLength, maxContactNameLength); err != nil {
		return err
	}
	c.lastName = strings.TrimSpace(lastName)
	return nil
}

// SetPhone validates then assigns the phone number. Phone numbers are stored
// exactly as given; the digits rule leaves no whitespace to trim.
func (c *Contact) SetPhone(phone string) error {
	if err := validate.Digits(phone, "phone", phoneDigits); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

// SetAddress validates then assigns the trimmed address.
func (c *Contact) SetAddress(address string) error {
	if err := validate.Length(address, "address", minFieldLength, maxAddressLength); err != nil {
		return err
	}
	c.address = strings.TrimSpace(address)
	return nil
}

// Update replaces all mutable fields atomically: every new value is validated
// before any field is assigned, so callers never observe a partially updated
// contact.
func (c *Contact) Update(firstName, lastName, phone, address string) error {
	if err := validate.Length(firstName, "firstName", minFieldLength, maxContactNameLength); err != nil {
		return err
	}
	if err := validate.Length(lastName, "lastName", minFieldLength, maxContactNameLength); err != nil {
		return err
	}
	if err := validate.Digits(phone, "phone", phoneDigits); err != nil {
		return err
	}
	if err := validate.Length(address, "address", minFieldLength, maxAddressLength); err != nil {
		return err
	}

	c.firstName = strings.TrimSpace(firstName)
	c.lastName = strings.TrimSpace(lastName)
	c.phone = phone
	c.address = strings.TrimSpace(address)
	return nil
}

// Copy reconstructs an equivalent contact through the public constructor
// rather than a field-by-field clone, so copies can never drift from the
// validation rules even if the internal representation changes.
func (c *Contact) Copy() (*Contact, error) {
	return NewContact(c.id, c.firstName, c.lastName, c.phone, c.address)
}
