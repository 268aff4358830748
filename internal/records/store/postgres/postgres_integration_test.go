//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"daybook/internal/records/models"
	"daybook/internal/records/store"
	"daybook/internal/records/store/postgres"
	dErrors "daybook/pkg/domain-errors"
	"daybook/pkg/platform/sentinel"
	"daybook/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg           *containers.PostgresContainer
	contacts     *postgres.Contacts
	tasks        *postgres.Tasks
	appointments *postgres.Appointments
	ctx          context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.contacts = postgres.NewContacts(s.pg.DB)
	s.tasks = postgres.NewTasks(s.pg.DB)
	s.appointments = postgres.NewAppointments(s.pg.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.pg.TruncateTables(s.ctx, "contacts", "tasks", "appointments")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newContact(id string) *models.Contact {
	c, err := models.NewContact(id, "Ann", "Lee", "5551234567", "1 Main St")
	s.Require().NoError(err)
	return c
}

func (s *PostgresStoreSuite) TestCreateLoadDelete() {
	s.Require().NoError(s.contacts.Create(s.ctx, s.newContact("C-1")))

	loaded, err := s.contacts.Load(s.ctx, "C-1")
	s.Require().NoError(err)
	s.Equal(int64(0), loaded.Version)
	s.Equal("Ann", loaded.Entity.FirstName())

	s.Require().ErrorIs(s.contacts.Create(s.ctx, s.newContact("C-1")), sentinel.ErrAlreadyExists)

	s.Require().NoError(s.contacts.Delete(s.ctx, "C-1"))
	s.Require().ErrorIs(s.contacts.Delete(s.ctx, "C-1"), sentinel.ErrNotFound)

	_, err = s.contacts.Load(s.ctx, "C-1")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestConditionalSave() {
	s.Require().NoError(s.contacts.Create(s.ctx, s.newContact("C-1")))

	loaded, err := s.contacts.Load(s.ctx, "C-1")
	s.Require().NoError(err)

	s.Require().NoError(loaded.Entity.SetFirstName("Bea"))
	newVersion, err := s.contacts.Save(s.ctx, loaded.Entity, loaded.Version)
	s.Require().NoError(err)
	s.Equal(int64(1), newVersion)

	// A writer still holding version 0 must lose without writing.
	stale := s.newContact("C-1")
	_, err = s.contacts.Save(s.ctx, stale, 0)
	s.Require().ErrorIs(err, sentinel.ErrVersionConflict)

	reloaded, err := s.contacts.Load(s.ctx, "C-1")
	s.Require().NoError(err)
	s.Equal(int64(1), reloaded.Version)
	s.Equal("Bea", reloaded.Entity.FirstName())

	// Saving a record that no longer exists is NotFound, not a conflict.
	s.Require().NoError(s.contacts.Delete(s.ctx, "C-1"))
	_, err = s.contacts.Save(s.ctx, stale, 1)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentWriters races writers holding the same loaded version against
// the database-side compare-and-swap; exactly one may commit.
func (s *PostgresStoreSuite) TestConcurrentWriters() {
	task, err := models.NewTask("T-1", "Original", "Original description")
	s.Require().NoError(err)
	s.Require().NoError(s.tasks.Create(s.ctx, task))

	loaded, err := s.tasks.Load(s.ctx, "T-1")
	s.Require().NoError(err)

	const writers = 8
	var wins, conflicts atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t, err := models.NewTask("T-1", "X", "rewritten")
			if err != nil {
				return
			}
			if _, err := s.tasks.Save(s.ctx, t, loaded.Version); err == nil {
				wins.Add(1)
			} else if errors.Is(err, sentinel.ErrVersionConflict) {
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int64(1), wins.Load())
	s.Equal(int64(writers-1), conflicts.Load())

	reloaded, err := s.tasks.Load(s.ctx, "T-1")
	s.Require().NoError(err)
	s.Equal(loaded.Version+1, reloaded.Version)
	s.Equal("X", reloaded.Entity.Name())
}

// TestCorruptedRowFailsReadPath writes an invalid row behind the store's back
// and verifies re-validation refuses it.
func (s *PostgresStoreSuite) TestCorruptedRowFailsReadPath() {
	_, err := s.pg.DB.ExecContext(s.ctx,
		`INSERT INTO tasks (task_id, name, description, version) VALUES ('T-BAD', '', 'desc', 0)`)
	s.Require().NoError(err)

	_, err = s.tasks.Load(s.ctx, "T-BAD")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeDataIntegrity))
}

func (s *PostgresStoreSuite) TestAppointmentRoundTrip() {
	now := time.Now()
	a, err := models.NewAppointment("A-1", now.Add(24*time.Hour), "Checkup", now)
	s.Require().NoError(err)
	s.Require().NoError(s.appointments.Create(s.ctx, a))

	loaded, err := s.appointments.Load(s.ctx, "A-1")
	s.Require().NoError(err)
	s.Equal("Checkup", loaded.Entity.Description())
	// TIMESTAMPTZ keeps the instant; allow driver rounding at microseconds.
	s.WithinDuration(a.Date(), loaded.Entity.Date(), time.Millisecond)

	all, err := s.appointments.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

var _ store.Store[*models.Contact] = (*postgres.Contacts)(nil)
