package handler // handler defines http handlers

import (
	"context"
	"time"

	"github.com/iliyamo/reading-room-manager/internal/model"
	"github.com/iliyamo/reading-room-manager/internal/queue"
)

// StudentStore is the persistence dependency of the student handlers.  It is
// satisfied by *repository.StudentRepo and by fakes in tests.
type StudentStore interface {
	// FindAll returns every student record.
	FindAll(ctx context.Context) ([]*model.Student, error)
	// FindBySeat returns the record for a seat or repository.ErrStudentNotFound.
	FindBySeat(ctx context.Context, seat string) (*model.Student, error)
	// Save writes the full record (insert or replace, last write wins).
	Save(ctx context.Context, s *model.Student) error
	// DeleteBySeat removes the record if present; unknown seats are not an error.
	DeleteBySeat(ctx context.Context, seat string) error
}

// AlertSender hands a fee reminder to the outbound delivery collaborator.
// The handler reports its success or failure verbatim and never retries.
type AlertSender interface {
	SendFeeAlert(ctx context.Context, event queue.FeeAlertEvent) error
}

// StudentHandler bundles the dependencies of the /students endpoints: the
// record store, the alert collaborator and a clock.  The clock is injected
// so tests can pin the current month and payment timestamps.
type StudentHandler struct {
	Students StudentStore
	Alerts   AlertSender
	Now      func() time.Time
}

// NewStudentHandler constructs a StudentHandler and panics if a required
// dependency is nil.  A nil clock defaults to time.Now.
func NewStudentHandler(students StudentStore, alerts AlertSender, now func() time.Time) *StudentHandler {
	if students == nil || alerts == nil {
		panic("nil dependency passed to NewStudentHandler")
	}
	if now == nil {
		now = time.Now
	}
	return &StudentHandler{Students: students, Alerts: alerts, Now: now}
}
