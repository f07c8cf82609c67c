package ledger

import (
	"errors"
	"time"

	"github.com/iliyamo/reading-room-manager/internal/model"
)

// ErrMonthRequired is returned when a mutation is attempted with an empty
// month key.  Handlers should translate this into an HTTP 400 response.
var ErrMonthRequired = errors.New("month is required")

// EnsureMonthEntry guarantees that s.PaymentHistory contains exactly one
// entry for the given month.  When the entry already exists the record is
// left untouched and false is returned, so callers can skip a pointless
// save.  When it is missing a new entry {month, paid: seed} is appended at
// the end of the sequence; existing entries are never reordered or removed.
//
// The listing flow seeds false (a freshly viewed month starts unpaid); the
// upsert flow seeds the incoming feePaid flag.  Matching is exact,
// case-sensitive string equality on the month key.
func EnsureMonthEntry(s *model.Student, month string, seed bool) bool {
	for i := range s.PaymentHistory {
		if s.PaymentHistory[i].Month == month {
			return false
		}
	}
	s.PaymentHistory = append(s.PaymentHistory, model.PaymentEntry{Month: month, Paid: seed})
	return true
}

// ToggleMonth flips the paid flag of the month's payment entry and stamps
// Date with now.  When no entry exists for the month a new one is appended
// with paid already true.  The paid default here intentionally differs from
// EnsureMonthEntry's unpaid seed: toggling an untracked month means the
// student just paid for it.
func ToggleMonth(s *model.Student, month string, now time.Time) {
	for i := range s.PaymentHistory {
		if s.PaymentHistory[i].Month == month {
			s.PaymentHistory[i].Paid = !s.PaymentHistory[i].Paid
			s.PaymentHistory[i].Date = &now
			return
		}
	}
	s.PaymentHistory = append(s.PaymentHistory, model.PaymentEntry{Month: month, Paid: true})
}

// RecordPayment marks the month's entry paid with the given amount and
// stamps DatePaid with now, appending the entry when absent.  Unlike
// ToggleMonth this never flips back to unpaid: repeated calls always end
// with paid=true, while Amount and DatePaid are overwritten each time
// (last write wins).
func RecordPayment(s *model.Student, month string, amount float64, now time.Time) {
	for i := range s.PaymentHistory {
		if s.PaymentHistory[i].Month == month {
			s.PaymentHistory[i].Paid = true
			s.PaymentHistory[i].Amount = &amount
			s.PaymentHistory[i].DatePaid = &now
			return
		}
	}
	s.PaymentHistory = append(s.PaymentHistory, model.PaymentEntry{
		Month:    month,
		Paid:     true,
		Amount:   &amount,
		DatePaid: &now,
	})
}

// SetFeeHistoryMonth sets (not toggles) the paid flag on the month's entry
// in the separate FeeHistory sequence, appending the entry when absent.
// An empty month key is a validation error and leaves the record unchanged.
func SetFeeHistoryMonth(s *model.Student, month string, paid bool) error {
	if month == "" {
		return ErrMonthRequired
	}
	for i := range s.FeeHistory {
		if s.FeeHistory[i].Month == month {
			s.FeeHistory[i].Paid = paid
			return nil
		}
	}
	s.FeeHistory = append(s.FeeHistory, model.FeeEntry{Month: month, Paid: paid})
	return nil
}

// ToggleAttendance inverts the attendance flag.  No history is kept for
// attendance changes.
func ToggleAttendance(s *model.Student) {
	s.Attendance = !s.Attendance
}
