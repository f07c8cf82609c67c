// Package ledger implements the month-keyed history engine for student
// records: deriving canonical month keys, reconciling the payment history so
// every viewed month has exactly one entry, and mutating individual month
// entries (toggles, recorded payments, fee-history updates).  All functions
// operate on an in-memory record; persistence is the caller's concern.
package ledger

import "time"

// MonthKey returns the canonical label for the calendar month containing t,
// e.g. "November 2025".  The format is fixed (English month names, 4-digit
// year) so keys from different calls on the same logical month are equal by
// plain string comparison.  Pure function, no error conditions.
func MonthKey(t time.Time) string {
	return t.Format("January 2006")
}
