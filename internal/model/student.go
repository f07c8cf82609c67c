package model

import "time"

// Student is one tracked seat-holder of the reading room.  A student is
// identified by their seat label, which acts as the primary key and never
// changes once assigned.  The two history sequences are embedded in the
// record itself and travel with it on every save.
//
// Fields:
//  Seat           – seat label, primary key (students.seat).
//  Name           – display name.
//  Mobile         – contact number used for fee reminders.
//  Attendance     – whether the student is currently marked present.
//  FeePaid        – legacy summary flag, independent of the histories.
//  JoinDate       – date the student joined (nullable in the DB).
//  Fee            – monthly base fee, defaults to 500.
//  Shift          – free-text shift label, defaults to empty.
//  PaymentHistory – month-keyed payment entries, at most one per month.
//  FeeHistory     – month-keyed fee entries, separate namespace from
//                   PaymentHistory, same one-per-month rule.
type Student struct {
	Seat           string         `json:"seat"`
	Name           string         `json:"name"`
	Mobile         string         `json:"mobile"`
	Attendance     bool           `json:"attendance"`
	FeePaid        bool           `json:"feePaid"`
	JoinDate       *time.Time     `json:"joinDate,omitempty"`
	Fee            float64        `json:"fee"`
	Shift          string         `json:"shift"`
	PaymentHistory []PaymentEntry `json:"paymentHistory"`
	FeeHistory     []FeeEntry     `json:"feeHistory"`
}

// PaymentEntry records the payment state of one calendar month.  The Month
// key is the canonical "January 2006" label and is unique within a single
// student's PaymentHistory.  Amount and DatePaid are set only once a payment
// has actually been recorded; Date tracks the last paid/unpaid toggle.
type PaymentEntry struct {
	Month    string     `json:"month"`
	Paid     bool       `json:"paid"`
	Amount   *float64   `json:"amount,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	DatePaid *time.Time `json:"datePaid,omitempty"`
}

// FeeEntry is the fee-history counterpart of PaymentEntry.  It shares the
// month-key format and uniqueness rule but is tracked independently; the two
// sequences are never reconciled against each other.
type FeeEntry struct {
	Month string `json:"month"`
	Paid  bool   `json:"paid"`
}

// DefaultFee is applied when a create/update request omits the fee field.
const DefaultFee float64 = 500
