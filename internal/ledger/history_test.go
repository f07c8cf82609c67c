package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/reading-room-manager/internal/model"
)

func TestMonthKey(t *testing.T) {
	nov := time.Date(2025, time.November, 14, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "November 2025", MonthKey(nov))

	// Any instant within the same month yields the same key.
	assert.Equal(t, MonthKey(nov), MonthKey(time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "January 2026", MonthKey(time.Date(2026, time.January, 3, 12, 0, 0, 0, time.UTC)))
}

func TestEnsureMonthEntry(t *testing.T) {
	s := &model.Student{Seat: "S1"}

	appended := EnsureMonthEntry(s, "November 2025", false)
	require.True(t, appended)
	require.Len(t, s.PaymentHistory, 1)
	assert.Equal(t, "November 2025", s.PaymentHistory[0].Month)
	assert.False(t, s.PaymentHistory[0].Paid)

	// Second call with the same key: no duplicate, no mutation.
	appended = EnsureMonthEntry(s, "November 2025", false)
	assert.False(t, appended)
	assert.Len(t, s.PaymentHistory, 1)
}

func TestEnsureMonthEntrySeedsPaid(t *testing.T) {
	s := &model.Student{Seat: "S1"}

	require.True(t, EnsureMonthEntry(s, "December 2025", true))
	assert.True(t, s.PaymentHistory[0].Paid)

	// Seed applies only on creation; an existing entry is left untouched
	// even when the caller passes a different seed.
	assert.False(t, EnsureMonthEntry(s, "December 2025", false))
	assert.True(t, s.PaymentHistory[0].Paid)
}

func TestEnsureMonthEntryAppendsLast(t *testing.T) {
	s := &model.Student{
		Seat: "S1",
		PaymentHistory: []model.PaymentEntry{
			{Month: "September 2025", Paid: true},
			{Month: "October 2025", Paid: false},
		},
	}

	require.True(t, EnsureMonthEntry(s, "November 2025", false))
	require.Len(t, s.PaymentHistory, 3)
	assert.Equal(t, "September 2025", s.PaymentHistory[0].Month)
	assert.True(t, s.PaymentHistory[0].Paid)
	assert.Equal(t, "October 2025", s.PaymentHistory[1].Month)
	assert.Equal(t, "November 2025", s.PaymentHistory[2].Month)
}

func TestToggleMonthFlips(t *testing.T) {
	now := time.Date(2025, time.November, 20, 10, 0, 0, 0, time.UTC)
	s := &model.Student{
		Seat:           "S1",
		PaymentHistory: []model.PaymentEntry{{Month: "November 2025", Paid: false}},
	}

	ToggleMonth(s, "November 2025", now)
	require.Len(t, s.PaymentHistory, 1)
	assert.True(t, s.PaymentHistory[0].Paid)
	require.NotNil(t, s.PaymentHistory[0].Date)
	assert.Equal(t, now, *s.PaymentHistory[0].Date)

	// Toggling twice restores the original paid state.
	later := now.Add(time.Hour)
	ToggleMonth(s, "November 2025", later)
	assert.False(t, s.PaymentHistory[0].Paid)
	assert.Equal(t, later, *s.PaymentHistory[0].Date)
}

func TestToggleMonthMissingDefaultsPaid(t *testing.T) {
	s := &model.Student{Seat: "S1"}

	ToggleMonth(s, "November 2025", time.Now())
	require.Len(t, s.PaymentHistory, 1)
	assert.True(t, s.PaymentHistory[0].Paid)
	// Appended entries carry no toggle timestamp until the first flip.
	assert.Nil(t, s.PaymentHistory[0].Date)
}

func TestRecordPaymentLastWriteWins(t *testing.T) {
	first := time.Date(2025, time.December, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)
	s := &model.Student{Seat: "S1"}

	RecordPayment(s, "December 2025", 500, first)
	require.Len(t, s.PaymentHistory, 1)
	entry := s.PaymentHistory[0]
	assert.True(t, entry.Paid)
	require.NotNil(t, entry.Amount)
	assert.Equal(t, float64(500), *entry.Amount)
	require.NotNil(t, entry.DatePaid)
	assert.Equal(t, first, *entry.DatePaid)

	// Repeated payment for the same month overwrites amount and timestamp
	// but never duplicates the entry or flips it back to unpaid.
	RecordPayment(s, "December 2025", 750, second)
	require.Len(t, s.PaymentHistory, 1)
	entry = s.PaymentHistory[0]
	assert.True(t, entry.Paid)
	assert.Equal(t, float64(750), *entry.Amount)
	assert.Equal(t, second, *entry.DatePaid)
}

func TestSetFeeHistoryMonth(t *testing.T) {
	s := &model.Student{Seat: "S1"}

	require.NoError(t, SetFeeHistoryMonth(s, "November 2025", true))
	require.Len(t, s.FeeHistory, 1)
	assert.True(t, s.FeeHistory[0].Paid)

	// Set, not toggle: the given value replaces the stored one.
	require.NoError(t, SetFeeHistoryMonth(s, "November 2025", false))
	require.Len(t, s.FeeHistory, 1)
	assert.False(t, s.FeeHistory[0].Paid)
}

func TestSetFeeHistoryMonthRequiresMonth(t *testing.T) {
	s := &model.Student{Seat: "S1", FeeHistory: []model.FeeEntry{{Month: "October 2025", Paid: true}}}

	err := SetFeeHistoryMonth(s, "", true)
	require.ErrorIs(t, err, ErrMonthRequired)
	// Record unchanged on validation failure.
	require.Len(t, s.FeeHistory, 1)
	assert.Equal(t, "October 2025", s.FeeHistory[0].Month)
}

func TestFeeHistoryIndependentOfPaymentHistory(t *testing.T) {
	s := &model.Student{Seat: "S1"}

	require.True(t, EnsureMonthEntry(s, "November 2025", false))
	require.NoError(t, SetFeeHistoryMonth(s, "November 2025", true))

	// Same month key lives in both sequences without interference.
	assert.Len(t, s.PaymentHistory, 1)
	assert.Len(t, s.FeeHistory, 1)
	assert.False(t, s.PaymentHistory[0].Paid)
	assert.True(t, s.FeeHistory[0].Paid)
}

func TestToggleAttendance(t *testing.T) {
	s := &model.Student{Seat: "S1"}

	ToggleAttendance(s)
	assert.True(t, s.Attendance)
	ToggleAttendance(s)
	assert.False(t, s.Attendance)
}

func TestMonthMatchingIsExact(t *testing.T) {
	s := &model.Student{
		Seat:           "S1",
		PaymentHistory: []model.PaymentEntry{{Month: "November 2025", Paid: true}},
	}

	// No case folding or trimming: a differently cased or padded key is a
	// distinct month as far as the engine is concerned.
	require.True(t, EnsureMonthEntry(s, "november 2025", false))
	require.True(t, EnsureMonthEntry(s, " November 2025", false))
	assert.Len(t, s.PaymentHistory, 3)
}
