// This file defines the StudentRepo, which persists student records in the
// students table.  Each student is a single row keyed by seat; the payment
// and fee histories are embedded in the row as JSON document columns rather
// than normalized into separate tables, so a save always writes the whole
// record.  There is no version column: concurrent writers against the same
// seat race at last-write-wins granularity.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/reading-room-manager/internal/model"
)

// StudentRepo encapsulates all database queries related to students.  It
// depends on a sql.DB connection which should be configured elsewhere.
type StudentRepo struct {
	db *sql.DB
}

// NewStudentRepo constructs a StudentRepo with the provided DB handle.  This
// allows dependency injection of the database in tests and at startup.
func NewStudentRepo(db *sql.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

const studentColumns = "seat, name, mobile, attendance, fee_paid, join_date, fee, shift, payment_history, fee_history"

// FindBySeat fetches a student by seat label.  It returns
// ErrStudentNotFound if no row exists for the seat.
func (r *StudentRepo) FindBySeat(ctx context.Context, seat string) (*model.Student, error) {
	const q = "SELECT " + studentColumns + " FROM students WHERE seat = ?"
	s, err := scanStudent(r.db.QueryRowContext(ctx, q, seat))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s, nil
}

// FindAll returns every student ordered by seat label.
func (r *StudentRepo) FindAll(ctx context.Context) ([]*model.Student, error) {
	const q = "SELECT " + studentColumns + " FROM students ORDER BY seat"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save writes the full record, inserting a new row for an unknown seat and
// replacing every mutable column for a known one.  Both history sequences
// are serialized into their JSON columns on each save.
func (r *StudentRepo) Save(ctx context.Context, s *model.Student) error {
	payments, err := json.Marshal(historyOrEmpty(s.PaymentHistory))
	if err != nil {
		return fmt.Errorf("marshal payment history: %w", err)
	}
	fees, err := json.Marshal(feesOrEmpty(s.FeeHistory))
	if err != nil {
		return fmt.Errorf("marshal fee history: %w", err)
	}

	const q = `INSERT INTO students
	           (seat, name, mobile, attendance, fee_paid, join_date, fee, shift, payment_history, fee_history)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	           name = VALUES(name), mobile = VALUES(mobile), attendance = VALUES(attendance),
	           fee_paid = VALUES(fee_paid), join_date = VALUES(join_date), fee = VALUES(fee),
	           shift = VALUES(shift), payment_history = VALUES(payment_history),
	           fee_history = VALUES(fee_history)`
	_, err = r.db.ExecContext(ctx, q,
		s.Seat, s.Name, s.Mobile, s.Attendance, s.FeePaid, s.JoinDate, s.Fee, s.Shift, payments, fees)
	return err
}

// DeleteBySeat removes the student's row if present.  Deleting an unknown
// seat is not an error; the operation is idempotent.
func (r *StudentRepo) DeleteBySeat(ctx context.Context, seat string) error {
	const q = "DELETE FROM students WHERE seat = ?"
	_, err := r.db.ExecContext(ctx, q, seat)
	return err
}

// rowScanner abstracts sql.Row and sql.Rows so one scan routine serves both
// single-row and multi-row queries.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*model.Student, error) {
	var (
		s        model.Student
		joinDate sql.NullTime
		payments []byte
		fees     []byte
	)
	if err := row.Scan(&s.Seat, &s.Name, &s.Mobile, &s.Attendance, &s.FeePaid,
		&joinDate, &s.Fee, &s.Shift, &payments, &fees); err != nil {
		return nil, err
	}
	if joinDate.Valid {
		t := joinDate.Time
		s.JoinDate = &t
	}
	if len(payments) > 0 {
		if err := json.Unmarshal(payments, &s.PaymentHistory); err != nil {
			return nil, fmt.Errorf("unmarshal payment history for seat %s: %w", s.Seat, err)
		}
	}
	if len(fees) > 0 {
		if err := json.Unmarshal(fees, &s.FeeHistory); err != nil {
			return nil, fmt.Errorf("unmarshal fee history for seat %s: %w", s.Seat, err)
		}
	}
	return &s, nil
}

// historyOrEmpty keeps the JSON column a valid array ("[]") when the
// sequence is nil, so reads never have to handle SQL NULL.
func historyOrEmpty(h []model.PaymentEntry) []model.PaymentEntry {
	if h == nil {
		return []model.PaymentEntry{}
	}
	return h
}

func feesOrEmpty(h []model.FeeEntry) []model.FeeEntry {
	if h == nil {
		return []model.FeeEntry{}
	}
	return h
}
