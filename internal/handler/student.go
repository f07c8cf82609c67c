package handler // handler package contains the student record endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/reading-room-manager/internal/ledger"
	"github.com/iliyamo/reading-room-manager/internal/model"
	"github.com/iliyamo/reading-room-manager/internal/queue"
	"github.com/iliyamo/reading-room-manager/internal/repository"
)

// ListStudents handles GET /students.  Besides returning every record it
// lazily reconciles each one against the current month: any student whose
// payment history lacks this month's entry gets a fresh unpaid entry
// appended and saved.  Repeated listings within the same month find the
// entry already present and trigger no further writes.
func (h *StudentHandler) ListStudents(c echo.Context) error {
	ctx := c.Request().Context()
	students, err := h.Students.FindAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}

	currentMonth := ledger.MonthKey(h.Now())
	for _, s := range students {
		if ledger.EnsureMonthEntry(s, currentMonth, false) {
			if err := h.Students.Save(ctx, s); err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
			}
		}
	}

	if students == nil { // respond with an empty array rather than null
		students = []*model.Student{}
	}
	return c.JSON(http.StatusOK, students)
}

// GetHistory handles GET /students/:seat/history and returns the student's
// payment history, or 404 when the seat is unknown.
func (h *StudentHandler) GetHistory(c echo.Context) error {
	seat := c.Param("seat")
	s, err := h.Students.FindBySeat(c.Request().Context(), seat)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
	history := s.PaymentHistory
	if history == nil {
		history = []model.PaymentEntry{}
	}
	return c.JSON(http.StatusOK, history)
}

// UpsertStudent handles POST /students.  The seat is the primary key: a
// known seat has its mutable fields overwritten, an unknown seat gets a new
// record.  Optional fields fall back to explicit defaults (fee 500, empty
// shift, flags false).  In both cases the current month's payment entry is
// ensured, seeded with the incoming feePaid value; an already existing
// entry is left untouched even when feePaid changed.
func (h *StudentHandler) UpsertStudent(c echo.Context) error {
	var body struct {
		Seat       string     `json:"seat"`
		Name       string     `json:"name"`
		Mobile     string     `json:"mobile"`
		JoinDate   *time.Time `json:"joinDate"`
		Fee        *float64   `json:"fee"`
		Attendance *bool      `json:"attendance"`
		FeePaid    *bool      `json:"feePaid"`
		Shift      *string    `json:"shift"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.Seat == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "seat is required"})
	}

	// Explicit defaults instead of null-coalescing at use sites.
	fee := model.DefaultFee
	if body.Fee != nil {
		fee = *body.Fee
	}
	attendance := false
	if body.Attendance != nil {
		attendance = *body.Attendance
	}
	feePaid := false
	if body.FeePaid != nil {
		feePaid = *body.FeePaid
	}
	shift := ""
	if body.Shift != nil {
		shift = *body.Shift
	}

	ctx := c.Request().Context()
	s, err := h.Students.FindBySeat(ctx, body.Seat)
	switch {
	case err == nil:
		s.Name = body.Name
		s.Mobile = body.Mobile
		s.JoinDate = body.JoinDate
		s.Fee = fee
		s.Attendance = attendance
		s.FeePaid = feePaid
		s.Shift = shift
	case errors.Is(err, repository.ErrStudentNotFound):
		s = &model.Student{
			Seat:       body.Seat,
			Name:       body.Name,
			Mobile:     body.Mobile,
			JoinDate:   body.JoinDate,
			Fee:        fee,
			Attendance: attendance,
			FeePaid:    feePaid,
			Shift:      shift,
		}
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}

	ledger.EnsureMonthEntry(s, ledger.MonthKey(h.Now()), feePaid)

	if err := h.Students.Save(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
	return c.JSON(http.StatusOK, s)
}

// ToggleAttendance handles PATCH /students/:seat/attendance and flips the
// attendance flag.
func (h *StudentHandler) ToggleAttendance(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := h.Students.FindBySeat(ctx, c.Param("seat"))
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
	ledger.ToggleAttendance(s)
	if err := h.Students.Save(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
	return c.JSON(http.StatusOK, s)
}

// TogglePayment handles PATCH /students/:seat/payment/:month and flips the
// paid flag of the named month's payment entry.  Toggling a month that has
// no entry yet records it as paid.
func (h *StudentHandler) TogglePayment(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := h.Students.FindBySeat(ctx, c.Param("seat"))
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}

	ledger.ToggleMonth(s, monthParam(c), h.Now())

	if err := h.Students.Save(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
	return c.JSON(http.StatusOK, s)
}

// UpdateFeeHistory handles PATCH /students/:seat/fee-history.  The body
// names a month and a paid value; the month's fee-history entry is set to
// that value or created with it.  A missing month is a validation error.
func (h *StudentHandler) UpdateFeeHistory(c echo.Context) error {
	var body struct {
		Month string `json:"month"`
		Paid  bool   `json:"paid"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.Month == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "month is required"})
	}

	ctx := c.Request().Context()
	s, err := h.Students.FindBySeat(ctx, c.Param("seat"))
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}

	if err := ledger.SetFeeHistoryMonth(s, body.Month, body.Paid); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.Students.Save(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
	return c.JSON(http.StatusOK, s)
}

// SendAlert handles POST /students/:seat/send-alert.  It hands a fee
// reminder to the delivery collaborator using either the caller-supplied
// message or a generated one naming the student and their fee.  The
// collaborator's outcome is reported verbatim; failures are not retried.
func (h *StudentHandler) SendAlert(c echo.Context) error {
	var body struct {
		CustomMessage string `json:"customMessage"`
	}
	// The body is optional; binding errors fall back to the generated message.
	_ = c.Bind(&body)

	ctx := c.Request().Context()
	s, err := h.Students.FindBySeat(ctx, c.Param("seat"))
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}

	message := body.CustomMessage
	if message == "" {
		message = fmt.Sprintf("Hello %s, this is a reminder that your reading room fee of ₹%.0f is pending. Please pay it soon.", s.Name, s.Fee)
	}

	event := queue.FeeAlertEvent{
		Seat:    s.Seat,
		Name:    s.Name,
		Mobile:  s.Mobile,
		Fee:     s.Fee,
		Message: message,
		SentAt:  h.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Alerts.SendFeeAlert(ctx, event); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "fee alert sent successfully"})
}

// DeleteStudent handles DELETE /students/:seat.  Deletion is idempotent:
// removing an unknown seat still reports success.
func (h *StudentHandler) DeleteStudent(c echo.Context) error {
	if err := h.Students.DeleteBySeat(c.Request().Context(), c.Param("seat")); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted successfully"})
}

// RecordPayment handles POST /students/:seat/pay.  It records a payment of
// the given amount for the named month: the entry ends up paid with the
// amount and payment timestamp overwritten on every call.
func (h *StudentHandler) RecordPayment(c echo.Context) error {
	var body struct {
		Month  string  `json:"month"`
		Amount float64 `json:"amount"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	s, err := h.Students.FindBySeat(ctx, c.Param("seat"))
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}

	ledger.RecordPayment(s, body.Month, body.Amount, h.Now())

	if err := h.Students.Save(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "student": s})
}

// monthParam returns the :month path parameter with percent-encoding
// undone, so "November%202025" matches the stored "November 2025" key.
// No other normalization is applied.
func monthParam(c echo.Context) string {
	raw := c.Param("month")
	if m, err := url.PathUnescape(raw); err == nil {
		return m
	}
	return raw
}
