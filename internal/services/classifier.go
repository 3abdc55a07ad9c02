package services

import (
	"time"

	"rentdesk_app_echo/internal/models"
)

// ClassifyPayment derives the effective status of a payment from its dates.
// The persisted Status column is only a cache of this result; reporting and
// refresh paths always re-derive through here. The current time is injected
// so the function stays deterministic.
//
// A payment made on or after its due date is on-time paid; the grace period
// only matters for unpaid obligations.
func ClassifyPayment(dueDate, paymentDate *time.Time, gracePeriodDays int, now time.Time) models.PaymentStatus {
	if dueDate == nil {
		return models.PaymentStatusUndefined
	}
	due := calendarDate(*dueDate)

	if paymentDate != nil {
		if calendarDate(*paymentDate).Before(due) {
			return models.PaymentStatusAdvanced
		}
		return models.PaymentStatusPaid
	}

	graceEdge := due.AddDate(0, 0, gracePeriodDays)
	if !calendarDate(now).After(graceEdge) {
		return models.PaymentStatusPending
	}
	return models.PaymentStatusLate
}

// calendarDate truncates a timestamp to its calendar date. Scheduling and
// classification compare by date, never by instant.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sameCalendarDay reports whether two timestamps fall on the same date.
func sameCalendarDay(a, b time.Time) bool {
	return calendarDate(a).Equal(calendarDate(b))
}
