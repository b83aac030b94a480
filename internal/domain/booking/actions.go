package booking

import (
	"time"

	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel enforces the lead-time rule and flips the booking's state.
// leadTime is the minimum interval between now and the appointment
// start below which cancellation is refused.
func Cancel(b *models.Booking, now time.Time, leadTime time.Duration) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	if b.Slot.StartTime.Sub(now) < leadTime {
		return httperr.ErrBusiness("too_late_to_cancel")
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}
