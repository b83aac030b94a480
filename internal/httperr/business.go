package httperr

import (
	"errors"
	"net/http"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// businessStatus maps domain error codes to HTTP statuses and user
// messages. Codes outside the table fall through to a 500.
var businessStatus = map[string]struct {
	Status  int
	Message string
}{
	"barbershop_not_found":   {http.StatusNotFound, "Barbershop not found."},
	"barber_not_found":       {http.StatusNotFound, "Barber not found."},
	"booking_not_found":      {http.StatusNotFound, "Booking not found."},
	"slot_not_found":         {http.StatusNotFound, "Slot not found."},
	"services_not_found":     {http.StatusNotFound, "Some services not found."},
	"time_conflict":          {http.StatusConflict, "Selected time slot is not available."},
	"slot_unavailable":       {http.StatusConflict, "Selected time slot is not available."},
	"barber_cannot_perform":  {http.StatusBadRequest, "Barber cannot perform all selected services."},
	"insufficient_duration":  {http.StatusBadRequest, "Slot duration is insufficient for selected services."},
	"invalid_state":          {http.StatusBadRequest, "Booking is not in a cancellable state."},
	"too_late_to_cancel":     {http.StatusBadRequest, "Cannot cancel booking this close to the appointment."},
	"closed_day":             {http.StatusBadRequest, "Barber is not working on this day."},
	"invalid_schedule":       {http.StatusBadRequest, "Working schedule is malformed."},
	"invalid_window":         {http.StatusBadRequest, "Start time must precede end time."},
	"guest_booking_disabled": {http.StatusUnauthorized, "Authentication required to book."},
	"forbidden":              {http.StatusForbidden, "Insufficient permissions."},
}
