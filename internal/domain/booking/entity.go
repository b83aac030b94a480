package booking

import "time"

type AvailabilityInput struct {
	BarberID uint
	Date     time.Time
}

// TimeSlot is one bookable candidate as exposed over the wire.
type TimeSlot struct {
	ID           string    `json:"id"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	IsAvailable  bool      `json:"isAvailable"`
	BarberID     uint      `json:"barberId"`
	BarbershopID uint      `json:"barbershopId"`
}

// CalendarSlot annotates a persisted slot with its booking, for the
// staff day view.
type CalendarSlot struct {
	ID          uint             `json:"id"`
	StartTime   time.Time        `json:"startTime"`
	EndTime     time.Time        `json:"endTime"`
	IsAvailable bool             `json:"isAvailable"`
	IsBooked    bool             `json:"isBooked"`
	IsBlocked   bool             `json:"isBlocked"`
	Booking     *CalendarBooking `json:"booking"`
}

type CalendarBooking struct {
	ID     uint   `json:"id"`
	Code   string `json:"code"`
	Status string `json:"status"`
}

// ListFilter narrows a booking listing. Zero values mean "no filter";
// role scoping is applied by the caller before it reaches the store.
type ListFilter struct {
	UserID       *uint
	BarberID     *uint
	BarbershopID *uint
	Status       string
	From         *time.Time
	To           *time.Time

	Page  int
	Limit int
}
