package booking

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ===============================
// Working Schedule
// ===============================

// DaySchedule is one weekday's window. Open/Close are wall-clock
// "HH:MM" strings interpreted in the shop's timezone.
type DaySchedule struct {
	IsOpen bool   `json:"isOpen"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
}

// Schedule maps lowercase weekday names ("monday".."sunday") to their
// windows. Days missing from the map are closed.
type Schedule map[string]DaySchedule

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseSchedule decodes a stored jsonb schedule. Empty or null input
// yields an empty schedule (every day closed), not an error.
func ParseSchedule(raw []byte) (Schedule, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Schedule{}, nil
	}

	var s Schedule
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}
	return s, nil
}

// Validate is the write-time gate: weekday keys must be real weekday
// names and open days must carry a well-ordered HH:MM window.
func (s Schedule) Validate() error {
	for day, ds := range s {
		if _, ok := weekdayNames[strings.ToLower(day)]; !ok {
			return fmt.Errorf("unknown weekday %q", day)
		}

		if !ds.IsOpen {
			continue
		}

		open, err := parseWallClock(ds.Open)
		if err != nil {
			return fmt.Errorf("%s: invalid open time %q", day, ds.Open)
		}
		close, err := parseWallClock(ds.Close)
		if err != nil {
			return fmt.Errorf("%s: invalid close time %q", day, ds.Close)
		}
		if !open.Before(close) {
			return fmt.Errorf("%s: open %q must precede close %q", day, ds.Open, ds.Close)
		}
	}
	return nil
}

// Resolve anchors the schedule's window for date's weekday onto that
// date, in date's location. Any malformed or absent data reads as
// closed; Resolve never fails open.
func (s Schedule) Resolve(date time.Time) (open, close time.Time, ok bool) {
	if s == nil {
		return time.Time{}, time.Time{}, false
	}

	day := strings.ToLower(date.Weekday().String())
	ds, found := s[day]
	if !found || !ds.IsOpen {
		return time.Time{}, time.Time{}, false
	}

	openHM, err := parseWallClock(ds.Open)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	closeHM, err := parseWallClock(ds.Close)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if !openHM.Before(closeHM) {
		return time.Time{}, time.Time{}, false
	}

	open = onDate(date, openHM)
	close = onDate(date, closeHM)
	return open, close, true
}

func parseWallClock(hm string) (time.Time, error) {
	return time.Parse("15:04", hm)
}

func onDate(date, hm time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		hm.Hour(), hm.Minute(), 0, 0,
		date.Location(),
	)
}
