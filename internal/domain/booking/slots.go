package booking

import "time"

// ===============================
// Windows & Slot Generation
// ===============================

// Window is a half-open interval [Start, End) on a barber's agenda.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps applies the half-open rule: [a1,a2) and [b1,b2) overlap
// iff a1 < b2 && b1 < a2. Windows that merely touch do not conflict.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// OverlapsAny reports whether w conflicts with any window in busy.
func (w Window) OverlapsAny(busy []Window) bool {
	for _, b := range busy {
		if w.Overlaps(b) {
			return true
		}
	}
	return false
}

// Tile produces the candidate windows of the given grain inside
// [open, close), left to right, gapless. A trailing window that would
// cross close is dropped, not truncated.
func Tile(open, close time.Time, grain time.Duration) []Window {
	if grain <= 0 || !open.Before(close) {
		return nil
	}

	var out []Window
	for cur := open; !cur.Add(grain).After(close); cur = cur.Add(grain) {
		out = append(out, Window{Start: cur, End: cur.Add(grain)})
	}
	return out
}

// AvailableWindows tiles [open, close) and drops every candidate that
// overlaps a busy window. Same inputs, same output: the generator is
// deterministic, so availability queries are idempotent between writes.
func AvailableWindows(open, close time.Time, grain time.Duration, busy []Window) []Window {
	candidates := Tile(open, close, grain)

	out := make([]Window, 0, len(candidates))
	for _, c := range candidates {
		if c.OverlapsAny(busy) {
			continue
		}
		out = append(out, c)
	}
	return out
}
