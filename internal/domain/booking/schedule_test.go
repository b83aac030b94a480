package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	t.Run("empty input yields closed schedule", func(t *testing.T) {
		s, err := ParseSchedule(nil)
		require.NoError(t, err)
		assert.Empty(t, s)

		s, err = ParseSchedule([]byte("null"))
		require.NoError(t, err)
		assert.Empty(t, s)
	})

	t.Run("valid json", func(t *testing.T) {
		raw := []byte(`{"monday":{"isOpen":true,"open":"09:00","close":"17:00"}}`)
		s, err := ParseSchedule(raw)
		require.NoError(t, err)
		require.Contains(t, s, "monday")
		assert.True(t, s["monday"].IsOpen)
		assert.Equal(t, "09:00", s["monday"].Open)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseSchedule([]byte(`{"monday":`))
		assert.Error(t, err)
	})
}

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Schedule
		wantErr bool
	}{
		{
			name: "valid week",
			s: Schedule{
				"monday":  {IsOpen: true, Open: "09:00", Close: "17:00"},
				"tuesday": {IsOpen: false},
			},
		},
		{
			name:    "unknown weekday",
			s:       Schedule{"funday": {IsOpen: true, Open: "09:00", Close: "17:00"}},
			wantErr: true,
		},
		{
			name:    "bad open time",
			s:       Schedule{"monday": {IsOpen: true, Open: "9am", Close: "17:00"}},
			wantErr: true,
		},
		{
			name:    "open after close",
			s:       Schedule{"monday": {IsOpen: true, Open: "18:00", Close: "09:00"}},
			wantErr: true,
		},
		{
			name:    "open equals close",
			s:       Schedule{"monday": {IsOpen: true, Open: "09:00", Close: "09:00"}},
			wantErr: true,
		},
		{
			// Closed days may carry junk; they are never resolved.
			name: "closed day skips window validation",
			s:    Schedule{"monday": {IsOpen: false, Open: "junk"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduleResolve(t *testing.T) {
	// 2026-03-02 is a Monday.
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("open day anchors on the date", func(t *testing.T) {
		s := Schedule{"monday": {IsOpen: true, Open: "09:00", Close: "17:00"}}

		open, close, ok := s.Resolve(monday)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), open)
		assert.Equal(t, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC), close)
	})

	t.Run("anchors in the date's location", func(t *testing.T) {
		sp, err := time.LoadLocation("America/Sao_Paulo")
		require.NoError(t, err)

		s := Schedule{"monday": {IsOpen: true, Open: "09:00", Close: "17:00"}}

		localMonday := time.Date(2026, 3, 2, 0, 0, 0, 0, sp)
		open, close, ok := s.Resolve(localMonday)
		require.True(t, ok)
		assert.Equal(t, 9, open.Hour())
		assert.Equal(t, sp, open.Location())
		assert.Equal(t, 17, close.Hour())
	})

	t.Run("closed day", func(t *testing.T) {
		s := Schedule{"monday": {IsOpen: false}}
		_, _, ok := s.Resolve(monday)
		assert.False(t, ok)
	})

	t.Run("missing day reads closed", func(t *testing.T) {
		s := Schedule{"tuesday": {IsOpen: true, Open: "09:00", Close: "17:00"}}
		_, _, ok := s.Resolve(monday)
		assert.False(t, ok)
	})

	t.Run("nil schedule reads closed", func(t *testing.T) {
		var s Schedule
		_, _, ok := s.Resolve(monday)
		assert.False(t, ok)
	})

	t.Run("malformed window fails closed", func(t *testing.T) {
		s := Schedule{"monday": {IsOpen: true, Open: "late", Close: "17:00"}}
		_, _, ok := s.Resolve(monday)
		assert.False(t, ok)

		s = Schedule{"monday": {IsOpen: true, Open: "17:00", Close: "09:00"}}
		_, _, ok = s.Resolve(monday)
		assert.False(t, ok)
	})
}
