package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(t *testing.T, day time.Time, fromHM, toHM string) Window {
	t.Helper()
	from, err := time.Parse("15:04", fromHM)
	require.NoError(t, err)
	to, err := time.Parse("15:04", toHM)
	require.NoError(t, err)
	return Window{Start: onDate(day, from), End: onDate(day, to)}
}

func TestWindowOverlaps(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b Window
		want bool
	}{
		{"identical", window(t, day, "10:00", "11:00"), window(t, day, "10:00", "11:00"), true},
		{"partial", window(t, day, "10:00", "11:00"), window(t, day, "10:30", "11:30"), true},
		{"containment", window(t, day, "09:00", "17:00"), window(t, day, "10:00", "11:00"), true},
		{"touching edges do not conflict", window(t, day, "10:00", "11:00"), window(t, day, "11:00", "12:00"), false},
		{"disjoint", window(t, day, "09:00", "10:00"), window(t, day, "14:00", "15:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTile(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	open := day.Add(9 * time.Hour)
	grain := time.Hour

	t.Run("full day is gapless", func(t *testing.T) {
		close := day.Add(17 * time.Hour)

		got := Tile(open, close, grain)
		require.Len(t, got, 8)

		assert.True(t, got[0].Start.Equal(open))
		assert.True(t, got[len(got)-1].End.Equal(close))
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i].Start.Equal(got[i-1].End), "slots must be contiguous")
		}
	})

	t.Run("trailing partial slot is dropped", func(t *testing.T) {
		close := day.Add(17*time.Hour + 30*time.Minute)

		got := Tile(open, close, grain)
		require.Len(t, got, 8)
		assert.True(t, got[len(got)-1].End.Equal(day.Add(17*time.Hour)))
	})

	t.Run("window shorter than grain", func(t *testing.T) {
		assert.Empty(t, Tile(open, open.Add(30*time.Minute), grain))
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		assert.Nil(t, Tile(open, open, grain))
		assert.Nil(t, Tile(open.Add(time.Hour), open, grain))
		assert.Nil(t, Tile(open, open.Add(time.Hour), 0))
	})
}

func TestAvailableWindows(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	open := day.Add(9 * time.Hour)
	close := day.Add(17 * time.Hour)
	grain := time.Hour

	t.Run("no busy windows", func(t *testing.T) {
		got := AvailableWindows(open, close, grain, nil)
		assert.Len(t, got, 8)
	})

	t.Run("booked hour disappears", func(t *testing.T) {
		busy := []Window{window(t, day, "10:00", "11:00")}

		got := AvailableWindows(open, close, grain, busy)
		require.Len(t, got, 7)
		for _, w := range got {
			assert.False(t, w.OverlapsAny(busy))
		}
	})

	t.Run("straddling block removes both neighbours", func(t *testing.T) {
		busy := []Window{window(t, day, "10:30", "11:30")}

		got := AvailableWindows(open, close, grain, busy)
		require.Len(t, got, 6)
		for _, w := range got {
			assert.NotEqual(t, 10, w.Start.Hour())
			assert.NotEqual(t, 11, w.Start.Hour())
		}
	})

	t.Run("busy window touching a slot edge keeps the slot", func(t *testing.T) {
		busy := []Window{window(t, day, "08:00", "09:00")}

		got := AvailableWindows(open, close, grain, busy)
		assert.Len(t, got, 8)
	})

	t.Run("deterministic between writes", func(t *testing.T) {
		busy := []Window{window(t, day, "13:00", "14:00")}

		first := AvailableWindows(open, close, grain, busy)
		second := AvailableWindows(open, close, grain, busy)
		assert.Equal(t, first, second)
	})
}
