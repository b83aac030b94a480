package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (int, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Handle(c, err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandle(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"barber_not_found", http.StatusNotFound},
		{"booking_not_found", http.StatusNotFound},
		{"services_not_found", http.StatusNotFound},
		{"time_conflict", http.StatusConflict},
		{"slot_unavailable", http.StatusConflict},
		{"barber_cannot_perform", http.StatusBadRequest},
		{"insufficient_duration", http.StatusBadRequest},
		{"too_late_to_cancel", http.StatusBadRequest},
		{"invalid_state", http.StatusBadRequest},
		{"guest_booking_disabled", http.StatusUnauthorized},
		{"forbidden", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, body := handle(t, ErrBusiness(tt.code))
			assert.Equal(t, tt.status, status)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}

	t.Run("unknown business code falls through to 500", func(t *testing.T) {
		status, _ := handle(t, ErrBusiness("mystery"))
		assert.Equal(t, http.StatusInternalServerError, status)
	})

	t.Run("exclusion constraint violation reads as conflict", func(t *testing.T) {
		err := fmt.Errorf("create slot: %w", &pgconn.PgError{Code: "23P01"})
		status, body := handle(t, err)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "time_conflict", body.Code)
	})

	t.Run("unique violation reads as conflict", func(t *testing.T) {
		status, _ := handle(t, &pgconn.PgError{Code: "23505"})
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("arbitrary error is a 500", func(t *testing.T) {
		status, body := handle(t, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "internal_error", body.Code)
	})
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrBusiness("time_conflict"))
	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsBusiness(err, "forbidden"))
	assert.False(t, IsBusiness(errors.New("boom"), "time_conflict"))
}
