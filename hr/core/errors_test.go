package core

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
		code int
	}{
		{"Conflict", ErrAlreadyClockedIn, KindConflict, http.StatusBadRequest},
		{"Validation", ErrUnknownLeaveType, KindValidation, http.StatusBadRequest},
		{"Limit", &BalanceExceededError{Remaining: 2}, KindLimitExceeded, http.StatusBadRequest},
		{"Not found", ErrRequestNotFound, KindNotFound, http.StatusNotFound},
		{"Forbidden", ErrAccountDisabled, KindForbidden, http.StatusForbidden},
		{"Unknown", fmt.Errorf("connection reset"), KindInfrastructure, http.StatusInternalServerError},
		{"Wrapped", fmt.Errorf("clock-in: %w", ErrAlreadyClockedIn), KindConflict, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.code, StatusOf(tt.err))
		})
	}
}

func TestBalanceExceededMessage(t *testing.T) {
	err := &BalanceExceededError{Remaining: 1.5}
	assert.Equal(t, "Leave balance exceeded. Remaining: 1.5 day(s)", err.Error())
}
