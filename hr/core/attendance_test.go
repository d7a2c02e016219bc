package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapLogCreateError(t *testing.T) {
	t.Run("Duplicate day record is a clock-in conflict", func(t *testing.T) {
		// the loser of two racing first clock-ins hits the unique
		// (user_id, date) index, not an infrastructure failure
		err := mapLogCreateError(gorm.ErrDuplicatedKey)
		assert.ErrorIs(t, err, ErrAlreadyClockedIn)
		assert.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("Wrapped duplicate error still maps", func(t *testing.T) {
		err := mapLogCreateError(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey))
		assert.ErrorIs(t, err, ErrAlreadyClockedIn)
	})

	t.Run("Other errors stay infrastructure", func(t *testing.T) {
		cause := fmt.Errorf("connection reset")
		err := mapLogCreateError(cause)
		assert.NotErrorIs(t, err, ErrAlreadyClockedIn)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, KindInfrastructure, KindOf(err))
	})
}
