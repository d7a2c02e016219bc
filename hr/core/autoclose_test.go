package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"peoplebase.com/peoplebase/hr/model"
)

func TestAutoCloseApply(t *testing.T) {
	policy := NewAutoClosePolicy(DefaultShiftHours, time.UTC)
	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	shiftEnd := time.Date(2024, 3, 4, 19, 0, 0, 0, time.UTC)

	newLog := func() *model.AttendanceLog {
		return &model.AttendanceLog{
			UserID:   "u1",
			Date:     time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			CheckIn:  checkIn,
			Sessions: []model.Session{{CheckIn: checkIn}},
		}
	}

	tests := []struct {
		name      string
		ref       time.Time
		wantClose bool
	}{
		{
			name:      "Before shift end",
			ref:       shiftEnd.Add(-time.Minute),
			wantClose: false,
		},
		{
			name:      "Exactly at shift end",
			ref:       shiftEnd,
			wantClose: true,
		},
		{
			name:      "Hours after shift end",
			ref:       shiftEnd.Add(5 * time.Hour),
			wantClose: true,
		},
		{
			name:      "Next day",
			ref:       shiftEnd.AddDate(0, 0, 3),
			wantClose: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := newLog()
			closed := policy.Apply(log, tt.ref)
			assert.Equal(t, tt.wantClose, closed)

			if !tt.wantClose {
				assert.True(t, HasOpenSession(log))
				return
			}

			// checkOut is pinned to the boundary, not to the reference instant
			require.NotNil(t, log.Sessions[0].CheckOut)
			assert.Equal(t, shiftEnd, *log.Sessions[0].CheckOut)
			require.NotNil(t, log.Sessions[0].Duration)
			assert.Equal(t, 540, *log.Sessions[0].Duration)
			require.NotNil(t, log.Duration)
			assert.Equal(t, 540, *log.Duration)
			require.NotNil(t, log.CheckOut)
			assert.Equal(t, shiftEnd, *log.CheckOut)
		})
	}
}

func TestAutoCloseIdempotent(t *testing.T) {
	policy := NewAutoClosePolicy(DefaultShiftHours, time.UTC)
	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	log := &model.AttendanceLog{
		UserID:   "u1",
		CheckIn:  checkIn,
		Sessions: []model.Session{{CheckIn: checkIn}},
	}

	ref := time.Date(2024, 3, 4, 22, 30, 0, 0, time.UTC)
	assert.True(t, policy.Apply(log, ref))

	before := *log
	assert.False(t, policy.Apply(log, ref))
	assert.False(t, policy.Apply(log, ref.Add(48*time.Hour)))
	assert.Equal(t, before.Duration, log.Duration)
	assert.Equal(t, before.CheckOut, log.CheckOut)
}

func TestAutoCloseLegacyRecord(t *testing.T) {
	policy := NewAutoClosePolicy(DefaultShiftHours, time.UTC)
	checkIn := time.Date(2024, 3, 4, 11, 30, 0, 0, time.UTC)

	// record written before multi-session support: no sessions list
	log := &model.AttendanceLog{UserID: "u1", CheckIn: checkIn}

	closed := policy.Apply(log, time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC))
	assert.True(t, closed)

	// the record was migrated before closing
	require.Len(t, log.Sessions, 1)
	require.NotNil(t, log.Sessions[0].Duration)
	assert.Equal(t, 450, *log.Sessions[0].Duration)
	assert.False(t, HasOpenSession(log))
}

func TestAutoCloseNothingOpen(t *testing.T) {
	policy := NewAutoClosePolicy(DefaultShiftHours, time.UTC)
	assert.False(t, policy.Apply(nil, time.Now()))

	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC)
	dur := 480
	log := &model.AttendanceLog{
		UserID:   "u1",
		CheckIn:  checkIn,
		CheckOut: &checkOut,
		Sessions: []model.Session{{CheckIn: checkIn, CheckOut: &checkOut, Duration: &dur}},
	}
	assert.False(t, policy.Apply(log, checkOut.AddDate(0, 0, 1)))
}
