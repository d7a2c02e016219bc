package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"peoplebase.com/peoplebase/hr/model"
)

func TestAppendAndCloseSessions(t *testing.T) {
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	log := &model.AttendanceLog{UserID: "u1"}

	openCount := func() int {
		n := 0
		for _, s := range log.Sessions {
			if s.Open() {
				n++
			}
		}
		return n
	}

	// morning session
	require.NoError(t, AppendSession(log, day.Add(10*time.Hour)))
	assert.Equal(t, 1, openCount())
	assert.True(t, HasOpenSession(log))
	assert.Nil(t, log.CheckOut)

	// opening a second one is a conflict
	assert.ErrorIs(t, AppendSession(log, day.Add(11*time.Hour)), ErrSessionOpen)
	assert.Equal(t, 1, openCount())

	require.NoError(t, CloseOpenSession(log, day.Add(13*time.Hour)))
	assert.Equal(t, 0, openCount())
	require.NotNil(t, log.Duration)
	assert.Equal(t, 180, *log.Duration)

	// closing again is a conflict
	assert.ErrorIs(t, CloseOpenSession(log, day.Add(14*time.Hour)), ErrNoOpenSession)

	// afternoon session; day aggregate sums both
	require.NoError(t, AppendSession(log, day.Add(14*time.Hour)))
	assert.Nil(t, log.CheckOut)
	require.NoError(t, CloseOpenSession(log, day.Add(18*time.Hour+30*time.Minute)))

	require.Len(t, log.Sessions, 2)
	require.NotNil(t, log.Duration)
	assert.Equal(t, 180+270, *log.Duration)

	// open session, when present, is always the last element
	require.NoError(t, AppendSession(log, day.Add(19*time.Hour)))
	assert.True(t, log.Sessions[len(log.Sessions)-1].Open())
}

func TestEnsureSessionsMigratesLegacyRecord(t *testing.T) {
	checkIn := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(8 * time.Hour)
	dur := 480

	log := &model.AttendanceLog{UserID: "u1", CheckIn: checkIn, CheckOut: &checkOut, Duration: &dur}
	EnsureSessions(log)

	require.Len(t, log.Sessions, 1)
	assert.Equal(t, checkIn, log.Sessions[0].CheckIn)
	assert.Equal(t, &checkOut, log.Sessions[0].CheckOut)
	assert.Equal(t, &dur, log.Sessions[0].Duration)

	// idempotent
	EnsureSessions(log)
	assert.Len(t, log.Sessions, 1)
}

func TestEnsureSessionsEmptyRecord(t *testing.T) {
	log := &model.AttendanceLog{UserID: "u1"}
	EnsureSessions(log)
	assert.Empty(t, log.Sessions)
	assert.False(t, HasOpenSession(log))
}

func TestTotalMinutes(t *testing.T) {
	base := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	stored := 90

	log := &model.AttendanceLog{
		Sessions: []model.Session{
			// stored duration wins over timestamps
			{CheckIn: base, CheckOut: ptrTime(base.Add(2 * time.Hour)), Duration: &stored},
			// no stored duration: recomputed from the pair, floor minutes
			{CheckIn: base.Add(3 * time.Hour), CheckOut: ptrTime(base.Add(4*time.Hour + 30*time.Minute + 45*time.Second))},
			// open session contributes nothing
			{CheckIn: base.Add(6 * time.Hour)},
		},
	}
	assert.Equal(t, 90+90, TotalMinutes(log))
}

func TestSessionMinutesClampsNegative(t *testing.T) {
	base := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, sessionMinutes(base, base.Add(-time.Hour)))
	assert.Equal(t, 0, sessionMinutes(base, base.Add(59*time.Second)))
	assert.Equal(t, 1, sessionMinutes(base, base.Add(time.Minute)))
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
