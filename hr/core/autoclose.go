package core

import (
	"time"

	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/utils"
)

// ShiftHours are the process-wide working-day boundaries, hour-of-day in the
// policy's location.
type ShiftHours struct {
	Start int
	End   int
}

var DefaultShiftHours = ShiftHours{Start: 10, End: 19}

// AutoClosePolicy force-closes a session the employee forgot to close once
// the shift-end boundary of its check-in day has passed. It runs lazily at
// the start of clock operations instead of from a background job.
type AutoClosePolicy struct {
	shift ShiftHours
	loc   *time.Location
}

func NewAutoClosePolicy(shift ShiftHours, loc *time.Location) AutoClosePolicy {
	if loc == nil {
		loc = utils.KolkataTZ
	}
	return AutoClosePolicy{shift: shift, loc: loc}
}

// ShiftEnd is the close boundary for a session opened at checkIn.
func (p AutoClosePolicy) ShiftEnd(checkIn time.Time) time.Time {
	local := checkIn.In(p.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), p.shift.End, 0, 0, 0, p.loc)
}

// Apply closes the open session of log at the shift boundary when ref has
// passed it. The checkOut is pinned to the boundary, never to ref, so the
// recorded duration is the same no matter how late the check runs. Returns
// whether anything was closed; a second call on the same state is a no-op.
func (p AutoClosePolicy) Apply(log *model.AttendanceLog, ref time.Time) bool {
	if log == nil {
		return false
	}
	EnsureSessions(log)
	open := OpenSession(log)
	if open == nil {
		return false
	}

	end := p.ShiftEnd(open.CheckIn)
	if ref.Before(end) {
		return false
	}

	closeSession(log, open, end)
	return true
}
