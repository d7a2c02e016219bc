package core

import (
	"time"

	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/utils"
)

// EnsureSessions backfills the Sessions list on a day record that predates
// multi-session support, so every mutation below sees a uniform shape. The
// legacy columns become projections from here on.
func EnsureSessions(log *model.AttendanceLog) {
	if log == nil || len(log.Sessions) > 0 {
		return
	}
	if log.CheckIn.IsZero() {
		return
	}
	log.Sessions = []model.Session{{
		CheckIn:  log.CheckIn,
		CheckOut: log.CheckOut,
		Duration: log.Duration,
	}}
}

// OpenSession returns the currently open session, which by invariant is the
// last element, or nil.
func OpenSession(log *model.AttendanceLog) *model.Session {
	if log == nil {
		return nil
	}
	for i := len(log.Sessions) - 1; i >= 0; i-- {
		if log.Sessions[i].Open() {
			return &log.Sessions[i]
		}
	}
	return nil
}

func HasOpenSession(log *model.AttendanceLog) bool {
	if log == nil {
		return false
	}
	if len(log.Sessions) == 0 {
		// legacy single-session record
		return !log.CheckIn.IsZero() && log.CheckOut == nil
	}
	return OpenSession(log) != nil
}

// AppendSession opens a new session at now. The legacy CheckOut column is
// cleared so the "open log" index query keeps matching this record.
func AppendSession(log *model.AttendanceLog, now time.Time) error {
	EnsureSessions(log)
	if HasOpenSession(log) {
		return ErrSessionOpen
	}
	log.Sessions = append(log.Sessions, model.Session{CheckIn: now})
	if log.CheckIn.IsZero() {
		log.CheckIn = now
	}
	if log.Date.IsZero() {
		log.Date = utils.DayStart(now)
	}
	log.CheckOut = nil
	return nil
}

// CloseOpenSession stamps the open session with checkOut=now and refreshes
// the day aggregate and legacy projections.
func CloseOpenSession(log *model.AttendanceLog, now time.Time) error {
	EnsureSessions(log)
	open := OpenSession(log)
	if open == nil {
		return ErrNoOpenSession
	}
	closeSession(log, open, now)
	return nil
}

func closeSession(log *model.AttendanceLog, open *model.Session, at time.Time) {
	open.CheckOut = utils.Ptr(at)
	open.Duration = utils.Ptr(sessionMinutes(open.CheckIn, at))
	total := TotalMinutes(log)
	log.Duration = utils.Ptr(total)
	log.CheckOut = utils.Ptr(at)
	if log.Date.IsZero() {
		log.Date = utils.DayStart(open.CheckIn)
	}
}

// TotalMinutes sums closed sessions, trusting a stored duration when present
// and recomputing from the timestamps otherwise.
func TotalMinutes(log *model.AttendanceLog) int {
	total := 0
	for _, s := range log.Sessions {
		if s.Duration != nil {
			total += *s.Duration
			continue
		}
		if s.CheckOut != nil {
			total += sessionMinutes(s.CheckIn, *s.CheckOut)
		}
	}
	return total
}

func sessionMinutes(checkIn, checkOut time.Time) int {
	minutes := int(checkOut.Sub(checkIn) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}
