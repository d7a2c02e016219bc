package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/utils"
)

// AttendanceEngine orchestrates clock-in/clock-out over attendance_logs,
// healing stale open sessions through the auto-close policy on the way in.
type AttendanceEngine struct {
	autoClose AutoClosePolicy
}

func NewAttendanceEngine(policy AutoClosePolicy) *AttendanceEngine {
	return &AttendanceEngine{autoClose: policy}
}

// ClockIn opens a session for the user on now's calendar day. Any open
// session from an earlier day is first given to the auto-close policy; one
// that is still within its shift means the user is already clocked in.
// Returns the user's full history, most recent first.
func (e *AttendanceEngine) ClockIn(db *gorm.DB, userID string, now time.Time) ([]model.AttendanceLog, error) {
	user, err := loadUser(db, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Lock the user's most recent open log, whichever day it was
		// opened on. The FOR UPDATE serializes racing clock-ins so the
		// loser observes the session the winner just opened.
		var lastOpen model.AttendanceLog
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND check_out IS NULL", userID).
			Order("check_in DESC").
			First(&lastOpen).Error
		switch {
		case err == nil:
			if !e.autoClose.Apply(&lastOpen, now) {
				return ErrAlreadyClockedIn
			}
			if err := tx.Save(&lastOpen).Error; err != nil {
				return fmt.Errorf("failed to save auto-closed log: %w", err)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to query open log: %w", err)
		}

		todayLog, err := e.todayLog(tx, userID, now, false)
		if err != nil {
			return err
		}

		if todayLog != nil {
			if err := AppendSession(todayLog, now); err != nil {
				return ErrAlreadyClockedIn
			}
			if err := tx.Save(todayLog).Error; err != nil {
				return fmt.Errorf("failed to save log: %w", err)
			}
			return nil
		}

		log := model.AttendanceLog{
			ID:       uuid.NewString(),
			UserID:   userID,
			Date:     utils.DayStart(now),
			CheckIn:  now,
			Sessions: []model.Session{{CheckIn: now}},
		}
		if err := tx.Create(&log).Error; err != nil {
			return mapLogCreateError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return e.History(db, userID)
}

// ClockOut closes the open session on today's record.
func (e *AttendanceEngine) ClockOut(db *gorm.DB, userID string, now time.Time) ([]model.AttendanceLog, error) {
	if _, err := loadUser(db, userID); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		todayLog, err := e.todayLog(tx, userID, now, true)
		if err != nil {
			return err
		}
		if todayLog == nil {
			return ErrNoActiveClockIn
		}

		if err := CloseOpenSession(todayLog, now); err != nil {
			return ErrNoActiveClockIn
		}
		if err := tx.Save(todayLog).Error; err != nil {
			return fmt.Errorf("failed to save log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return e.History(db, userID)
}

// HealStale runs the auto-close policy over the given records and persists
// whichever it closed. Read paths call this so a forgotten clock-out never
// survives past the first time anyone looks at the data.
func (e *AttendanceEngine) HealStale(db *gorm.DB, logs []model.AttendanceLog, now time.Time) error {
	for i := range logs {
		if !e.autoClose.Apply(&logs[i], now) {
			continue
		}
		if err := db.Save(&logs[i]).Error; err != nil {
			return fmt.Errorf("failed to save auto-closed log: %w", err)
		}
	}
	return nil
}

// History lists all day records for the user, most recent first.
func (e *AttendanceEngine) History(db *gorm.DB, userID string) ([]model.AttendanceLog, error) {
	var logs []model.AttendanceLog
	if err := db.Where("user_id = ?", userID).Order("check_in DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}
	return logs, nil
}

// todayLog locks and returns the user's record for now's calendar day,
// matching by day column or by a check-in inside the day window (records
// created before the day column existed). openOnly restricts to records with
// an open session.
func (e *AttendanceEngine) todayLog(tx *gorm.DB, userID string, now time.Time, openOnly bool) (*model.AttendanceLog, error) {
	startOfDay := utils.DayStart(now)
	endOfDay := utils.DayEnd(now)

	q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Where("(date BETWEEN ? AND ?) OR (check_in BETWEEN ? AND ?)", startOfDay, endOfDay, startOfDay, endOfDay)
	if openOnly {
		q = q.Where("check_out IS NULL")
	}

	var log model.AttendanceLog
	err := q.Order("check_in DESC").First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query today's log: %w", err)
	}
	return &log, nil
}

// mapLogCreateError converts a unique (user_id, date) violation into the
// conflict the loser of a clock-in race should observe. The locking reads in
// ClockIn see nothing when neither day record exists yet, so the index is
// what decides the race.
func mapLogCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyClockedIn
	}
	return fmt.Errorf("failed to create log: %w", err)
}

func loadUser(db *gorm.DB, userID string) (*model.User, error) {
	var user model.User
	err := db.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
