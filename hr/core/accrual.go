package core

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/utils"
)

// PeriodStart is the most recent policy anchor date at or before reference:
// the anchor in reference's year, or the prior year's when the current one
// hasn't arrived yet. Midnight in reference's location.
func PeriodStart(policy *model.LeavePolicy, reference time.Time) time.Time {
	start := time.Date(reference.Year(), time.Month(policy.ResetMonth), policy.ResetDay, 0, 0, 0, 0, reference.Location())
	if reference.Before(start) {
		start = start.AddDate(-1, 0, 0)
	}
	return start
}

// TotalDays is the inclusive day count of the span. A half-day request keeps
// a 0.5 floor and otherwise shaves half a day off the final day.
func TotalDays(fromDate, toDate time.Time, halfDay bool) float64 {
	start := utils.DayStart(fromDate)
	end := utils.DayStart(toDate)
	days := int(math.Round(end.Sub(start).Hours()/24)) + 1
	if halfDay && days >= 1 {
		return math.Max(0.5, float64(days)-0.5)
	}
	if days < 1 {
		return 1
	}
	return float64(days)
}

// UsedDays sums the frozen totalDays over the employee's approved requests of
// the type inside the current entitlement period. Pending, rejected and
// cancelled requests never count; neither do earlier periods.
func UsedDays(db *gorm.DB, employeeID, typeKey string, periodStart time.Time) (float64, error) {
	var used float64
	err := db.Model(&model.LeaveRequest{}).
		Where("employee_id = ? AND type_key = ? AND status = ? AND from_date >= ?",
			employeeID, typeKey, model.LeaveStatusApproved, periodStart).
		Select("COALESCE(SUM(total_days), 0)").
		Scan(&used).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum used days: %w", err)
	}
	return used, nil
}

// CheckAvailability rejects a request that would push the period's usage past
// the type's yearly limit. A zero limit means the type is unlimited and no
// check is performed.
func CheckAvailability(db *gorm.DB, employeeID string, leaveType model.LeaveType, requestedDays float64, periodStart time.Time) error {
	if leaveType.YearlyLimit <= 0 {
		return nil
	}
	used, err := UsedDays(db, employeeID, leaveType.Key, periodStart)
	if err != nil {
		return err
	}
	return CheckLimit(leaveType, used, requestedDays)
}

// CheckLimit is the availability rule itself: filling the limit exactly is
// allowed, exceeding it fails with how many days were still open.
func CheckLimit(leaveType model.LeaveType, used, requestedDays float64) error {
	if leaveType.YearlyLimit <= 0 {
		return nil
	}
	if used+requestedDays > leaveType.YearlyLimit {
		return &BalanceExceededError{Remaining: math.Max(0, leaveType.YearlyLimit-used)}
	}
	return nil
}
