package core

import (
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"
	"peoplebase.com/peoplebase/hr/model"
)

// Permission keys gate the operations this product exposes. The attendance
// and leave surface is the interesting subset; the rest mirror the legacy
// admin panels.
const (
	PermAttendanceClock     = "attendance.clock"
	PermAttendancePanelView = "attendance.panel.view"
	PermLeaveApply          = "leave.apply"
	PermLeaveViewMy         = "leave.view.my"
	PermLeaveCancelMy       = "leave.cancel.my"
	PermLeaveViewBalance    = "leave.view.balance"
	PermLeaveRequestsView   = "leave.requests.view"
	PermLeaveRequestsDecide = "leave.requests.decide"
	PermLeaveCalendarView   = "leave.calendar.view"
	PermLeavePolicyView     = "leave.policy.view"
	PermLeavePolicyManage   = "leave.policy.manage"
	PermLeaveReportsView    = "leave.reports.view"
	PermLeaveReportsExport  = "leave.reports.export"
)

var AllPermissions = []string{
	PermAttendanceClock,
	PermAttendancePanelView,
	PermLeaveApply,
	PermLeaveViewMy,
	PermLeaveCancelMy,
	PermLeaveViewBalance,
	PermLeaveRequestsView,
	PermLeaveRequestsDecide,
	PermLeaveCalendarView,
	PermLeavePolicyView,
	PermLeavePolicyManage,
	PermLeaveReportsView,
	PermLeaveReportsExport,
}

const PermissionWildcard = "*"

// ExpandPermissions resolves the "*" grant into the full permission list.
// Wildcard expansion happens here, never inside the operation checks.
func ExpandPermissions(permissions []string) []string {
	if slices.Contains(permissions, PermissionWildcard) {
		return AllPermissions
	}
	return permissions
}

// ResolvePermissions looks up the user's role and returns its expanded
// permission set. Superadmins hold the wildcard implicitly.
func ResolvePermissions(db *gorm.DB, user *model.User) ([]string, error) {
	if user == nil {
		return nil, nil
	}
	if user.Role == "superadmin" {
		return ExpandPermissions([]string{PermissionWildcard}), nil
	}

	var role model.Role
	err := db.First(&role, "`key` = ?", user.Role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load role %s: %w", user.Role, err)
	}
	return ExpandPermissions(role.Permissions), nil
}

func HasAllPermissions(granted []string, required ...string) bool {
	for _, perm := range required {
		if !slices.Contains(granted, perm) {
			return false
		}
	}
	return true
}

func HasAnyPermission(granted []string, required ...string) bool {
	return slices.ContainsFunc(required, func(perm string) bool {
		return slices.Contains(granted, perm)
	})
}
