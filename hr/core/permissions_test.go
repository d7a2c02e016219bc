package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPermissions(t *testing.T) {
	assert.Equal(t, AllPermissions, ExpandPermissions([]string{"*"}))
	assert.Equal(t, AllPermissions, ExpandPermissions([]string{PermLeaveApply, "*"}))

	explicit := []string{PermLeaveApply, PermAttendanceClock}
	assert.Equal(t, explicit, ExpandPermissions(explicit))
	assert.Empty(t, ExpandPermissions(nil))
}

func TestHasPermissions(t *testing.T) {
	granted := []string{PermLeaveApply, PermLeaveViewMy}

	assert.True(t, HasAllPermissions(granted, PermLeaveApply))
	assert.True(t, HasAllPermissions(granted, PermLeaveApply, PermLeaveViewMy))
	assert.False(t, HasAllPermissions(granted, PermLeaveApply, PermLeavePolicyManage))

	assert.True(t, HasAnyPermission(granted, PermLeavePolicyManage, PermLeaveViewMy))
	assert.False(t, HasAnyPermission(granted, PermLeavePolicyManage))
	assert.False(t, HasAnyPermission(nil, PermLeaveApply))
}
