package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"peoplebase.com/peoplebase/hr/model"
)

func pendingRequest() *model.LeaveRequest {
	return &model.LeaveRequest{
		ID:         "req-1",
		EmployeeID: "emp-1",
		TypeKey:    "casual",
		TypeName:   "Casual Leave",
		Status:     model.LeaveStatusPending,
		TotalDays:  2,
	}
}

func TestDecideRequest(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Approve from pending", func(t *testing.T) {
		r := pendingRequest()
		require.NoError(t, decideRequest(r, model.LeaveStatusApproved, "mgr-1", "ok", now))
		assert.Equal(t, model.LeaveStatusApproved, r.Status)
		require.NotNil(t, r.DecidedByID)
		assert.Equal(t, "mgr-1", *r.DecidedByID)
		require.NotNil(t, r.DecidedAt)
		assert.Equal(t, now, *r.DecidedAt)
		assert.Equal(t, "ok", r.Remarks)
	})

	t.Run("Reject from pending", func(t *testing.T) {
		r := pendingRequest()
		require.NoError(t, decideRequest(r, model.LeaveStatusRejected, "mgr-1", "busy week", now))
		assert.Equal(t, model.LeaveStatusRejected, r.Status)
	})

	t.Run("Second decision fails", func(t *testing.T) {
		r := pendingRequest()
		require.NoError(t, decideRequest(r, model.LeaveStatusApproved, "mgr-1", "", now))

		err := decideRequest(r, model.LeaveStatusRejected, "mgr-2", "", now.Add(time.Hour))
		assert.ErrorIs(t, err, ErrAlreadyDecided)
		// terminal state untouched
		assert.Equal(t, model.LeaveStatusApproved, r.Status)
		assert.Equal(t, "mgr-1", *r.DecidedByID)
	})

	t.Run("No decision out of cancelled", func(t *testing.T) {
		r := pendingRequest()
		r.Status = model.LeaveStatusCancelled
		assert.ErrorIs(t, decideRequest(r, model.LeaveStatusApproved, "mgr-1", "", now), ErrAlreadyDecided)
	})
}

func TestCancelRequest(t *testing.T) {
	t.Run("Owner cancels pending", func(t *testing.T) {
		r := pendingRequest()
		require.NoError(t, cancelRequest(r, "emp-1"))
		assert.Equal(t, model.LeaveStatusCancelled, r.Status)
	})

	t.Run("Someone else's request looks absent", func(t *testing.T) {
		r := pendingRequest()
		assert.ErrorIs(t, cancelRequest(r, "emp-2"), ErrRequestNotFound)
		assert.Equal(t, model.LeaveStatusPending, r.Status)
	})

	t.Run("Decided requests cannot be cancelled", func(t *testing.T) {
		for _, status := range []string{model.LeaveStatusApproved, model.LeaveStatusRejected, model.LeaveStatusCancelled} {
			r := pendingRequest()
			r.Status = status
			assert.ErrorIs(t, cancelRequest(r, "emp-1"), ErrCannotCancel)
			assert.Equal(t, status, r.Status)
		}
	})
}

func TestFindLeaveType(t *testing.T) {
	policy := &model.LeavePolicy{LeaveTypes: DefaultLeaveTypes}

	sick := FindLeaveType(policy, "sick")
	require.NotNil(t, sick)
	assert.Equal(t, "Sick Leave", sick.Name)
	assert.EqualValues(t, 10, sick.YearlyLimit)

	assert.Nil(t, FindLeaveType(policy, "sabbatical"))
}

func TestDefaultLeaveTypes(t *testing.T) {
	// unpaid stays unlimited so the availability check skips it
	unpaid := FindLeaveType(&model.LeavePolicy{LeaveTypes: DefaultLeaveTypes}, "unpaid")
	require.NotNil(t, unpaid)
	assert.Zero(t, unpaid.YearlyLimit)
	assert.False(t, unpaid.Paid)
}

func TestKeyedLocksSerialize(t *testing.T) {
	var locks keyedLocks

	unlock := locks.lock("emp|casual|2024-01-01")
	acquired := make(chan struct{})
	go func() {
		u := locks.lock("emp|casual|2024-01-01")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired")
	}
}

func TestBalanceKeyIncludesPeriod(t *testing.T) {
	p1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p2 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.NotEqual(t, balanceKey("e", "sick", p1), balanceKey("e", "sick", p2))
	assert.NotEqual(t, balanceKey("e", "sick", p1), balanceKey("e", "casual", p1))
}

func TestResolveLeaveType(t *testing.T) {
	policy := &model.LeavePolicy{
		LeaveTypes: []model.LeaveType{
			{Key: "casual", Name: "Casual Leave", YearlyLimit: 10, AllowHalfDay: true},
			{Key: "maternity", Name: "Maternity Leave", YearlyLimit: 90, AllowHalfDay: false},
		},
	}
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Valid request", func(t *testing.T) {
		lt, err := resolveLeaveType(policy, ApplyLeaveInput{TypeKey: "casual", FromDate: from, ToDate: to})
		require.NoError(t, err)
		assert.Equal(t, "casual", lt.Key)
	})

	t.Run("Inverted range", func(t *testing.T) {
		_, err := resolveLeaveType(policy, ApplyLeaveInput{TypeKey: "casual", FromDate: to, ToDate: from})
		assert.ErrorIs(t, err, ErrBadDateRange)
	})

	t.Run("Unknown type", func(t *testing.T) {
		_, err := resolveLeaveType(policy, ApplyLeaveInput{TypeKey: "sabbatical", FromDate: from, ToDate: to})
		assert.ErrorIs(t, err, ErrUnknownLeaveType)
	})

	t.Run("Half day on a type that disallows it", func(t *testing.T) {
		_, err := resolveLeaveType(policy, ApplyLeaveInput{TypeKey: "maternity", FromDate: from, ToDate: to, HalfDay: true})
		assert.ErrorIs(t, err, ErrHalfDayNotAllowed)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("Half day where allowed", func(t *testing.T) {
		lt, err := resolveLeaveType(policy, ApplyLeaveInput{TypeKey: "casual", FromDate: from, ToDate: from, HalfDay: true})
		require.NoError(t, err)
		assert.True(t, lt.AllowHalfDay)
	})
}
