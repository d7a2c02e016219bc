package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/utils"
)

func TestTotalDays(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		halfDay bool
		want    float64
	}{
		{
			name: "Single day",
			from: "2024-03-01", to: "2024-03-01",
			want: 1,
		},
		{
			name: "Single half day",
			from: "2024-03-01", to: "2024-03-01",
			halfDay: true,
			want:    0.5,
		},
		{
			name: "Three days",
			from: "2024-03-01", to: "2024-03-03",
			want: 3,
		},
		{
			name: "Three days with half day",
			from: "2024-03-01", to: "2024-03-03",
			halfDay: true,
			want:    2.5,
		},
		{
			name: "Across month boundary",
			from: "2024-02-28", to: "2024-03-02",
			want: 4, // leap year
		},
		{
			name: "Across year boundary",
			from: "2023-12-30", to: "2024-01-02",
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalDays(utils.MustParseDate(tt.from), utils.MustParseDate(tt.to), tt.halfDay)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalDaysIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2024, 3, 1, 23, 50, 0, 0, time.UTC)
	to := time.Date(2024, 3, 3, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, 3.0, TotalDays(from, to, false))
}

func TestPeriodStart(t *testing.T) {
	tests := []struct {
		name       string
		resetMonth int
		resetDay   int
		reference  string
		want       string
	}{
		{
			name:       "Calendar year anchor, mid year",
			resetMonth: 1, resetDay: 1,
			reference: "2024-06-15",
			want:      "2024-01-01",
		},
		{
			name:       "Calendar year anchor, late year",
			resetMonth: 1, resetDay: 1,
			reference: "2023-12-15",
			want:      "2023-01-01",
		},
		{
			name:       "Fiscal anchor after reference rolls back a year",
			resetMonth: 4, resetDay: 1,
			reference: "2024-02-10",
			want:      "2023-04-01",
		},
		{
			name:       "Fiscal anchor before reference",
			resetMonth: 4, resetDay: 1,
			reference: "2024-09-10",
			want:      "2024-04-01",
		},
		{
			name:       "Reference on the anchor itself",
			resetMonth: 4, resetDay: 1,
			reference: "2024-04-01",
			want:      "2024-04-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := &model.LeavePolicy{ResetMonth: tt.resetMonth, ResetDay: tt.resetDay}
			got := PeriodStart(policy, utils.MustParseDate(tt.reference))
			assert.Equal(t, utils.MustParseDate(tt.want), got)
		})
	}
}

func TestCheckLimit(t *testing.T) {
	casual := model.LeaveType{Key: "casual", Name: "Casual Leave", YearlyLimit: 10}
	unpaid := model.LeaveType{Key: "unpaid", Name: "Unpaid Leave", YearlyLimit: 0}

	tests := []struct {
		name          string
		leaveType     model.LeaveType
		used          float64
		requested     float64
		wantRemaining *float64
	}{
		{
			name:      "Well under the limit",
			leaveType: casual, used: 2, requested: 3,
		},
		{
			name:      "Exactly up to the limit succeeds",
			leaveType: casual, used: 8, requested: 2,
		},
		{
			name:      "Half a day over fails",
			leaveType: casual, used: 8, requested: 2.5,
			wantRemaining: utils.Ptr(2.0),
		},
		{
			name:      "Nothing left",
			leaveType: casual, used: 10, requested: 0.5,
			wantRemaining: utils.Ptr(0.0),
		},
		{
			name:      "Already past the limit clamps remaining to zero",
			leaveType: casual, used: 12, requested: 1,
			wantRemaining: utils.Ptr(0.0),
		},
		{
			name:      "Unlimited type never fails",
			leaveType: unpaid, used: 400, requested: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLimit(tt.leaveType, tt.used, tt.requested)
			if tt.wantRemaining == nil {
				assert.NoError(t, err)
				return
			}
			var be *BalanceExceededError
			if assert.ErrorAs(t, err, &be) {
				assert.Equal(t, *tt.wantRemaining, be.Remaining)
			}
		})
	}
}
