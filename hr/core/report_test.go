package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"peoplebase.com/peoplebase/hr/model"
)

func TestWriteLeaveReportXLSX(t *testing.T) {
	requests := []model.LeaveRequest{
		{
			EmployeeID: "emp-1",
			TypeName:   "Sick Leave",
			FromDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			ToDate:     time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			TotalDays:  3,
			Status:     model.LeaveStatusApproved,
			Employee:   &model.User{Name: "Asha Rao", Email: "asha@acme.test"},
		},
		{
			EmployeeID: "emp-2",
			TypeName:   "Casual Leave",
			FromDate:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			ToDate:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			HalfDay:    true,
			TotalDays:  0.5,
			Status:     model.LeaveStatusApproved,
		},
	}

	buf, err := WriteLeaveReportXLSX(requests)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leave Report")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, reportHeader, rows[0])
	assert.Equal(t, "Asha Rao", rows[1][0])
	assert.Equal(t, "asha@acme.test", rows[1][1])
	assert.Equal(t, "2025-03-10", rows[1][3])
	assert.Equal(t, "No", rows[1][6])

	// missing employee preload leaves name and email blank
	assert.Equal(t, "Casual Leave", rows[2][2])
	assert.Equal(t, "Yes", rows[2][6])
}
