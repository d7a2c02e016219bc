package core

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/utils"
)

// MonthlyLeaveReport lists the approved requests starting inside the month.
func MonthlyLeaveReport(db *gorm.DB, year int, month time.Month) ([]model.LeaveRequest, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := utils.DayEnd(start.AddDate(0, 1, -1))

	var requests []model.LeaveRequest
	err := db.Preload("Employee").
		Where("status = ? AND from_date BETWEEN ? AND ?", model.LeaveStatusApproved, start, end).
		Order("from_date").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly report: %w", err)
	}
	return requests, nil
}

var reportHeader = []string{"Employee", "Email", "Type", "From", "To", "Days", "Half Day", "Status", "Remarks"}

// WriteLeaveReportXLSX renders the rows into a single-sheet workbook.
func WriteLeaveReportXLSX(requests []model.LeaveRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leave Report"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetSheetRow(sheet, "A1", &reportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range requests {
		name, email := "", ""
		if r.Employee != nil {
			name, email = r.Employee.Name, r.Employee.Email
		}
		row := []interface{}{
			name,
			email,
			r.TypeName,
			r.FromDate.Format("2006-01-02"),
			r.ToDate.Format("2006-01-02"),
			r.TotalDays,
			utils.FormatBoolean(r.HalfDay, "Yes", "No"),
			r.Status,
			r.Remarks,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

type EmployeeLeaveSummary struct {
	Employee  *model.User        `json:"employee"`
	Totals    map[string]float64 `json:"totals"`
	TotalDays float64            `json:"totalDays"`
}

// EmployeeSummary aggregates approved leave per employee, per type name.
func EmployeeSummary(db *gorm.DB, employeeID string) ([]EmployeeLeaveSummary, error) {
	q := db.Preload("Employee").Where("status = ?", model.LeaveStatusApproved)
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	var requests []model.LeaveRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch summary: %w", err)
	}

	grouped := utils.GroupBy(requests, func(r model.LeaveRequest) string { return r.EmployeeID })
	summaries := make([]EmployeeLeaveSummary, 0, len(grouped))
	for _, reqs := range grouped {
		summary := EmployeeLeaveSummary{
			Employee: reqs[0].Employee,
			Totals:   make(map[string]float64),
		}
		for _, r := range reqs {
			summary.Totals[r.TypeName] += r.TotalDays
			summary.TotalDays += r.TotalDays
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
