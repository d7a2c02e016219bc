package model

import "time"

const (
	LeaveStatusPending   = "pending"
	LeaveStatusApproved  = "approved"
	LeaveStatusRejected  = "rejected"
	LeaveStatusCancelled = "cancelled"
)

// LeaveRequest is one employee's request for a span of leave. TotalDays is
// frozen at creation; balance accounting always uses the stored value even if
// the policy changes later.
type LeaveRequest struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	EmployeeID    string     `gorm:"size:36;not null;index:idx_leave_emp_from" json:"employee"`
	TypeKey       string     `gorm:"size:32;not null" json:"typeKey"`
	TypeName      string     `gorm:"size:128;not null" json:"typeName"`
	FromDate      time.Time  `gorm:"type:date;not null;index:idx_leave_emp_from;index:idx_leave_status_from" json:"fromDate"`
	ToDate        time.Time  `gorm:"type:date;not null" json:"toDate"`
	HalfDay       bool       `gorm:"not null;default:false" json:"halfDay"`
	Reason        string     `gorm:"type:text" json:"reason"`
	AttachmentURL string     `gorm:"size:512" json:"attachmentUrl"`
	TotalDays     float64    `gorm:"not null;default:0" json:"totalDays"`
	Status        string     `gorm:"size:16;not null;default:pending;index:idx_leave_status_from" json:"status"`
	Remarks       string     `gorm:"type:text" json:"remarks"`
	DecidedByID   *string    `gorm:"size:36" json:"decidedBy,omitempty"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`

	Employee  *User `gorm:"foreignKey:EmployeeID" json:"employeeInfo,omitempty"`
	DecidedBy *User `gorm:"foreignKey:DecidedByID" json:"decidedByInfo,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (r *LeaveRequest) Decided() bool {
	return r.Status != LeaveStatusPending
}
