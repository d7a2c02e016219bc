package model

import "time"

type LeaveType struct {
	Key               string  `json:"key"`
	Name              string  `json:"name"`
	YearlyLimit       float64 `json:"yearlyLimit"` // 0 means unlimited
	AllowCarryForward bool    `json:"allowCarryForward"`
	MaxCarryForward   float64 `json:"maxCarryForward"`
	AllowHalfDay      bool    `json:"allowHalfDay"`
	Paid              bool    `json:"paid"`
}

// LeavePolicy is a singleton row. ResetMonth/ResetDay anchor the annual
// entitlement period rollover.
type LeavePolicy struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	LeaveTypes []LeaveType `gorm:"serializer:json" json:"leaveTypes"`
	ResetMonth int         `gorm:"not null;default:1" json:"resetMonth"` // 1-12
	ResetDay   int         `gorm:"not null;default:1" json:"resetDay"`   // 1-31

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}
