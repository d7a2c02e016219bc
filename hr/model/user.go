package model

import "time"

// User is the slice of the identity store this product reads: enough to gate
// clock-in on active accounts, resolve permissions and denormalize names into
// panels and reports. Credentials live with the identity service.
type User struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	Name       string `gorm:"size:128;not null" json:"name"`
	Email      string `gorm:"size:256;uniqueIndex" json:"email"`
	Role       string `gorm:"size:64;not null;default:employee" json:"role"`
	EmployeeID string `gorm:"size:32" json:"employeeId"`
	IsActive   bool   `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
