package model

import "time"

// Role maps a role key to its permission set. A single "*" entry grants
// every permission (expanded by hr/core.ExpandPermissions).
type Role struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Key         string   `gorm:"size:64;uniqueIndex;not null" json:"key"`
	Name        string   `gorm:"size:128;not null" json:"name"`
	Permissions []string `gorm:"serializer:json" json:"permissions"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Role) TableName() string {
	return "roles"
}
