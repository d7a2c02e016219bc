package model

import "time"

// Session is one continuous clock-in to clock-out interval within a day.
// CheckOut/Duration are unset while the employee is clocked in.
type Session struct {
	CheckIn  time.Time  `json:"checkIn"`
	CheckOut *time.Time `json:"checkOut,omitempty"`
	Duration *int       `json:"duration,omitempty"` // minutes
}

func (s Session) Open() bool {
	return s.CheckOut == nil
}

// AttendanceLog aggregates all sessions for one user on one calendar day.
// The (UserID, Date) pair is unique so two clock-ins racing to create the
// same day both cannot win; the loser's insert fails on the index.
// The top-level CheckIn/CheckOut/Duration columns predate the Sessions list;
// they are kept as projections so older readers and the open-session index
// query keep working: CheckIn mirrors the first session, CheckOut is NULL
// while any session is open, Duration is the day total in minutes.
type AttendanceLog struct {
	ID       string     `gorm:"primaryKey;size:36" json:"id"`
	UserID   string     `gorm:"size:36;not null;uniqueIndex:idx_att_user_date;index:idx_att_user_checkin;index:idx_att_user_open" json:"user"`
	Date     time.Time  `gorm:"type:date;not null;uniqueIndex:idx_att_user_date" json:"date"`
	CheckIn  time.Time  `gorm:"not null;index:idx_att_user_checkin" json:"checkIn"`
	CheckOut *time.Time `gorm:"index:idx_att_user_open" json:"checkOut,omitempty"`
	Duration *int       `json:"duration,omitempty"`
	Sessions []Session  `gorm:"serializer:json" json:"sessions"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (AttendanceLog) TableName() string {
	return "attendance_logs"
}
