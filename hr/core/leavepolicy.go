package core

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/utils"
)

// policyID pins the policy to a single row; creation races collapse into an
// upsert on this key.
const policyID = 1

var DefaultLeaveTypes = []model.LeaveType{
	{Key: "sick", Name: "Sick Leave", YearlyLimit: 10, AllowHalfDay: true, Paid: true},
	{Key: "casual", Name: "Casual Leave", YearlyLimit: 10, AllowHalfDay: true, Paid: true},
	{Key: "paid", Name: "Paid Leave", YearlyLimit: 12, AllowHalfDay: true, Paid: true},
	{Key: "unpaid", Name: "Unpaid Leave", YearlyLimit: 0, AllowHalfDay: true, Paid: false},
	{Key: "wfh", Name: "Work From Home", YearlyLimit: 12, AllowHalfDay: true, Paid: true},
}

// EnsurePolicy fetches the leave policy, creating it with defaults on first
// access. Safe to call concurrently.
func EnsurePolicy(db *gorm.DB) (*model.LeavePolicy, error) {
	var policy model.LeavePolicy
	err := db.First(&policy, "id = ?", policyID).Error
	if err == nil {
		return &policy, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch leave policy: %w", err)
	}

	policy = model.LeavePolicy{
		ID:         policyID,
		LeaveTypes: DefaultLeaveTypes,
		ResetMonth: 1,
		ResetDay:   1,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&policy).Error; err != nil {
		return nil, fmt.Errorf("failed to create leave policy: %w", err)
	}
	// Re-read so a lost creation race still returns the winner's row.
	if err := db.First(&policy, "id = ?", policyID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch leave policy: %w", err)
	}
	return &policy, nil
}

type UpdatePolicyInput struct {
	LeaveTypes []model.LeaveType `json:"leaveTypes"`
	ResetMonth *int              `json:"resetMonth" binding:"omitempty,min=1,max=12"`
	ResetDay   *int              `json:"resetDay" binding:"omitempty,min=1,max=31"`
}

// UpdatePolicy replaces leaveTypes wholesale when provided (callers submit
// the full list, there is no per-type merge) and patches the anchor fields.
func UpdatePolicy(db *gorm.DB, in UpdatePolicyInput) (*model.LeavePolicy, error) {
	policy, err := EnsurePolicy(db)
	if err != nil {
		return nil, err
	}

	if in.LeaveTypes != nil {
		policy.LeaveTypes = utils.Map(in.LeaveTypes, normalizeLeaveType)
	}
	if in.ResetMonth != nil {
		policy.ResetMonth = *in.ResetMonth
	}
	if in.ResetDay != nil {
		policy.ResetDay = *in.ResetDay
	}

	if err := db.Save(policy).Error; err != nil {
		return nil, fmt.Errorf("failed to save leave policy: %w", err)
	}
	return policy, nil
}

func normalizeLeaveType(t model.LeaveType) model.LeaveType {
	if t.YearlyLimit < 0 {
		t.YearlyLimit = 0
	}
	if t.MaxCarryForward < 0 {
		t.MaxCarryForward = 0
	}
	return t
}

// FindLeaveType resolves a type by key in the policy's ordered list.
func FindLeaveType(policy *model.LeavePolicy, key string) *model.LeaveType {
	return utils.Find(policy.LeaveTypes, func(t *model.LeaveType) bool { return t.Key == key })
}
