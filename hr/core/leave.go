package core

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/utils"
)

type LeaveOptions struct {
	// RevalidateOnApprove re-runs the balance check at approval time. The
	// legacy behavior is off: two overlapping pending requests approved in
	// sequence can jointly exceed the limit.
	RevalidateOnApprove bool
}

// LeaveService owns the request lifecycle: apply -> approve/reject/cancel.
type LeaveService struct {
	opts  LeaveOptions
	locks keyedLocks
}

func NewLeaveService(opts LeaveOptions) *LeaveService {
	return &LeaveService{opts: opts}
}

type ApplyLeaveInput struct {
	TypeKey       string    `json:"typeKey"`
	FromDate      time.Time `json:"fromDate"`
	ToDate        time.Time `json:"toDate"`
	HalfDay       bool      `json:"halfDay"`
	Reason        string    `json:"reason"`
	AttachmentURL string    `json:"attachmentUrl"`
}

// Apply validates the span against the current policy, checks the balance for
// the entitlement period containing fromDate and creates a pending request
// with totalDays frozen. The check-and-create pair is serialized per
// (employee, type, period) so two racing applications cannot both pass the
// balance check.
func (s *LeaveService) Apply(db *gorm.DB, employeeID string, in ApplyLeaveInput, now time.Time) (*model.LeaveRequest, error) {
	policy, err := EnsurePolicy(db)
	if err != nil {
		return nil, err
	}
	leaveType, err := resolveLeaveType(policy, in)
	if err != nil {
		return nil, err
	}

	totalDays := TotalDays(in.FromDate, in.ToDate, in.HalfDay)
	periodStart := PeriodStart(policy, in.FromDate)

	unlock := s.locks.lock(balanceKey(employeeID, in.TypeKey, periodStart))
	defer unlock()

	request := model.LeaveRequest{
		ID:            uuid.NewString(),
		EmployeeID:    employeeID,
		TypeKey:       leaveType.Key,
		TypeName:      leaveType.Name,
		FromDate:      utils.DayStart(in.FromDate),
		ToDate:        utils.DayStart(in.ToDate),
		HalfDay:       in.HalfDay,
		Reason:        in.Reason,
		AttachmentURL: in.AttachmentURL,
		TotalDays:     totalDays,
		Status:        model.LeaveStatusPending,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := CheckAvailability(tx, employeeID, *leaveType, totalDays, periodStart); err != nil {
			return err
		}
		if err := tx.Create(&request).Error; err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Approve moves a pending request to approved. By default the balance is NOT
// re-checked here; see LeaveOptions.RevalidateOnApprove.
func (s *LeaveService) Approve(db *gorm.DB, requestID, approverID, remarks string, now time.Time) (*model.LeaveRequest, error) {
	return s.decide(db, requestID, approverID, remarks, model.LeaveStatusApproved, now)
}

// Reject moves a pending request to rejected.
func (s *LeaveService) Reject(db *gorm.DB, requestID, approverID, remarks string, now time.Time) (*model.LeaveRequest, error) {
	return s.decide(db, requestID, approverID, remarks, model.LeaveStatusRejected, now)
}

func (s *LeaveService) decide(db *gorm.DB, requestID, approverID, remarks, status string, now time.Time) (*model.LeaveRequest, error) {
	var request model.LeaveRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, requestID, &request); err != nil {
			return err
		}

		if status == model.LeaveStatusApproved && s.opts.RevalidateOnApprove && !request.Decided() {
			if err := s.revalidate(tx, &request); err != nil {
				return err
			}
		}

		if err := decideRequest(&request, status, approverID, remarks, now); err != nil {
			return err
		}
		if err := tx.Save(&request).Error; err != nil {
			return fmt.Errorf("failed to save leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// resolveLeaveType validates the request's dates and type against the policy.
// A half-day request on a type that disallows half days is rejected outright
// rather than silently treated as a full day.
func resolveLeaveType(policy *model.LeavePolicy, in ApplyLeaveInput) (*model.LeaveType, error) {
	if in.FromDate.After(in.ToDate) {
		return nil, ErrBadDateRange
	}
	leaveType := FindLeaveType(policy, in.TypeKey)
	if leaveType == nil {
		return nil, ErrUnknownLeaveType
	}
	if in.HalfDay && !leaveType.AllowHalfDay {
		return nil, ErrHalfDayNotAllowed
	}
	return leaveType, nil
}

func (s *LeaveService) revalidate(tx *gorm.DB, request *model.LeaveRequest) error {
	policy, err := EnsurePolicy(tx)
	if err != nil {
		return err
	}
	leaveType := FindLeaveType(policy, request.TypeKey)
	if leaveType == nil {
		return ErrUnknownLeaveType
	}
	periodStart := PeriodStart(policy, request.FromDate)
	return CheckAvailability(tx, request.EmployeeID, *leaveType, request.TotalDays, periodStart)
}

// Cancel is only legal from pending and only by the request's own employee.
func (s *LeaveService) Cancel(db *gorm.DB, requestID, employeeID string) (*model.LeaveRequest, error) {
	var request model.LeaveRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, requestID, &request); err != nil {
			return err
		}
		if err := cancelRequest(&request, employeeID); err != nil {
			return err
		}
		if err := tx.Save(&request).Error; err != nil {
			return fmt.Errorf("failed to save leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

type LeaveBalanceEntry struct {
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Total     float64 `json:"total"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

type LeaveBalance struct {
	Balances []LeaveBalanceEntry  `json:"balances"`
	History  []model.LeaveRequest `json:"history"`
}

// Balance reports per-type usage for the period containing now plus the
// approved in-period history, most recent first.
func (s *LeaveService) Balance(db *gorm.DB, employeeID string, now time.Time) (*LeaveBalance, error) {
	policy, err := EnsurePolicy(db)
	if err != nil {
		return nil, err
	}
	periodStart := PeriodStart(policy, now)

	balances := make([]LeaveBalanceEntry, 0, len(policy.LeaveTypes))
	for _, t := range policy.LeaveTypes {
		used, err := UsedDays(db, employeeID, t.Key, periodStart)
		if err != nil {
			return nil, err
		}
		entry := LeaveBalanceEntry{Key: t.Key, Name: t.Name, Total: t.YearlyLimit, Used: used}
		if t.YearlyLimit > 0 {
			entry.Remaining = math.Max(0, t.YearlyLimit-used)
		}
		balances = append(balances, entry)
	}

	var history []model.LeaveRequest
	err = db.Where("employee_id = ? AND status = ? AND from_date >= ?",
		employeeID, model.LeaveStatusApproved, periodStart).
		Order("from_date DESC").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leave history: %w", err)
	}

	return &LeaveBalance{Balances: balances, History: history}, nil
}

// decideRequest transitions a pending request to approved or rejected. Any
// other starting state is terminal.
func decideRequest(r *model.LeaveRequest, status, approverID, remarks string, now time.Time) error {
	if r.Decided() {
		return ErrAlreadyDecided
	}
	r.Status = status
	r.Remarks = remarks
	r.DecidedByID = utils.Ptr(approverID)
	r.DecidedAt = utils.Ptr(now)
	return nil
}

// cancelRequest transitions a pending request to cancelled, owner only.
func cancelRequest(r *model.LeaveRequest, employeeID string) error {
	if r.EmployeeID != employeeID {
		return ErrRequestNotFound
	}
	if r.Decided() {
		return ErrCannotCancel
	}
	r.Status = model.LeaveStatusCancelled
	return nil
}

func lockRequest(tx *gorm.DB, requestID string, out *model.LeaveRequest) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(out, "id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load leave request: %w", err)
	}
	return nil
}

func balanceKey(employeeID, typeKey string, periodStart time.Time) string {
	return employeeID + "|" + typeKey + "|" + periodStart.Format("2006-01-02")
}

// keyedLocks hands out one mutex per balance key. The map only ever grows by
// (employee, type, period) triples actually applied for, which is small.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedLocks) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
