package leave

import (
	"context"
	"fmt"
	"log"

	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/infrastructure/communication"
)

// Notifier pushes leave lifecycle events to Slack and emails the employee
// when a request is decided. Delivery is best effort: failures are logged
// and never fail the request.
type Notifier struct {
	slack  *communication.Slack
	sender string
}

func NewNotifier(slack *communication.Slack, sender string) *Notifier {
	return &Notifier{slack: slack, sender: sender}
}

func (n *Notifier) LeaveApplied(ctx context.Context, request *model.LeaveRequest) {
	if n == nil || n.slack == nil {
		return
	}
	message := fmt.Sprintf("Leave applied: %s, %s %s to %s (%v day(s))",
		request.EmployeeID, request.TypeName,
		request.FromDate.Format("2006-01-02"), request.ToDate.Format("2006-01-02"),
		request.TotalDays)
	if err := n.slack.Info(message); err != nil {
		log.Printf("slack notify failed: %v", err)
	}
}

func (n *Notifier) LeaveDecided(ctx context.Context, request *model.LeaveRequest) {
	if n == nil {
		return
	}
	if n.slack != nil {
		message := fmt.Sprintf("Leave %s: %s, %s %s to %s",
			request.Status, request.EmployeeID, request.TypeName,
			request.FromDate.Format("2006-01-02"), request.ToDate.Format("2006-01-02"))
		if err := n.slack.Info(message); err != nil {
			log.Printf("slack notify failed: %v", err)
		}
	}
	if n.sender != "" && request.Employee != nil && request.Employee.Email != "" {
		subject := fmt.Sprintf("Your %s leave request has been %s", request.TypeName, request.Status)
		text := fmt.Sprintf("Hi %s,\n\nYour %s leave from %s to %s has been %s.",
			request.Employee.Name, request.TypeName,
			request.FromDate.Format("2006-01-02"), request.ToDate.Format("2006-01-02"),
			request.Status)
		if request.Remarks != "" {
			text += "\n\nRemarks: " + request.Remarks
		}
		err := communication.SendEmail(ctx, &communication.EmailInfo{
			From:    n.sender,
			To:      []string{request.Employee.Email},
			Subject: subject,
			Text:    text,
		})
		if err != nil {
			log.Printf("decision email failed: %v", err)
		}
	}
}
