package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Fills a development schema with a week of plausible attendance and a few
// leave requests per user. Run the seed command first.
func main() {
	dsn := flag.String("dsn", "root:development@tcp(localhost:3306)/acme?parseTime=true", "database DSN")
	days := flag.Int("days", 7, "how many working days back to fill")
	flag.Parse()

	db, err := gorm.Open(mysql.Open(*dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	var users []model.User
	if err := db.Where("is_active = ?", true).Find(&users).Error; err != nil {
		log.Fatalf("failed to fetch users: %v", err)
	}
	if len(users) == 0 {
		log.Fatal("no users found, run the seed command first")
	}

	mockAttendance(db, users, *days)
	mockLeaveRequests(db, users)
}

func mockAttendance(db *gorm.DB, users []model.User, days int) {
	var logs []model.AttendanceLog
	today := utils.DayStart(utils.KolkataNow())

	for _, user := range users {
		for d := 1; d <= days; d++ {
			day := today.AddDate(0, 0, -d)
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				continue
			}

			// morning session, lunch break, afternoon session
			first := day.Add(9*time.Hour + time.Duration(rand.Intn(90))*time.Minute)
			firstOut := first.Add(3 * time.Hour)
			second := firstOut.Add(45 * time.Minute)
			secondOut := second.Add(time.Duration(240+rand.Intn(90)) * time.Minute)

			sessions := []model.Session{
				{CheckIn: first, CheckOut: &firstOut, Duration: utils.Ptr(180)},
				{CheckIn: second, CheckOut: &secondOut, Duration: utils.Ptr(int(secondOut.Sub(second).Minutes()))},
			}
			total := *sessions[0].Duration + *sessions[1].Duration

			logs = append(logs, model.AttendanceLog{
				ID:       uuid.NewString(),
				UserID:   user.ID,
				Date:     day,
				CheckIn:  first,
				CheckOut: &secondOut,
				Duration: utils.Ptr(total),
				Sessions: sessions,
			})
		}
	}

	if err := db.CreateInBatches(logs, 100).Error; err != nil {
		log.Fatalf("failed to insert attendance logs: %v", err)
	}
	fmt.Printf("Inserted %d attendance logs for %d users.\n", len(logs), len(users))
}

func mockLeaveRequests(db *gorm.DB, users []model.User) {
	types := []struct{ key, name string }{
		{"sick", "Sick Leave"},
		{"casual", "Casual Leave"},
		{"wfh", "Work From Home"},
	}
	statuses := []string{
		model.LeaveStatusPending,
		model.LeaveStatusApproved,
		model.LeaveStatusRejected,
	}

	var requests []model.LeaveRequest
	today := utils.DayStart(utils.KolkataNow())

	for _, user := range users {
		for i := 0; i < 2; i++ {
			t := types[rand.Intn(len(types))]
			from := today.AddDate(0, 0, -rand.Intn(60))
			span := rand.Intn(3)
			to := from.AddDate(0, 0, span)

			requests = append(requests, model.LeaveRequest{
				ID:         uuid.NewString(),
				EmployeeID: user.ID,
				TypeKey:    t.key,
				TypeName:   t.name,
				FromDate:   from,
				ToDate:     to,
				TotalDays:  float64(span + 1),
				Reason:     "Mock data",
				Status:     statuses[rand.Intn(len(statuses))],
			})
		}
	}

	if err := db.CreateInBatches(requests, 100).Error; err != nil {
		log.Fatalf("failed to insert leave requests: %v", err)
	}
	fmt.Printf("Inserted %d leave requests.\n", len(requests))
}
