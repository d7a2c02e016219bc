package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	hrcore "peoplebase.com/peoplebase/hr/core"
	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Seeds a fresh schema: tables, the default roles, the leave policy and,
// optionally, users from a CSV (name,email,role,employeeId per row, with a
// header row).
func main() {
	dsn := flag.String("dsn", "root:development@tcp(localhost:3306)/acme?parseTime=true", "database DSN")
	usersCSV := flag.String("users", "", "optional CSV file of users to import")
	flag.Parse()

	db, err := gorm.Open(mysql.Open(*dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.AttendanceLog{},
		&model.LeavePolicy{},
		&model.LeaveRequest{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedRoles(db)

	if _, err := hrcore.EnsurePolicy(db); err != nil {
		log.Fatalf("failed to seed leave policy: %v", err)
	}
	fmt.Println("Leave policy in place.")

	if *usersCSV != "" {
		importUsers(db, *usersCSV)
	}
}

func seedRoles(db *gorm.DB) {
	roles := []model.Role{
		{Key: "superadmin", Name: "Super Admin", Permissions: []string{hrcore.PermissionWildcard}},
		{Key: "hr", Name: "HR Manager", Permissions: []string{
			hrcore.PermAttendanceClock,
			hrcore.PermAttendancePanelView,
			hrcore.PermLeaveApply,
			hrcore.PermLeaveViewMy,
			hrcore.PermLeaveCancelMy,
			hrcore.PermLeaveViewBalance,
			hrcore.PermLeaveRequestsView,
			hrcore.PermLeaveRequestsDecide,
			hrcore.PermLeaveCalendarView,
			hrcore.PermLeavePolicyView,
			hrcore.PermLeavePolicyManage,
			hrcore.PermLeaveReportsView,
			hrcore.PermLeaveReportsExport,
		}},
		{Key: "manager", Name: "Manager", Permissions: []string{
			hrcore.PermAttendanceClock,
			hrcore.PermAttendancePanelView,
			hrcore.PermLeaveApply,
			hrcore.PermLeaveViewMy,
			hrcore.PermLeaveCancelMy,
			hrcore.PermLeaveViewBalance,
			hrcore.PermLeaveRequestsView,
			hrcore.PermLeaveRequestsDecide,
			hrcore.PermLeaveCalendarView,
		}},
		{Key: "employee", Name: "Employee", Permissions: []string{
			hrcore.PermAttendanceClock,
			hrcore.PermLeaveApply,
			hrcore.PermLeaveViewMy,
			hrcore.PermLeaveCancelMy,
			hrcore.PermLeaveViewBalance,
			hrcore.PermLeaveCalendarView,
		}},
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&roles).Error
	if err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	fmt.Printf("Seeded %d roles.\n", len(roles))
}

func importUsers(db *gorm.DB, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := utils.ParseCSV(f)
	if err != nil {
		log.Fatalf("failed to parse %s: %v", path, err)
	}

	var users []model.User
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 3 {
			log.Fatalf("row %d: expected name,email,role[,employeeId]", i+1)
		}
		user := model.User{
			ID:       uuid.NewString(),
			Name:     row[0],
			Email:    row[1],
			Role:     row[2],
			IsActive: true,
		}
		if len(row) > 3 {
			user.EmployeeID = row[3]
		}
		users = append(users, user)
	}

	if len(users) == 0 {
		fmt.Println("No users to import.")
		return
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).CreateInBatches(users, 100).Error
	if err != nil {
		log.Fatalf("failed to import users: %v", err)
	}
	fmt.Printf("Imported %d users.\n", len(users))
}
