package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"peoplebase.com/peoplebase/core"
	hrcore "peoplebase.com/peoplebase/hr/core"
	"peoplebase.com/peoplebase/hr/web/handlers/attendance"
	"peoplebase.com/peoplebase/hr/web/handlers/leave"
	"peoplebase.com/peoplebase/infrastructure/communication"
	"peoplebase.com/peoplebase/infrastructure/devops"
	"peoplebase.com/peoplebase/web/middlewares"
)

func main() {
	cfg, err := devops.LoadAppConfig(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("using DSN: %s\n", cfg.DSN)

	dm, err := core.New(cfg.DSN, cfg.MaxConnections)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.SigningSecret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	loc := loadLocation(cfg.Timezone)
	autoClose := hrcore.NewAutoClosePolicy(hrcore.ShiftHours{
		Start: cfg.ShiftStartHour,
		End:   cfg.ShiftEndHour,
	}, loc)
	engine := hrcore.NewAttendanceEngine(autoClose)
	leaveService := hrcore.NewLeaveService(hrcore.LeaveOptions{})

	var slack *communication.Slack
	if os.Getenv("SLACK_BOT_TOKEN") != "" {
		slack = communication.ConnectSlack()
	}
	notifier := leave.NewNotifier(slack, cfg.ReportSender)

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/hr/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		protected.GET("/hello", func(c *gin.Context) {
			claims, _ := c.Get("claims")
			c.JSON(200, gin.H{
				"message": "Hello!",
				"claims":  claims,
			})
		})
		attendance.Register(protected, dm, engine)
		leave.Register(protected, dm, leaveService, notifier, cfg.AttachmentBucket)
	}

	r.Run("0.0.0.0:8090")
}

func loadLocation(name string) *time.Location {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("unknown timezone %q, using default", name)
		return nil
	}
	return loc
}
