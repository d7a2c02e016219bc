package attendance

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"peoplebase.com/peoplebase/core"
	hrcore "peoplebase.com/peoplebase/hr/core"
	"peoplebase.com/peoplebase/hr/model"
	common "peoplebase.com/peoplebase/hr/web/common"
	"peoplebase.com/peoplebase/utils"
	web "peoplebase.com/peoplebase/web/common"
	"peoplebase.com/peoplebase/web/middlewares"
)

type Endpoint struct {
	base   common.Handler
	engine *hrcore.AttendanceEngine
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, engine *hrcore.AttendanceEngine) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, engine: engine}

	r.POST("/attendance/clock-in",
		common.RequirePermissions(dm, hrcore.PermAttendanceClock), endpoint.ClockIn)
	r.POST("/attendance/clock-out",
		common.RequirePermissions(dm, hrcore.PermAttendanceClock), endpoint.ClockOut)
	r.GET("/attendance/panel",
		common.RequireAnyPermission(dm, hrcore.PermAttendancePanelView), endpoint.Panel)
}

func (ep *Endpoint) ClockIn(c *gin.Context) {
	ep.clock(c, "Clocked in", ep.engine.ClockIn)
}

func (ep *Endpoint) ClockOut(c *gin.Context) {
	ep.clock(c, "Clocked out", ep.engine.ClockOut)
}

func (ep *Endpoint) clock(c *gin.Context, message string, op func(*gorm.DB, string, time.Time) ([]model.AttendanceLog, error)) {
	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	logs, err := op(db, middlewares.UserID(c), utils.KolkataNow())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{
		"message":        message,
		"attendanceLogs": logs,
	}))
}

type PanelEntry struct {
	User           model.User            `json:"user"`
	AttendanceLogs []model.AttendanceLog `json:"attendanceLogs"`
	Leave          *model.LeaveRequest   `json:"leave"`
}

// Panel lists every non-superadmin user with their attendance history and
// today's approved leave, if any.
func (ep *Endpoint) Panel(c *gin.Context) {
	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var users []model.User
	if err := db.Where("role <> ?", "superadmin").Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	userIDs := utils.Map(users, func(u model.User) string { return u.ID })

	var logs []model.AttendanceLog
	if err := db.Where("user_id IN ?", userIDs).Order("check_in DESC").Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	now := utils.KolkataNow()
	if err := ep.engine.HealStale(db, logs, now); err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	logsByUser := utils.GroupBy(logs, func(l model.AttendanceLog) string { return l.UserID })

	var leaves []model.LeaveRequest
	err = db.Where("status = ? AND from_date <= ? AND to_date >= ?",
		model.LeaveStatusApproved, utils.DayEnd(now), utils.DayStart(now)).
		Find(&leaves).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	leaveByUser := make(map[string]*model.LeaveRequest, len(leaves))
	for i := range leaves {
		leaveByUser[leaves[i].EmployeeID] = &leaves[i]
	}

	entries := utils.Map(users, func(u model.User) PanelEntry {
		return PanelEntry{
			User:           u,
			AttendanceLogs: logsByUser[u.ID],
			Leave:          leaveByUser[u.ID],
		}
	})

	c.JSON(http.StatusOK, web.NewSuccessResponse(entries))
}
