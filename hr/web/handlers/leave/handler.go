package leave

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"peoplebase.com/peoplebase/core"
	hrcore "peoplebase.com/peoplebase/hr/core"
	"peoplebase.com/peoplebase/hr/model"
	common "peoplebase.com/peoplebase/hr/web/common"
	"peoplebase.com/peoplebase/utils"
	web "peoplebase.com/peoplebase/web/common"
	"peoplebase.com/peoplebase/web/middlewares"
)

type Endpoint struct {
	base    common.Handler
	service *hrcore.LeaveService
	notify  *Notifier
	bucket  string
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, service *hrcore.LeaveService, notify *Notifier, bucket string) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, service: service, notify: notify, bucket: bucket}

	// employee
	r.POST("/leaves/apply", common.RequirePermissions(dm, hrcore.PermLeaveApply), endpoint.Apply)
	r.GET("/leaves/my", common.RequirePermissions(dm, hrcore.PermLeaveViewMy), endpoint.My)
	r.DELETE("/leaves/my/:id", common.RequirePermissions(dm, hrcore.PermLeaveCancelMy), endpoint.Cancel)
	r.GET("/leaves/balance", common.RequirePermissions(dm, hrcore.PermLeaveViewBalance), endpoint.Balance)
	r.POST("/leaves/attachments", common.RequirePermissions(dm, hrcore.PermLeaveApply), endpoint.UploadAttachment)
	r.GET("/leaves/attachments/download", common.RequirePermissions(dm, hrcore.PermLeaveViewMy), endpoint.DownloadAttachment)
	r.GET("/leaves/attachments", common.RequirePermissions(dm, hrcore.PermLeaveRequestsView), endpoint.ListAttachments)

	// manager/HR
	r.GET("/leaves/requests", common.RequirePermissions(dm, hrcore.PermLeaveRequestsView), endpoint.Search)
	r.PUT("/leaves/requests/:id/approve", common.RequirePermissions(dm, hrcore.PermLeaveRequestsDecide), endpoint.Approve)
	r.PUT("/leaves/requests/:id/reject", common.RequirePermissions(dm, hrcore.PermLeaveRequestsDecide), endpoint.Reject)
	r.GET("/leaves/calendar", common.RequirePermissions(dm, hrcore.PermLeaveCalendarView), endpoint.Calendar)

	// policy
	r.GET("/leaves/policy", common.RequirePermissions(dm, hrcore.PermLeavePolicyView), endpoint.GetPolicy)
	r.PUT("/leaves/policy", common.RequirePermissions(dm, hrcore.PermLeavePolicyManage), endpoint.UpdatePolicy)

	// reports
	r.GET("/leaves/reports/monthly", common.RequirePermissions(dm, hrcore.PermLeaveReportsView), endpoint.MonthlyReport)
	r.GET("/leaves/reports/summary", common.RequirePermissions(dm, hrcore.PermLeaveReportsView), endpoint.Summary)
	r.GET("/leaves/reports/export", common.RequirePermissions(dm, hrcore.PermLeaveReportsExport), endpoint.ExportMonthlyReport)
	r.POST("/leaves/reports/email", common.RequirePermissions(dm, hrcore.PermLeaveReportsExport), endpoint.EmailMonthlyReport)
}

type ApplyLeaveDTO struct {
	TypeKey       string        `json:"typeKey" binding:"required"`
	FromDate      *web.DateOnly `json:"fromDate" binding:"required"`
	ToDate        *web.DateOnly `json:"toDate" binding:"required"`
	HalfDay       bool          `json:"halfDay"`
	Reason        string        `json:"reason"`
	AttachmentURL string        `json:"attachmentUrl"`
}

func (ep *Endpoint) Apply(c *gin.Context) {
	var dto ApplyLeaveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	request, err := ep.service.Apply(db, middlewares.UserID(c), hrcore.ApplyLeaveInput{
		TypeKey:       dto.TypeKey,
		FromDate:      dto.FromDate.Time,
		ToDate:        dto.ToDate.Time,
		HalfDay:       dto.HalfDay,
		Reason:        dto.Reason,
		AttachmentURL: dto.AttachmentURL,
	}, utils.KolkataNow())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	ep.notify.LeaveApplied(c.Request.Context(), request)

	c.JSON(http.StatusCreated, web.NewSuccessResponse(request))
}

func (ep *Endpoint) My(c *gin.Context) {
	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var requests []model.LeaveRequest
	err = db.Where("employee_id = ?", middlewares.UserID(c)).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(requests))
}

func (ep *Endpoint) Cancel(c *gin.Context) {
	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	request, err := ep.service.Cancel(db, c.Param("id"), middlewares.UserID(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{
		"message": "Leave cancelled",
		"request": request,
	}))
}

func (ep *Endpoint) Balance(c *gin.Context) {
	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	balance, err := ep.service.Balance(db, middlewares.UserID(c), utils.KolkataNow())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(balance))
}
