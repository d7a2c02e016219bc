package leave

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"peoplebase.com/peoplebase/hr/model"
	common "peoplebase.com/peoplebase/hr/web/common"
	"peoplebase.com/peoplebase/utils"
	web "peoplebase.com/peoplebase/web/common"
	"peoplebase.com/peoplebase/web/middlewares"
	"gorm.io/gorm"
)

type DecideLeaveDTO struct {
	Remarks string `json:"remarks"`
}

func (ep *Endpoint) Approve(c *gin.Context) {
	ep.decide(c, model.LeaveStatusApproved)
}

func (ep *Endpoint) Reject(c *gin.Context) {
	ep.decide(c, model.LeaveStatusRejected)
}

func (ep *Endpoint) decide(c *gin.Context, status string) {
	// remarks are optional, an empty body is fine
	var dto DecideLeaveDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
			return
		}
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var request *model.LeaveRequest
	now := utils.KolkataNow()
	if status == model.LeaveStatusApproved {
		request, err = ep.service.Approve(db, c.Param("id"), middlewares.UserID(c), dto.Remarks, now)
	} else {
		request, err = ep.service.Reject(db, c.Param("id"), middlewares.UserID(c), dto.Remarks, now)
	}
	if err != nil {
		common.RespondError(c, err)
		return
	}

	// reload with the employee for the notification email
	var full model.LeaveRequest
	if err := db.Preload("Employee").First(&full, "id = ?", request.ID).Error; err == nil {
		request = &full
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	ep.notify.LeaveDecided(c.Request.Context(), request)

	c.JSON(http.StatusOK, web.NewSuccessResponse(request))
}
