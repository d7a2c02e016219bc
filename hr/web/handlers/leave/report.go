package leave

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"peoplebase.com/peoplebase/infrastructure/communication"
	hrcore "peoplebase.com/peoplebase/hr/core"
	common "peoplebase.com/peoplebase/hr/web/common"
	"peoplebase.com/peoplebase/utils"
	web "peoplebase.com/peoplebase/web/common"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func reportPeriod(c *gin.Context) (int, time.Month, bool) {
	now := utils.KolkataNow()
	year := now.Year()
	month := int(now.Month())
	if val, err := strconv.Atoi(c.Query("year")); err == nil {
		year = val
	}
	if val, err := strconv.Atoi(c.Query("month")); err == nil {
		month = val
	}
	if month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid month"))
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func (ep *Endpoint) MonthlyReport(c *gin.Context) {
	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	requests, err := hrcore.MonthlyLeaveReport(db, year, month)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(requests))
}

func (ep *Endpoint) Summary(c *gin.Context) {
	employeeID := c.Query("employeeId") // empty means everyone

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	summary, err := hrcore.EmployeeSummary(db, employeeID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(summary))
}

func (ep *Endpoint) ExportMonthlyReport(c *gin.Context) {
	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	requests, err := hrcore.MonthlyLeaveReport(db, year, month)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	buf, err := hrcore.WriteLeaveReportXLSX(requests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	filename := fmt.Sprintf("leave-report-%d-%02d.xlsx", year, int(month))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

type EmailReportDTO struct {
	To []string `json:"to" binding:"required,min=1,dive,email"`
}

func (ep *Endpoint) EmailMonthlyReport(c *gin.Context) {
	var dto EmailReportDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}
	if ep.notify == nil || ep.notify.sender == "" {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse("Report sender is not configured"))
		return
	}

	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	requests, err := hrcore.MonthlyLeaveReport(db, year, month)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	buf, err := hrcore.WriteLeaveReportXLSX(requests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	filename := fmt.Sprintf("leave-report-%d-%02d.xlsx", year, int(month))
	err = communication.SendEmail(c.Request.Context(), &communication.EmailInfo{
		From:    ep.notify.sender,
		To:      dto.To,
		Subject: fmt.Sprintf("Leave report for %s %d", month, year),
		Text:    fmt.Sprintf("Attached is the leave report for %s %d.", month, year),
		Attachments: []communication.EmailAttachment{{
			Filename:    filename,
			ContentType: xlsxContentType,
			Content:     buf.Bytes(),
		}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"message": "Report emailed", "recipients": dto.To}))
}
