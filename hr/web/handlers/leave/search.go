package leave

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"peoplebase.com/peoplebase/hr/model"
	"peoplebase.com/peoplebase/utils"
	web "peoplebase.com/peoplebase/web/common"
)

func (ep *Endpoint) Search(c *gin.Context) {
	limit := 100
	offset := 0
	if val, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = val
	}
	if val, err := strconv.Atoi(c.Query("offset")); err == nil {
		offset = val
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	query := db.Model(&model.LeaveRequest{}).
		Joins("Employee")

	if status := c.Query("status"); status != "" {
		query = query.Where("leave_requests.status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		fromDate, err := time.ParseInLocation("2006-01-02", from, utils.KolkataTZ)
		if err != nil {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid from date"))
			return
		}
		query = query.Where("leave_requests.from_date >= ?", fromDate)
	}
	if to := c.Query("to"); to != "" {
		toDate, err := time.ParseInLocation("2006-01-02", to, utils.KolkataTZ)
		if err != nil {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid to date"))
			return
		}
		query = query.Where("leave_requests.from_date <= ?", utils.DayEnd(toDate))
	}
	if name := c.Query("employeeName"); name != "" {
		query = query.Where("`Employee`.name LIKE ?", "%"+name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	var requests []model.LeaveRequest
	err = query.
		Order("leave_requests.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&requests).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(requests, total))
}

type CalendarEntry struct {
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	TypeKey      string    `json:"typeKey"`
	TypeName     string    `json:"typeName"`
	FromDate     time.Time `json:"fromDate"`
	ToDate       time.Time `json:"toDate"`
	HalfDay      bool      `json:"halfDay"`
}

// Calendar returns the approved leave overlapping a month, defaulting to the
// current one.
func (ep *Endpoint) Calendar(c *gin.Context) {
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
		return
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, utils.KolkataTZ)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var requests []model.LeaveRequest
	err = db.Preload("Employee").
		Where("status = ?", model.LeaveStatusApproved).
		Where("from_date <= ? AND to_date >= ?", monthEnd, monthStart).
		Order("from_date ASC").
		Find(&requests).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	entries := utils.Map(requests, func(r model.LeaveRequest) CalendarEntry {
		entry := CalendarEntry{
			EmployeeID: r.EmployeeID,
			TypeKey:    r.TypeKey,
			TypeName:   r.TypeName,
			FromDate:   r.FromDate,
			ToDate:     r.ToDate,
			HalfDay:    r.HalfDay,
		}
		if r.Employee != nil {
			entry.EmployeeName = r.Employee.Name
		}
		return entry
	})

	c.JSON(http.StatusOK, web.NewSuccessResponse(entries))
}
