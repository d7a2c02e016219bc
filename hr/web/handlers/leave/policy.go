package leave

import (
	"net/http"

	"github.com/gin-gonic/gin"
	hrcore "peoplebase.com/peoplebase/hr/core"
	common "peoplebase.com/peoplebase/hr/web/common"
	web "peoplebase.com/peoplebase/web/common"
)

func (ep *Endpoint) GetPolicy(c *gin.Context) {
	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	policy, err := hrcore.EnsurePolicy(db)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(policy))
}

func (ep *Endpoint) UpdatePolicy(c *gin.Context) {
	var input hrcore.UpdatePolicyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	policy, err := hrcore.UpdatePolicy(db, input)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(policy))
}
