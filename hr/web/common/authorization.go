package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"peoplebase.com/peoplebase/core"
	hrcore "peoplebase.com/peoplebase/hr/core"
	"peoplebase.com/peoplebase/hr/model"
	web "peoplebase.com/peoplebase/web/common"
	"peoplebase.com/peoplebase/web/middlewares"
)

// CurrentUser loads the authenticated principal's user row.
func CurrentUser(c *gin.Context, db *gorm.DB) (*model.User, error) {
	userID := middlewares.UserID(c)
	if userID == "" {
		return nil, hrcore.ErrUserNotFound
	}
	var user model.User
	err := db.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, hrcore.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RequirePermissions aborts unless the principal's role grants every listed
// permission. Wildcard grants are expanded before the check.
func RequirePermissions(dm *core.DatabaseManager, required ...string) gin.HandlerFunc {
	return requirePermissions(dm, hrcore.HasAllPermissions, required)
}

// RequireAnyPermission aborts unless at least one permission is granted.
func RequireAnyPermission(dm *core.DatabaseManager, required ...string) gin.HandlerFunc {
	return requirePermissions(dm, hrcore.HasAnyPermission, required)
}

func requirePermissions(dm *core.DatabaseManager, match func([]string, ...string) bool, required []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var granted []string
		err := dm.Exec(c.Request.Context(), GetHostname(c.Request.Host), func(db *gorm.DB) error {
			user, err := CurrentUser(c, db)
			if err != nil {
				return err
			}
			granted, err = hrcore.ResolvePermissions(db, user)
			return err
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, web.NewErrorResponse("Unauthorized"))
			return
		}

		if !match(granted, required...) {
			c.AbortWithStatusJSON(http.StatusForbidden, web.NewErrorResponse("Access denied"))
			return
		}

		c.Set("permissions", granted)
		c.Next()
	}
}

// RespondError maps a core error onto its HTTP status and envelope.
func RespondError(c *gin.Context, err error) {
	c.JSON(hrcore.StatusOf(err), web.NewErrorResponse(err.Error()))
}
