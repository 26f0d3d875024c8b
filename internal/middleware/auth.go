package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-management-api/internal/constants"
	apierrors "github.com/yukikurage/team-management-api/internal/errors"
)

// RequireAuth admits requests whose session carries a signed-in employee.
// A session holding anything other than an employee id is cleared.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		employeeID, ok := employeeIDFrom(session.Get(constants.ContextKeyEmployeeID))
		if !ok {
			if session.Get(constants.ContextKeyEmployeeID) != nil {
				session.Clear()
				_ = session.Save()
			}
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyEmployeeID, employeeID)
		c.Set(constants.ContextKeyLogger, GetLogger(c).WithField("employee_id", employeeID))
		c.Next()
	}
}

// GetEmployeeID returns the employee stored by RequireAuth
func GetEmployeeID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(constants.ContextKeyEmployeeID)
	if !exists {
		return 0, false
	}
	return employeeIDFrom(v)
}

func employeeIDFrom(v any) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, id != 0
	case uint:
		return uint64(id), id != 0
	case int:
		if id <= 0 {
			return 0, false
		}
		return uint64(id), true
	default:
		return 0, false
	}
}
