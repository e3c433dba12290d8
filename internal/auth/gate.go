package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/jobly/internal/apperr"
)

// Rule decides whether the caller may reach a route. nil id is an anonymous caller.
type Rule func(id *Identity, params gin.Params) error

// AllowAnyone accepts every caller.
func AllowAnyone(*Identity, gin.Params) error { return nil }

// LoggedIn accepts any authenticated caller.
func LoggedIn(id *Identity, _ gin.Params) error {
	if id == nil {
		return apperr.ErrUnauthorized
	}
	return nil
}

// Admin accepts callers whose admin claim is strictly true.
func Admin(id *Identity, _ gin.Params) error {
	if !id.IsAdmin() {
		return apperr.ErrUnauthorized
	}
	return nil
}

// SubjectOrAdmin accepts the caller named by route parameter param, or an admin.
func SubjectOrAdmin(param string) Rule {
	return func(id *Identity, params gin.Params) error {
		if id == nil {
			return apperr.ErrUnauthorized
		}
		if id.IsAdmin() {
			return nil
		}
		if subject, ok := params.Get(param); ok && subject != "" && subject == id.Username {
			return nil
		}
		return apperr.ErrUnauthorized
	}
}

// Gate runs rule before the route handler and aborts the request when it fails.
func Gate(rule Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if err := rule(id, c.Params); err != nil {
			who := "anonymous"
			if id != nil {
				who = id.Username
			}
			log.Printf("[DEBUG] %s %s denied for %s", c.Request.Method, c.FullPath(), who)
			// status only, the body is left to the error renderer
			c.Status(http.StatusUnauthorized)
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}
