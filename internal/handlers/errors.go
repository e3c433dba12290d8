package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/jobly/internal/apperr"
	"github.com/justsurfingit/jobly/internal/sqlgen"
)

// ErrorHandler renders the last error attached to the context as
// {"error": {"message": ..., "status": ...}}. Handlers only call c.Error and return.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, message := renderError(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[ERROR] %s %s failed, %v", c.Request.Method, c.Request.URL.Path, err)
		} else {
			log.Printf("[DEBUG] %s %s rejected with %d, %v", c.Request.Method, c.Request.URL.Path, status, err)
		}
		c.JSON(status, gin.H{"error": gin.H{"message": message, "status": status}})
	}
}

// renderError maps err to a status and a client-facing message. The message is a
// string, or a list of strings when validation reported several problems.
func renderError(err error) (int, any) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status := appErr.Status()
		if status == http.StatusInternalServerError || len(appErr.Messages) == 0 {
			return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
		}
		if len(appErr.Messages) == 1 {
			return status, appErr.Messages[0]
		}
		return status, appErr.Messages
	}

	if sqlgen.IsBadInput(err) {
		return http.StatusBadRequest, builderMessage(err)
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func builderMessage(err error) string {
	var (
		keyErr   *sqlgen.UnsupportedFilterKeyError
		rangeErr *sqlgen.InvalidRangeError
		valueErr *sqlgen.InvalidValueError
	)
	switch {
	case errors.Is(err, sqlgen.ErrEmptyInput):
		return "No data"
	case errors.As(err, &keyErr):
		return fmt.Sprintf("instance is not allowed to have the additional property %q", keyErr.Key)
	case errors.As(err, &rangeErr):
		return fmt.Sprintf("Min %s cannot be greater than max", rangeErr.Range)
	case errors.As(err, &valueErr):
		return fmt.Sprintf("instance.%s %v", valueErr.Key, valueErr.Err)
	}
	return err.Error()
}
