package apperrors

import (
	"log"

	"github.com/gin-gonic/gin"
)

// Debug controls whether internal error details reach the client.
// The app sets it from the server env at startup; production keeps it false.
var Debug bool

// HandleError renders err as the wire-level error shape:
// {"error": "...", "code": "...", "details": {...}}.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		log.Printf("server error: %v", appErr)
		if !Debug {
			appErr = New(appErr.Code, appErr.Domain, "Internal server error", appErr.HTTPCode)
		}
	}

	c.JSON(appErr.HTTPCode, appErr)
}

// AsAppError attempts to interpret err as an *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
