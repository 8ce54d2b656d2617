package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON envelope for every error.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler renders errors for gin.
type GinErrorHandler struct {
	Debug bool
}

// debugErrors adds the cause of 5xx errors to the response details.
var debugErrors = false

// SetDebug is called once at startup from the server environment.
func SetDebug(debug bool) {
	debugErrors = debug
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "server error", "error", err)
		// The client only ever sees the generic message for 5xx.
		appErr = &AppError{
			Code:     appErr.Code,
			Domain:   appErr.Domain,
			Message:  "Internal server error",
			HTTPCode: appErr.HTTPCode,
		}
		if h.Debug && err != nil {
			appErr.Details = err.Error()
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError is the shortcut used by handlers and middleware.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugErrors}
	handler.HandleGinError(c, err)
}

// AsAppError tries to extract *AppError from err.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
