package webapi

import (
	"net/http"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/rosterdb/stor"
	"github.com/pkg/errors"
)

const (
	DetailActivityNotFound = "Activity not found"
	DetailAlreadySignedUp  = "Student is already signed up for this activity"
	DetailNotSignedUp      = "Student is not signed up for this activity"
	DetailEmailRequired    = "email query parameter is required"
	DetailInternal         = "Internal server error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HTTPErrorHandler renders errors as ErrorResponse, mapping roster errors to
// their status codes. Install it as echo's HTTPErrorHandler.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status, detail := toStatusAndDetail(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Errorf("%s %s failed", ctx.Request().Method, ctx.Request().URL.Path)
	}

	var writeErr error
	if ctx.Request().Method == http.MethodHead {
		writeErr = ctx.NoContent(status)
	} else {
		writeErr = ctx.JSON(status, ErrorResponse{Detail: detail})
	}

	if writeErr != nil {
		log.WithError(writeErr).Warn("unable to write error response")
	}
}

func toStatusAndDetail(err error) (int, string) {
	var httpErr *echo.HTTPError

	switch {
	case errors.Is(err, stor.ErrActivityNotFound):
		return http.StatusNotFound, DetailActivityNotFound
	case errors.Is(err, stor.ErrAlreadySignedUp):
		return http.StatusBadRequest, DetailAlreadySignedUp
	case errors.Is(err, stor.ErrNotSignedUp):
		return http.StatusBadRequest, DetailNotSignedUp
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	default:
		return http.StatusInternalServerError, DetailInternal
	}
}
