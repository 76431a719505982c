// Package httperr provides the gateway API's error envelope, adapted
// from the teacher's internal/telemetry.HTTPError (a status-coded error
// wrapper) without its Sentry reporting path: no Sentry DSN or account
// was available for this project, so errors are logged structurally via
// ipfs/go-log/v2 instead (see SPEC_FULL.md §7). The HTTPError type and
// its status-code contract are kept unchanged.
package httperr

import (
	"net/http"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
)

var log = logging.Logger("gatewayapi")

// HTTPError is an error that also carries the HTTP status code the
// gateway API should respond with.
type HTTPError struct {
	err        error
	statusCode int
}

func (he HTTPError) Error() string { return he.err.Error() }

// StatusCode returns the HTTP status to respond with.
func (he HTTPError) StatusCode() int { return he.statusCode }

func (he HTTPError) Unwrap() error { return he.err }

// New wraps err with an HTTP status code.
func New(err error, statusCode int) HTTPError {
	return HTTPError{err: err, statusCode: statusCode}
}

// NotFound, Unauthorized, Unprocessable, Unavailable, and BadRequest are
// the status codes the gateway API of §4.6 actually needs. Unprocessable
// answers 415 Unsupported Media Type.
func NotFound(err error) HTTPError      { return New(err, http.StatusNotFound) }
func Unauthorized(err error) HTTPError  { return New(err, http.StatusUnauthorized) }
func Unprocessable(err error) HTTPError { return New(err, http.StatusUnsupportedMediaType) }
func Unavailable(err error) HTTPError   { return New(err, http.StatusServiceUnavailable) }
func BadRequest(err error) HTTPError    { return New(err, http.StatusBadRequest) }

// Handle logs err and writes the JSON error envelope the gateway API
// responds with: {"error": "<message>"}. Intended to be called from an
// echo.HTTPErrorHandler.
func Handle(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal error"

	var he HTTPError
	var eh *echo.HTTPError
	switch {
	case asHTTPError(err, &he):
		status = he.StatusCode()
		message = he.Error()
	case errorsAsEcho(err, &eh):
		status = eh.Code
		if msg, ok := eh.Message.(string); ok {
			message = msg
		}
	}

	if status >= http.StatusInternalServerError {
		log.Errorf("request failed: %s", err)
	} else {
		log.Debugf("request rejected: %s", err)
	}

	if sendErr := c.JSON(status, map[string]string{"error": message}); sendErr != nil {
		log.Errorf("writing error response: %s", sendErr)
	}
}

func asHTTPError(err error, target *HTTPError) bool {
	he, ok := err.(HTTPError)
	if ok {
		*target = he
	}
	return ok
}

func errorsAsEcho(err error, target **echo.HTTPError) bool {
	eh, ok := err.(*echo.HTTPError)
	if ok {
		*target = eh
	}
	return ok
}
