package errcodes

import (
	"fmt"
	"net/http"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
	golog "github.com/robinjoseph08/golib/logger"
)

// Payload is the JSON body written for every failed request.
type Payload struct {
	Error PayloadError `json:"error"`
}

type PayloadError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle is an Echo error handler. Errors from this package keep their status
// and code, echo errors are named after their message, and anything else is an
// internal server error.
func (h *Handler) Handle(err error, c echo.Context) {
	if errutils.IsIgnorableErr(err) {
		logger.FromEchoContext(c).Err(err).Warn("broken pipe")
		return
	}

	payload := toPayload(err)
	log := logger.FromEchoContext(c)
	data := golog.Data{
		"code":        payload.Error.Code,
		"status_code": payload.Error.StatusCode,
	}

	switch status := payload.Error.StatusCode; {
	case status >= http.StatusInternalServerError:
		log.Err(err).Error("server error", data)
	case status == http.StatusForbidden || status == http.StatusConflict:
		// Ownership refusals and lost accept races.
		log.Info("request rejected", data)
	}

	if err := c.JSON(payload.Error.StatusCode, payload); err != nil {
		log.Err(errors.WithStack(err)).Error("error handler json error")
	}
}

func toPayload(err error) Payload {
	p := PayloadError{
		Code:       "internal_server_error",
		Message:    "Internal Server Error",
		StatusCode: http.StatusInternalServerError,
	}

	var e *Error
	var he *echo.HTTPError
	switch {
	case errors.As(err, &e):
		p.StatusCode = e.HTTPCode
		p.Code = e.Code
		p.Message = e.Message
	case errors.As(err, &he):
		p.StatusCode = he.Code
		p.Message = fmt.Sprint(he.Message)
		p.Code = strcase.ToSnake(p.Message)
	}

	return Payload{Error: p}
}
