package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict, errs.KindAlreadyDone, errs.KindNotReady:
		return http.StatusConflict
	case errs.KindInvalid, errs.KindExpired, errs.KindUnavailable, errs.KindInvalidCode:
		return http.StatusBadRequest
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func kindOfStatus(status int) errs.Kind {
	switch status {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return errs.KindNotFound
	case http.StatusUnauthorized:
		return errs.KindUnauthorized
	case http.StatusForbidden:
		return errs.KindForbidden
	case http.StatusConflict:
		return errs.KindConflict
	}
	if status >= 400 && status < 500 {
		return errs.KindInvalid
	}
	return errs.KindInternal
}

// ErrorHandler renders every failure as {kind, message, retryable}. Internal
// errors are logged and replaced by a generic message.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "Writing error response failed", "error", err)
		}
	}
}

func render(err error) (int, Error) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		kind := kindOfStatus(httpErr.Code)
		message := http.StatusText(httpErr.Code)
		if kind != errs.KindInternal && httpErr.Message != nil {
			message = fmt.Sprint(httpErr.Message)
		}
		return httpErr.Code, Error{Kind: kind.String(), Message: message}
	}

	kind := errs.KindOf(err)
	message := err.Error()
	if kind == errs.KindInternal {
		message = "internal error"
	}

	return statusOf(kind), Error{
		Kind:      kind.String(),
		Message:   message,
		Retryable: kind.Retryable(),
	}
}
