package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-dubber/errors"
	dubbingDTO "github.com/johnquangdev/transcript-dubber/internal/adapter/dto/dubbing"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes data as a 200 response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, data)
}

// HandleError centralizes error handling and logging using provided logger.
// The body is always {"error": message}.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		appErr = errors.ErrProcessingFailed(err)
	}

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Stringer("app_code", appErr.Code),
			zap.Int("status", appErr.HTTPCode),
			zap.Error(err),
		}
		for k, v := range appErr.Details {
			fields = append(fields, zap.String(k, v))
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	return c.JSON(appErr.HTTPCode, dubbingDTO.ErrorResponse{Error: appErr.Message})
}

// ErrorHandler is the echo.HTTPErrorHandler for the whole server. Errors that
// never pass through a handler (middleware rejections, recovered panics,
// unknown routes) are rendered through HandleError as well.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if stdErrors.As(err, &he) {
			err = fromHTTPError(he)
		}

		if werr := HandleError(logger, c, err); werr != nil && logger != nil {
			logger.Error("failed to write error response", zap.Error(werr))
		}
	}
}

func fromHTTPError(he *echo.HTTPError) errors.AppError {
	if he.Code == http.StatusNotFound {
		return errors.ErrNotFound("Route").WithRaw(he)
	}

	reason := http.StatusText(he.Code)
	if msg, ok := he.Message.(string); ok && msg != "" {
		reason = msg
	} else if he.Message != nil {
		reason = fmt.Sprint(he.Message)
	}
	return errors.ErrRequestRejected(he.Code, reason).WithRaw(he)
}
