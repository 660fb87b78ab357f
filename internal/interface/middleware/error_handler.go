package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/logger"
)

// ErrorResponse はエラーレスポンス構造を定義します
type ErrorResponse struct {
	OK         bool                  `json:"ok"`
	StatusCode int                   `json:"statusCode"`
	Path       string                `json:"path"`
	Timestamp  string                `json:"timestamp"`
	Message    string                `json:"message"`
	Code       string                `json:"code"`
	Errors     []apperror.FieldError `json:"errors,omitempty"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラーです
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, message, details := classify(err)
	if status >= http.StatusInternalServerError {
		logger.WithError(c.Request().Context(), err).Error("internal error",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
		)
	}

	response := ErrorResponse{
		OK:         false,
		StatusCode: status,
		Path:       c.Request().URL.Path,
		Timestamp:  time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Message:    message,
		Code:       code,
		Errors:     details,
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, response)
}

func classify(err error) (status int, code, message string, details []apperror.FieldError) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		message = appErr.Message
		// インフラ・内部エラーの詳細は返さない
		if status >= http.StatusInternalServerError && appErr.Code != apperror.CodeServiceUnavailable {
			message = "internal server error"
		}
		return status, string(appErr.Code), message, appErr.Details
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, httpCode(he.Code), fmt.Sprintf("%v", he.Message), nil
	}

	return http.StatusInternalServerError, string(apperror.CodeInternalError), "internal server error", nil
}

// httpCode はechoのHTTPErrorをエラーコードに変換します
func httpCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(apperror.CodeNotFound)
	case http.StatusMethodNotAllowed, http.StatusBadRequest:
		return string(apperror.CodeInvalidRequest)
	case http.StatusUnauthorized:
		return string(apperror.CodeUnauthorized)
	case http.StatusForbidden:
		return string(apperror.CodeForbidden)
	case http.StatusTooManyRequests:
		return string(apperror.CodeRateLimitExceeded)
	case http.StatusRequestEntityTooLarge:
		return string(apperror.CodeInvalidRequest)
	default:
		if status >= http.StatusInternalServerError {
			return string(apperror.CodeInternalError)
		}
		return http.StatusText(status)
	}
}
