package handler

import (
	"errors"
	"itemtracker/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// httpError maps service errors onto HTTP responses. Unknown errors are
// logged and reported as 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, service.ErrUsernameTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidStage),
		errors.Is(err, service.ErrInvalidLookupKind):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	zap.L().Error("request failed", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
