package handler

import (
	"itemtracker/internal/dto"
	"itemtracker/internal/model"
	"itemtracker/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type LookupHandler struct {
	lookupService service.LookupService
}

func NewLookupHandler(lookupService service.LookupService) *LookupHandler {
	return &LookupHandler{
		lookupService: lookupService,
	}
}

func (h *LookupHandler) Options(c echo.Context) error {
	ctx := c.Request().Context()

	options, err := h.lookupService.Options(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, options)
}

func (h *LookupHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	lookups, err := h.lookupService.List(ctx, model.LookupKind(c.Param("kind")))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, lookups)
}

func (h *LookupHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LookupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	lookup, err := h.lookupService.Create(ctx, model.LookupKind(c.Param("kind")), req.Name)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, lookup)
}

func (h *LookupHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.lookupService.Delete(ctx, model.LookupKind(c.Param("kind")), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
