package handler

import (
	"bytes"
	"itemtracker/internal/dto"
	"itemtracker/internal/middleware"
	"itemtracker/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

type ItemHandler struct {
	itemService service.ItemService
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
	}
}

func (h *ItemHandler) Board(c echo.Context) error {
	ctx := c.Request().Context()

	query := dto.BoardQuery{
		Page:    cast.ToInt(c.QueryParam("page")),
		PerPage: cast.ToInt(c.QueryParam("perPage")),
		Stage:   c.QueryParam("stage"),
	}

	board, err := h.itemService.Board(ctx, middleware.Owner(c), query)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, board)
}

func (h *ItemHandler) Export(c echo.Context) error {
	ctx := c.Request().Context()

	var buf bytes.Buffer
	if err := h.itemService.ExportCSV(ctx, middleware.Owner(c), &buf); err != nil {
		return httpError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="items.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ItemHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	item, err := h.itemService.Get(ctx, middleware.Owner(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	id, err := h.itemService.Create(ctx, middleware.Owner(c), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, dto.CreateItemResponse{ID: id})
}

func (h *ItemHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	req := dto.UpdateItemRequest{}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.itemService.Update(ctx, middleware.Owner(c), c.Param("id"), req); err != nil {
		return httpError(err)
	}

	item, err := h.itemService.Get(ctx, middleware.Owner(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.itemService.Delete(ctx, middleware.Owner(c), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
