package handlers

import (
	"net/http"

	"menuboard/internal/services"

	"github.com/labstack/echo/v4"
)

// MenuHandlers serves the public, read-only menu.
type MenuHandlers struct {
	menuSvc services.MenuService
}

func NewMenuHandlers(menuSvc services.MenuService) *MenuHandlers {
	return &MenuHandlers{menuSvc: menuSvc}
}

func (h *MenuHandlers) GetMenu(c echo.Context) error {
	categories, err := h.menuSvc.ListCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"categories": categories})
}

func (h *MenuHandlers) GetMenuCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.menuSvc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}
