package handlers

import (
	"net/http"

	"menuboard/internal/models"
	"menuboard/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ItemHandlers handles the admin item endpoints under a category. An edit
// form carrying a different category_id triggers the move workflow.
type ItemHandlers struct {
	menuSvc     services.MenuService
	workflowSvc services.WorkflowService
}

func NewItemHandlers(menuSvc services.MenuService, workflowSvc services.WorkflowService) *ItemHandlers {
	return &ItemHandlers{menuSvc: menuSvc, workflowSvc: workflowSvc}
}

func (h *ItemHandlers) GetItem(c echo.Context) error {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		return err
	}
	item, err := h.menuSvc.GetItem(c.Request().Context(), categoryID, itemID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandlers) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	categoryID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	order, err := formInt(c, "order")
	if err != nil {
		return err
	}
	if order == nil {
		next, err := h.menuSvc.NextItemOrder(ctx, categoryID)
		if err != nil {
			return httpError(err)
		}
		order = &next
	}

	data := &models.MenuItemData{
		Order: *order,
		Name: models.LocalizedText{
			En: c.FormValue("name_en"),
			Ar: c.FormValue("name_ar"),
		},
	}
	if data.Price, err = formFloat(c, "price"); err != nil {
		return err
	}
	if data.PriceM, err = formFloat(c, "price_m"); err != nil {
		return err
	}
	if data.PriceL, err = formFloat(c, "price_l"); err != nil {
		return err
	}
	if data.PriceLiter, err = formFloat(c, "price_liter"); err != nil {
		return err
	}

	image, closer, err := imageUploadFromForm(c)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	id, err := h.workflowSvc.CreateItem(ctx, categoryID, data, image)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *ItemHandlers) UpdateItem(c echo.Context) error {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		return err
	}

	// The destination defaults to the owning category; a different value
	// moves the item.
	destCategoryID := categoryID
	if raw := c.FormValue("category_id"); raw != "" {
		destCategoryID, err = uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category_id")
		}
	}

	order, err := formInt(c, "order")
	if err != nil {
		return err
	}
	update := &models.MenuItemUpdate{
		Order: order,
		Name:  formLocalized(c, "name"),
	}
	if update.Price, err = formFloat(c, "price"); err != nil {
		return err
	}
	if update.PriceM, err = formFloat(c, "price_m"); err != nil {
		return err
	}
	if update.PriceL, err = formFloat(c, "price_l"); err != nil {
		return err
	}
	if update.PriceLiter, err = formFloat(c, "price_liter"); err != nil {
		return err
	}

	image, closer, err := imageUploadFromForm(c)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	if err := h.workflowSvc.UpdateItem(c.Request().Context(), categoryID, itemID, destCategoryID, update, image); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandlers) DeleteItem(c echo.Context) error {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		return err
	}
	if err := h.workflowSvc.DeleteItem(c.Request().Context(), categoryID, itemID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandlers) NextItemOrder(c echo.Context) error {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.menuSvc.NextItemOrder(c.Request().Context(), categoryID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int{"order": order})
}
